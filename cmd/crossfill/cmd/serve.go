package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/crossplay/crossfill/internal/auth"
	"github.com/crossplay/crossfill/internal/config"
	"github.com/crossplay/crossfill/internal/httpmetrics"
	"github.com/crossplay/crossfill/pkg/emit"
	"github.com/crossplay/crossfill/pkg/pool"
	"github.com/crossplay/crossfill/pkg/progress"
	"github.com/crossplay/crossfill/pkg/store"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a fill in-process behind a status/control HTTP server",
	Long: `serve runs the same fill solve would, but additionally exposes a local
Gin HTTP server: GET /healthz, GET /metrics, GET /status, a websocket
at GET /ws streaming progress snapshots, and a bearer-JWT-protected
POST /cancel that requests cooperative shutdown of the run. This
process never coordinates remote workers -- it only observes and can
switch off the single in-process pool it started.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&solveDictionary, "dictionary", "", "path to the dictionary file (overrides DICTIONARY_PATH)")
	serveCmd.Flags().StringVar(&solveIndexCache, "index-cache", "", "optional SQLite path for the precomputed Lookup cache")
	serveCmd.Flags().StringVar(&solveBlocked, "blocked", "", "path to a blocked-pattern JSON config; if empty, one is generated")
	serveCmd.Flags().StringVar(&solveDifficulty, "difficulty", "medium", "generated-pattern difficulty (easy, medium, hard)")
	serveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "base RNG seed; worker i derives seed+i")
	serveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "worker count (0 = GOMAXPROCS or CROSSFILL_WORKERS)")
	serveCmd.Flags().StringVarP(&solveOutput, "output", "o", "./solutions", "directory to write ipuz-JSON solutions to")
	serveCmd.Flags().StringVar(&solveRedisChannel, "redis-channel", "crossfill:progress", "Redis channel for progress fan-out, when REDIS_URL is configured")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "status server listen port")
}

// statusState is the latest snapshot + running counters rendered by
// GET /status; updated from Pool's OnSnapshot callback.
type statusState struct {
	mu       sync.RWMutex
	runID    string
	snapshot progress.Snapshot
	started  time.Time
}

func (s *statusState) update(snap progress.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

func (s *statusState) view() gin.H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gin.H{
		"runId":       s.runID,
		"startedAt":   s.started,
		"workerId":    s.snapshot.WorkerID,
		"board":       s.snapshot.Board,
		"ops":         s.snapshot.Ops,
		"solutions":   s.snapshot.Solutions,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	if solveDictionary != "" {
		cfg.DictionaryPath = solveDictionary
	}
	if solveWorkers > 0 {
		cfg.Workers = solveWorkers
	}

	runID := uuid.NewString()

	lookup, err := loadLookup(cfg.DictionaryPath, solveIndexCache)
	if err != nil {
		return err
	}
	g, err := loadOrGenerateGrid()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(solveOutput, 0755); err != nil {
		return err
	}

	sinks := []pool.Sink{emit.FileSink{Dir: solveOutput}}
	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.InitSchema(); err != nil {
			return err
		}
		sinks = append(sinks, store.RunSink{Store: st, RunID: runID})
	}

	var redisPub *progress.RedisPublisher
	if cfg.RedisURL != "" {
		redisPub, err = progress.NewRedisPublisher(cfg.RedisURL, solveRedisChannel)
		if err != nil {
			return err
		}
		defer redisPub.Close()
	}

	hub := progress.NewHub()
	hubStop := make(chan struct{})
	go hub.Run(hubStop)
	defer close(hubStop)

	state := &statusState{runID: runID, started: time.Now()}

	p := pool.New(pool.Config{
		Workers: cfg.Workers,
		Lookup:  lookup,
		Grid:    g,
		Seed:    solveSeed,
		Sinks:   sinks,
		OnSnapshot: func(snap pool.Snapshot) {
			wireSnap := progress.Snapshot{
				WorkerID:  snap.WorkerID,
				Board:     boardString(snap.Grid),
				Ops:       snap.Ops,
				Solutions: snap.Solutions,
			}
			state.update(wireSnap)
			hub.Publish(wireSnap)
			if redisPub != nil {
				redisPub.Publish(wireSnap)
			}
		},
	})

	poolDone := make(chan struct{})
	go func() {
		defer close(poolDone)
		p.Run()
	}()

	authService := auth.NewService(cfg.JWTSecret)
	authMiddleware := httpmetrics.NewAuthMiddleware(authService)
	recorder := httpmetrics.NewRecorder()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), httpmetrics.CORS(), recorder.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, recorder.Snapshot())
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.view())
	})
	router.GET("/ws", func(c *gin.Context) {
		serveWs(hub, c.Writer, c.Request)
	})
	router.POST("/cancel", authMiddleware.RequireAuth(), func(c *gin.Context) {
		p.Cancel()
		c.JSON(http.StatusOK, gin.H{"cancelled": true})
	})

	srv := &http.Server{Addr: ":" + servePort, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			infof("serve: http server error: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-poolDone:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)

	p.Cancel()
	<-poolDone
	return nil
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// serveWs upgrades an HTTP request to a websocket connection,
// registers it with hub, and relays hub-pushed frames until the
// connection closes. There is no inbound message handling: this
// socket is observe-only.
func serveWs(hub *progress.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &progress.Client{Conn: conn, Send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer hub.Unregister(client)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
