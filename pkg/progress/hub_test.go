package progress

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHub_PublishFansOutToRegisteredClients(t *testing.T) {
	h := NewHub()
	stop := make(chan struct{})
	defer close(stop)
	go h.Run(stop)

	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	waitForClientCount(t, h, 1)

	h.Publish(Snapshot{WorkerID: 2, Ops: 100, Solutions: 3, Board: "a.c"})

	select {
	case data := <-c.Send:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			t.Fatalf("unmarshaling broadcast payload: %v", err)
		}
		if snap.WorkerID != 2 || snap.Ops != 100 || snap.Solutions != 3 || snap.Board != "a.c" {
			t.Errorf("broadcast snapshot = %+v, want WorkerID:2 Ops:100 Solutions:3 Board:\"a.c\"", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("registered client never received the broadcast snapshot")
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	h := NewHub()
	stop := make(chan struct{})
	defer close(stop)
	go h.Run(stop)

	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	waitForClientCount(t, h, 1)

	h.Unregister(c)
	waitForClientCount(t, h, 0)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Error("expected Send channel to be closed after Unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel was never closed after Unregister")
	}
}

func waitForClientCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("ClientCount never reached %d, got %d", want, h.ClientCount())
}
