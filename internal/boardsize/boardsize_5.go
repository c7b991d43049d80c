//go:build !size9

// Package boardsize pins the grid dimension and word-ID width for this
// binary. The two canonical configurations (5x5 and 9x9) are build-time
// constants, not runtime values: swapping them means swapping this file
// via the size9 build tag, not passing a flag. That keeps WordID sized to
// what the dimension actually needs instead of always paying for a wider
// integer than the posting lists can ever contain.
package boardsize

// Dim is the grid's edge length in cells.
const Dim = 5

// MaxSlotLen is the longest possible slot, i.e. Dim itself.
const MaxSlotLen = Dim

// WordID indexes the dictionary's word table. 16 bits comfortably covers
// every word of length <= 5 in any realistic wordlist.
type WordID = uint16
