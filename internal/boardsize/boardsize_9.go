//go:build size9

package boardsize

// Dim is the grid's edge length in cells.
const Dim = 9

// MaxSlotLen is the longest possible slot, i.e. Dim itself.
const MaxSlotLen = Dim

// WordID indexes the dictionary's word table. 9-letter slots pull in
// enough of a large wordlist that 16 bits can wrap around; build with
// -tags size9 to get the wider ID.
type WordID = uint32
