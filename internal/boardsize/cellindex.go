package boardsize

// CellIndex addresses a single cell in the flat, row-major cell array.
// A 16-bit index is shared by both board configurations: even the 9x9
// grid only has 81 cells, far under the 65536 a uint16 can address.
type CellIndex = uint16
