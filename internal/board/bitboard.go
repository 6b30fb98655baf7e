package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF
)

// mod67 maps (1<<i)%67 back to i. 2 is a primitive root modulo 67, so the 64
// powers of two land on distinct remainders; unused slots hold 64.
var mod67 = [67]Square{
	64, 0, 1, 39, 2, 15, 40, 23,
	3, 12, 16, 59, 41, 19, 24, 54,
	4, 64, 13, 10, 17, 62, 60, 28,
	42, 30, 20, 51, 25, 44, 55, 47,
	5, 32, 64, 38, 14, 22, 11, 58,
	18, 53, 63, 9, 61, 27, 29, 50,
	43, 46, 31, 37, 21, 57, 52, 8,
	26, 49, 45, 36, 56, 7, 48, 35,
	6, 34, 33,
}

// BitScan returns the index of the least significant set bit.
func BitScan(b Bitboard) (Square, error) {
	if b == 0 {
		return NoSquare, ErrEmptyBitboard
	}
	lowest := b & -b
	return mod67[lowest%67], nil
}

// BitScanHighest returns the index of the most significant set bit,
// i.e. floor(log2(b)).
func BitScanHighest(b Bitboard) (Square, error) {
	if b == 0 {
		return NoSquare, ErrEmptyBitboard
	}
	return Square(bits.Len64(uint64(b)) - 1), nil
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Squares returns the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		sq, _ := BitScan(b)
		squares = append(squares, sq)
		b &= b - 1
	}
	return squares
}

// Debug renders the bitboard as an 8x8 grid, rank 8 first. Set bits print as
// '1', clear bits as '.', and the mark square (if on the board) as 'X'.
func (b Bitboard) Debug(mark Square) string {
	var sb strings.Builder
	sb.Grow(72)
	for row := 8; row >= 1; row-- {
		for col := 1; col <= 8; col++ {
			sq := NewSquare(col, row)
			switch {
			case sq == mark:
				sb.WriteByte('X')
			case b.IsSet(sq):
				sb.WriteByte('1')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns the unmarked debug grid.
func (b Bitboard) String() string {
	return b.Debug(NoSquare)
}
