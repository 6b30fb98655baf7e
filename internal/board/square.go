// Package board implements the chess position model, FEN decoding and
// precomputed attack tables on top of 64-bit bitboards.
package board

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants used by callers and tests.
const (
	A1 Square = 0
	C2 Square = 10
	E2 Square = 12
	B3 Square = 17
	D4 Square = 27
	E4 Square = 28
	E8 Square = 60
	H8 Square = 63

	NoSquare Square = 64
)

const files = "abcdefgh"

// NewSquare creates a square from a 1-based column and row.
func NewSquare(col, row int) Square {
	return Square((row-1)*8 + (col - 1))
}

// IndexToCoordinate returns the 1-based column and row of the square.
func IndexToCoordinate(sq Square) (col, row int) {
	return int(sq)%8 + 1, int(sq)/8 + 1
}

// Col returns the 1-based column (1=a, 8=h).
func (sq Square) Col() int {
	return int(sq)%8 + 1
}

// Row returns the 1-based row (1=rank 1, 8=rank 8).
func (sq Square) Row() int {
	return int(sq)/8 + 1
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	col, row := IndexToCoordinate(sq)
	return string([]byte{files[col-1], byte('0' + row)})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, decodeErr(ErrMalformedSquare, "square", s)
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, decodeErr(ErrMalformedSquare, "square", s)
	}
	return NewSquare(int(s[0]-'a')+1, int(s[1]-'0')), nil
}

// AlgebraicToBit parses algebraic notation into a one-hot bitboard.
func AlgebraicToBit(s string) (Bitboard, error) {
	sq, err := ParseSquare(s)
	if err != nil {
		return Empty, err
	}
	return SquareBB(sq), nil
}

// BitToAlgebraic names the lowest set square of b.
func BitToAlgebraic(b Bitboard) (string, error) {
	sq, err := BitScan(b)
	if err != nil {
		return "", err
	}
	return sq.String(), nil
}

// SetBit returns the one-hot bitboard for a 1-based row and column, or Empty
// if either coordinate is off the board.
func SetBit(row, col int) Bitboard {
	if row < 1 || row > 8 || col < 1 || col > 8 {
		return Empty
	}
	return SquareBB(NewSquare(col, row))
}
