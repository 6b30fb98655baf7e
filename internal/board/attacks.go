package board

import "sync"

// Direction is one of the eight compass directions a slider can move in.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
	NumDirections
)

// step returns the (row, col) delta of a single step in direction d.
func (d Direction) step() (dr, dc int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	case NorthEast:
		return 1, 1
	case NorthWest:
		return 1, -1
	case SouthEast:
		return -1, 1
	case SouthWest:
		return -1, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	return [...]string{"N", "S", "E", "W", "NE", "NW", "SE", "SW", "?"}[min(d, NumDirections)]
}

var knightDeltas = [8][2]int{
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
}

// AttackTables holds the precomputed empty-board attack masks for every square.
// A table is never modified after NewAttackTables returns.
type AttackTables struct {
	Rays         [NumDirections][64]Bitboard
	Knight       [64]Bitboard
	PawnForward  [2][64]Bitboard // [Color][Square]
	PawnDiagonal [2][64]Bitboard // [Color][Square]
}

var (
	tablesOnce sync.Once
	tables     *AttackTables
)

// Tables returns the shared attack tables, building them on first use.
func Tables() *AttackTables {
	tablesOnce.Do(func() {
		tables = NewAttackTables()
	})
	return tables
}

// NewAttackTables computes a fresh set of attack tables.
func NewAttackTables() *AttackTables {
	t := &AttackTables{}
	for sq := A1; sq <= H8; sq++ {
		col, row := IndexToCoordinate(sq)

		for d := North; d < NumDirections; d++ {
			t.Rays[d][sq] = MakeRay(row, col, d)
		}

		t.Knight[sq] = KnightAttackMask(row, col)

		for c := White; c <= Black; c++ {
			t.PawnForward[c][sq] = PawnForwardMask(row, col, c)
			t.PawnDiagonal[c][sq] = PawnDiagonalMask(row, col, c)
		}
	}
	return t
}

// MakeRay walks from (row, col) in direction d up to the board edge.
// The origin square is not included.
func MakeRay(row, col int, d Direction) Bitboard {
	dr, dc := d.step()
	ray := Empty
	for offset := 1; offset <= 8; offset++ {
		bit := SetBit(row+dr*offset, col+dc*offset)
		if bit == Empty {
			break
		}
		ray |= bit
	}
	return ray
}

// KnightAttackMask returns the knight targets from (row, col).
func KnightAttackMask(row, col int) Bitboard {
	attacks := Empty
	for _, d := range knightDeltas {
		attacks |= SetBit(row+d[0], col+d[1])
	}
	return attacks
}

// PawnForwardMask returns the push targets of a pawn of color c on (row, col),
// including the double push from the starting rank. Pawns never stand on the
// first or last rank, so those rows are empty.
func PawnForwardMask(row, col int, c Color) Bitboard {
	if row == 1 || row == 8 {
		return Empty
	}
	if c == White {
		bb := SetBit(row+1, col)
		if row == 2 {
			bb |= SetBit(row+2, col)
		}
		return bb
	}
	bb := SetBit(row-1, col)
	if row == 7 {
		bb |= SetBit(row-2, col)
	}
	return bb
}

// PawnDiagonalMask returns the capture targets of a pawn of color c on (row, col).
func PawnDiagonalMask(row, col int, c Color) Bitboard {
	if row == 1 || row == 8 {
		return Empty
	}
	forward := 1
	if c == Black {
		forward = -1
	}
	return SetBit(row+forward, col-1) | SetBit(row+forward, col+1)
}

// Ray returns the empty-board ray from sq in direction d.
func (t *AttackTables) Ray(sq Square, d Direction) Bitboard {
	return t.Rays[d][sq]
}

// KnightAttacks returns the knight attack bitboard for a square.
func (t *AttackTables) KnightAttacks(sq Square) Bitboard {
	return t.Knight[sq]
}

// PawnPushes returns the pawn push target bitboard for a square and color.
func (t *AttackTables) PawnPushes(sq Square, c Color) Bitboard {
	return t.PawnForward[c][sq]
}

// PawnCaptures returns the pawn capture bitboard for a square and color.
func (t *AttackTables) PawnCaptures(sq Square, c Color) Bitboard {
	return t.PawnDiagonal[c][sq]
}

// BishopRays returns the bishop attack bitboard on an empty board.
func (t *AttackTables) BishopRays(sq Square) Bitboard {
	return t.Rays[NorthEast][sq] | t.Rays[NorthWest][sq] |
		t.Rays[SouthEast][sq] | t.Rays[SouthWest][sq]
}

// RookRays returns the rook attack bitboard on an empty board.
func (t *AttackTables) RookRays(sq Square) Bitboard {
	return t.Rays[North][sq] | t.Rays[South][sq] |
		t.Rays[East][sq] | t.Rays[West][sq]
}

// QueenRays returns the queen attack bitboard on an empty board.
func (t *AttackTables) QueenRays(sq Square) Bitboard {
	return t.BishopRays(sq) | t.RookRays(sq)
}
