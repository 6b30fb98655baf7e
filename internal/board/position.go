package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingChars maps FEN castling letters to their flag.
var castlingChars = map[rune]CastlingRights{
	'K': WhiteKingSideCastle,
	'Q': WhiteQueenSideCastle,
	'k': BlackKingSideCastle,
	'q': BlackQueenSideCastle,
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side still holds the right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// SquareState is either EmptySquare or the index of the occupying piece in
// Position.Pieces.
type SquareState int

// EmptySquare marks a square with no piece on it.
const EmptySquare SquareState = -1

// Occupied returns true if a piece stands on the square.
func (s SquareState) Occupied() bool {
	return s >= 0
}

// Position represents a decoded chess position.
type Position struct {
	Pieces  []Piece         `json:"pieces"`
	Squares [64]SquareState `json:"squares"`

	ActiveColor    Color          `json:"active_color"`
	CastlingRights CastlingRights `json:"castling_rights"`
	EnPassant      Bitboard       `json:"en_passant"` // Target square, Empty if none
	Ply            int            `json:"ply"`        // Half-move clock (50-move rule)
	FullMoves      int            `json:"full_moves"` // Full move counter, starts at 1
}

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition creates the starting position.
func NewPosition() *Position {
	return MustParseFEN(StartFEN)
}

func newEmptyPosition() *Position {
	p := &Position{
		Pieces:    make([]Piece, 0, 32),
		FullMoves: 1,
	}
	for i := range p.Squares {
		p.Squares[i] = EmptySquare
	}
	return p
}

// addPiece appends a piece standing on sq and points the square at it.
func (p *Position) addPiece(sq Square, c Color, pt PieceType) {
	p.Squares[sq] = SquareState(len(p.Pieces))
	p.Pieces = append(p.Pieces, Piece{Position: SquareBB(sq), Color: c, Type: pt})
}

// PieceAt returns the piece at the given square, if any.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !sq.IsValid() || !p.Squares[sq].Occupied() {
		return Piece{}, false
	}
	return p.Pieces[p.Squares[sq]], true
}

// Occupancy returns the squares occupied by pieces of color c.
func (p *Position) Occupancy(c Color) Bitboard {
	bb := Empty
	for _, pc := range p.Pieces {
		if pc.Color == c {
			bb |= pc.Position
		}
	}
	return bb
}

// AllOccupied returns the squares occupied by either side.
func (p *Position) AllOccupied() Bitboard {
	return p.Occupancy(White) | p.Occupancy(Black)
}

// EnPassantSquare returns the en passant target, or NoSquare.
func (p *Position) EnPassantSquare() Square {
	sq, err := BitScan(p.EnPassant)
	if err != nil {
		return NoSquare
	}
	return sq
}

// Validate checks that the piece list and the square array agree.
func (p *Position) Validate() error {
	seen := make([]bool, len(p.Pieces))
	occupied := 0

	for i, s := range p.Squares {
		if !s.Occupied() {
			continue
		}
		occupied++
		k := int(s)
		if k >= len(p.Pieces) {
			return fmt.Errorf("square %s references piece %d of %d", Square(i), k, len(p.Pieces))
		}
		if seen[k] {
			return fmt.Errorf("piece %d referenced by more than one square", k)
		}
		seen[k] = true
		if p.Pieces[k].Position != SquareBB(Square(i)) {
			return fmt.Errorf("piece %d position %#x does not match square %s", k, uint64(p.Pieces[k].Position), Square(i))
		}
	}

	if occupied != len(p.Pieces) {
		return fmt.Errorf("%d occupied squares but %d pieces", occupied, len(p.Pieces))
	}
	if p.EnPassant.PopCount() > 1 {
		return fmt.Errorf("en passant target has %d bits set", p.EnPassant.PopCount())
	}
	return nil
}

// String returns a visual representation of the position.
// Empty squares show their own name so the orientation is unambiguous.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 8; row >= 1; row-- {
		for col := 1; col <= 8; col++ {
			sq := NewSquare(col, row)
			if pc, ok := p.PieceAt(sq); ok {
				sb.WriteByte(pc.Glyph())
				sb.WriteByte(' ')
			} else {
				sb.WriteString(sq.String())
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Active color: %s\n", p.ActiveColor)
	fmt.Fprintf(&sb, "Castling: %s (%04b)\n", p.CastlingRights, uint8(p.CastlingRights))
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassantSquare())
	fmt.Fprintf(&sb, "Ply: %d\n", p.Ply)
	fmt.Fprintf(&sb, "Full moves: %d\n", p.FullMoves)
	return sb.String()
}
