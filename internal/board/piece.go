package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt > King {
		return ' '
	}
	return "pnbrqk"[pt]
}

// Piece is a single man on the board. Position always has exactly one bit set.
type Piece struct {
	Position Bitboard  `json:"position"`
	Color    Color     `json:"color"`
	Type     PieceType `json:"type"`
}

// Square returns the square the piece stands on.
func (p Piece) Square() Square {
	sq, err := BitScan(p.Position)
	if err != nil {
		return NoSquare
	}
	return sq
}

// Glyph returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Glyph() byte {
	c := p.Type.Char()
	if p.Color == White && c != ' ' {
		c -= 'a' - 'A'
	}
	return c
}

type pieceKind struct {
	color Color
	typ   PieceType
}

// pieceChars maps FEN piece letters to color and type.
var pieceChars = map[byte]pieceKind{
	'P': {White, Pawn},
	'N': {White, Knight},
	'B': {White, Bishop},
	'R': {White, Rook},
	'Q': {White, Queen},
	'K': {White, King},
	'p': {Black, Pawn},
	'n': {Black, Knight},
	'b': {Black, Bishop},
	'r': {Black, Rook},
	'q': {Black, Queen},
	'k': {Black, King},
}
