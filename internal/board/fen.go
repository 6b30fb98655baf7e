package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN parses a FEN string and returns a Position.
// Decoding is all-or-nothing: on error the returned position is nil.
func ParseFEN(fen string) (*Position, error) {
	placement, rest, ok := strings.Cut(fen, " ")
	if !ok {
		return nil, decodeErr(ErrMalformedFEN, "fen", fen)
	}

	fields := strings.Split(rest, " ")
	if len(fields) != 5 {
		return nil, &DecodeError{
			Kind:  ErrMalformedFEN,
			Field: fmt.Sprintf("need 5 fields after placement, got %d", len(fields)),
			Token: rest,
		}
	}

	pos := newEmptyPosition()

	// Parse piece placement
	if err := parsePiecePlacement(pos, placement); err != nil {
		return nil, err
	}

	// Parse side to move
	switch fields[0] {
	case "w":
		pos.ActiveColor = White
	case "b":
		pos.ActiveColor = Black
	default:
		return nil, decodeErr(ErrInvalidColor, "active color", fields[0])
	}

	// Parse castling rights
	cr, err := parseCastlingRights(fields[1])
	if err != nil {
		return nil, err
	}
	pos.CastlingRights = cr

	// Parse en passant square
	if fields[2] != "-" {
		bb, err := AlgebraicToBit(fields[2])
		if err != nil {
			return nil, decodeErr(ErrMalformedSquare, "en passant", fields[2])
		}
		pos.EnPassant = bb
	}

	// Parse half-move clock and full-move number
	if pos.Ply, err = parseCounter("half-move clock", fields[3]); err != nil {
		return nil, err
	}
	if pos.FullMoves, err = parseCounter("full-move number", fields[4]); err != nil {
		return nil, err
	}

	if err := pos.Validate(); err != nil {
		panic(fmt.Sprintf("board: decoder produced inconsistent position for %q: %v", fen, err))
	}
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on malformed input.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement fills the piece list and square array.
// FEN lists rank 8 first while row 1 holds the lowest indices, so the ranks
// are consumed in reverse.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &DecodeError{
			Kind:  ErrMalformedFEN,
			Field: fmt.Sprintf("piece placement needs 8 ranks, got %d", len(ranks)),
			Token: placement,
		}
	}

	for i := range ranks {
		row := i + 1
		rankStr := ranks[len(ranks)-1-i]
		field := fmt.Sprintf("rank %d", row)
		col := 1

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
			} else if kind, ok := pieceChars[c]; ok {
				if col <= 8 {
					pos.addPiece(NewSquare(col, row), kind.color, kind.typ)
				}
				col++
			} else {
				return decodeErr(ErrInvalidBoardChar, field, string(c))
			}
			if col > 9 {
				return decodeErr(ErrRankSquareCount, field, rankStr)
			}
		}

		if col != 9 {
			return decodeErr(ErrRankSquareCount, field, rankStr)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}
	if castling == "" {
		return NoCastling, decodeErr(ErrInvalidCastling, "castling", castling)
	}

	cr := NoCastling
	for _, c := range castling {
		flag, ok := castlingChars[c]
		if !ok {
			return NoCastling, decodeErr(ErrInvalidCastling, "castling", string(c))
		}
		cr |= flag
	}
	return cr, nil
}

func parseCounter(field, s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, decodeErr(ErrInvalidInteger, field, s)
	}
	return int(n), nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 8; row >= 1; row-- {
		empty := 0
		for col := 1; col <= 8; col++ {
			pc, ok := p.PieceAt(NewSquare(col, row))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Glyph())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.ActiveColor == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassantSquare().String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Ply))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoves))

	return sb.String()
}
