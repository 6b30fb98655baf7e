package board

import (
	"errors"
	"fmt"
)

// Error kinds returned by the decoders in this package. Callers match them
// with errors.Is; the concrete error is usually a *DecodeError.
var (
	ErrMalformedSquare  = errors.New("malformed algebraic square")
	ErrEmptyBitboard    = errors.New("empty bitboard")
	ErrMalformedFEN     = errors.New("malformed FEN structure")
	ErrInvalidColor     = errors.New("invalid active color")
	ErrInvalidCastling  = errors.New("invalid castling rights")
	ErrInvalidBoardChar = errors.New("invalid board character")
	ErrRankSquareCount  = errors.New("rank does not cover 8 squares")
	ErrInvalidInteger   = errors.New("invalid integer field")
)

// DecodeError describes a rejected token and where it was found.
type DecodeError struct {
	Kind  error  // one of the Err* sentinels
	Field string // e.g. "castling", "rank 3", "square"
	Token string // offending input
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Token)
	}
	return fmt.Sprintf("%v in %s: %q", e.Kind, e.Field, e.Token)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func decodeErr(kind error, field, token string) error {
	return &DecodeError{Kind: kind, Field: field, Token: token}
}
