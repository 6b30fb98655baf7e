package board

import (
	"errors"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

var testFENs = []string{
	StartFEN,
	"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartFEN) error: %v", err)
	}

	if len(pos.Pieces) != 32 {
		t.Errorf("got %d pieces, want 32", len(pos.Pieces))
	}
	if pos.ActiveColor != White {
		t.Errorf("active color = %s, want White", pos.ActiveColor)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("castling = %04b, want 1111", uint8(pos.CastlingRights))
	}
	if pos.EnPassant != Empty {
		t.Errorf("en passant = %#x, want none", uint64(pos.EnPassant))
	}
	if pos.Ply != 0 || pos.FullMoves != 1 {
		t.Errorf("ply/fullmoves = %d/%d, want 0/1", pos.Ply, pos.FullMoves)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// White must end up on rows 1-2; a reversed rank order would flip the board.
func TestParseFENOrientation(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		sq    string
		color Color
		typ   PieceType
	}{
		{"a1", White, Rook},
		{"e1", White, King},
		{"d1", White, Queen},
		{"e2", White, Pawn},
		{"e7", Black, Pawn},
		{"e8", Black, King},
		{"h8", Black, Rook},
	}
	for _, tc := range tests {
		t.Run(tc.sq, func(t *testing.T) {
			sq, err := ParseSquare(tc.sq)
			if err != nil {
				t.Fatal(err)
			}
			pc, ok := pos.PieceAt(sq)
			if !ok {
				t.Fatalf("no piece on %s", tc.sq)
			}
			if pc.Color != tc.color || pc.Type != tc.typ {
				t.Errorf("%s holds %s %s, want %s %s", tc.sq, pc.Color, pc.Type, tc.color, tc.typ)
			}
		})
	}

	if got := pos.Occupancy(White); got != Rank1|Rank2 {
		t.Errorf("white occupancy = %#x, want ranks 1-2", uint64(got))
	}
	if got := pos.Occupancy(Black); got != Rank7|Rank8 {
		t.Errorf("black occupancy = %#x, want ranks 7-8", uint64(got))
	}
	if got := pos.AllOccupied(); got != Rank1|Rank2|Rank7|Rank8 {
		t.Errorf("occupancy = %#x, want ranks 1, 2, 7 and 8", uint64(got))
	}
	if _, ok := pos.PieceAt(E4); ok {
		t.Error("e4 should be empty")
	}
}

func TestParseFENEmptyBoard(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if len(pos.Pieces) != 0 {
		t.Errorf("got %d pieces, want 0", len(pos.Pieces))
	}
	for i, s := range pos.Squares {
		if s != EmptySquare {
			t.Errorf("square %s = %d, want empty", Square(i), s)
		}
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("castling = %04b, want none", uint8(pos.CastlingRights))
	}
}

func TestParseFENFields(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 b Kq d6 17 42")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if pos.ActiveColor != Black {
		t.Errorf("active color = %s, want Black", pos.ActiveColor)
	}
	if pos.CastlingRights != WhiteKingSideCastle|BlackQueenSideCastle {
		t.Errorf("castling = %04b, want 1001", uint8(pos.CastlingRights))
	}
	if pos.EnPassantSquare().String() != "d6" {
		t.Errorf("en passant = %s, want d6", pos.EnPassantSquare())
	}
	if pos.Ply != 17 || pos.FullMoves != 42 {
		t.Errorf("ply/fullmoves = %d/%d, want 17/42", pos.Ply, pos.FullMoves)
	}
}

func TestParseCastlingRights(t *testing.T) {
	tests := []struct {
		in   string
		want CastlingRights
	}{
		{"-", NoCastling},
		{"K", WhiteKingSideCastle},
		{"Qk", WhiteQueenSideCastle | BlackKingSideCastle},
		{"qkQK", AllCastling},
		{"KK", WhiteKingSideCastle},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCastlingRights(tc.in)
			if err != nil {
				t.Fatalf("parseCastlingRights(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseCastlingRights(%q) = %04b, want %04b", tc.in, uint8(got), uint8(tc.want))
			}
		})
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		kind error
	}{
		{"too few ranks", "rnbqkbnr/pppppppp w KQkq - 0 1", ErrMalformedFEN},
		{"too many ranks", "8/8/8/8/8/8/8/8/8 w - - 0 1", ErrMalformedFEN},
		{"no space", "8/8/8/8/8/8/8/8", ErrMalformedFEN},
		{"missing fields", "8/8/8/8/8/8/8/8 w - -", ErrMalformedFEN},
		{"extra field", "8/8/8/8/8/8/8/8 w - - 0 1 x", ErrMalformedFEN},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrRankSquareCount},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrRankSquareCount},
		{"digit overflow", "8/8/8/8/8/8/8/71p w - - 0 1", ErrRankSquareCount},
		{"empty rank", "8/8/8//8/8/8/8 w - - 0 1", ErrRankSquareCount},
		{"bad piece", "8/8/8/8/8/8/8/7x w - - 0 1", ErrInvalidBoardChar},
		{"zero digit", "8/8/8/8/8/8/8/08 w - - 0 1", ErrInvalidBoardChar},
		{"nine digit", "8/8/8/8/8/8/8/9 w - - 0 1", ErrInvalidBoardChar},
		{"bad color", "8/8/8/8/8/8/8/8 x - - 0 1", ErrInvalidColor},
		{"upper color", "8/8/8/8/8/8/8/8 W - - 0 1", ErrInvalidColor},
		{"bad castling", "8/8/8/8/8/8/8/8 w KX - 0 1", ErrInvalidCastling},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - e9 0 1", ErrMalformedSquare},
		{"bad halfmove", "8/8/8/8/8/8/8/8 w - - x 1", ErrInvalidInteger},
		{"negative halfmove", "8/8/8/8/8/8/8/8 w - - -1 1", ErrInvalidInteger},
		{"bad fullmove", "8/8/8/8/8/8/8/8 w - - 0 one", ErrInvalidInteger},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if pos != nil {
				t.Errorf("ParseFEN(%q) returned a partial position", tc.fen)
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("ParseFEN(%q) error = %v, want %v", tc.fen, err, tc.kind)
			}
		})
	}
}

func TestParseFENInvariant(t *testing.T) {
	for _, fen := range testFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		occupied := 0
		for i, s := range pos.Squares {
			if !s.Occupied() {
				continue
			}
			occupied++
			if pos.Pieces[s].Position != SquareBB(Square(i)) {
				t.Errorf("%s: piece %d not on %s", fen, s, Square(i))
			}
		}
		if occupied != len(pos.Pieces) {
			t.Errorf("%s: %d occupied squares, %d pieces", fen, occupied, len(pos.Pieces))
		}
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	pos := NewPosition()
	pos.Pieces[0].Position = SquareBB(E4)
	if err := pos.Validate(); err == nil {
		t.Error("Validate accepted a piece off its square")
	}

	pos = NewPosition()
	pos.Squares[E4] = pos.Squares[A1]
	if err := pos.Validate(); err == nil {
		t.Error("Validate accepted a piece on two squares")
	}
}

func TestToFENRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("ToFEN() = %q, want %q", got, fen)
		}
	}
}

func TestParseFENMatchesDragontooth(t *testing.T) {
	for _, fen := range testFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			ref := dragontoothmg.ParseFen(fen)

			byType := func(c Color, pt PieceType) Bitboard {
				bb := Empty
				for _, pc := range pos.Pieces {
					if pc.Color == c && pc.Type == pt {
						bb |= pc.Position
					}
				}
				return bb
			}
			sides := []struct {
				c   Color
				ref dragontoothmg.Bitboards
			}{
				{White, ref.White},
				{Black, ref.Black},
			}
			for _, side := range sides {
				want := [...]uint64{side.ref.Pawns, side.ref.Knights, side.ref.Bishops, side.ref.Rooks, side.ref.Queens, side.ref.Kings}
				for pt := Pawn; pt <= King; pt++ {
					if got := byType(side.c, pt); uint64(got) != want[pt] {
						t.Errorf("%s %s = %#x, dragontoothmg %#x", side.c, pt, uint64(got), want[pt])
					}
				}
				if got := pos.Occupancy(side.c); uint64(got) != side.ref.All {
					t.Errorf("%s occupancy = %#x, dragontoothmg %#x", side.c, uint64(got), side.ref.All)
				}
			}
			if (pos.ActiveColor == White) != ref.Wtomove {
				t.Errorf("active color %s disagrees with dragontoothmg", pos.ActiveColor)
			}
		})
	}
}

func TestParseFENMatchesNotnil(t *testing.T) {
	types := map[PieceType]chess.PieceType{
		Pawn:   chess.Pawn,
		Knight: chess.Knight,
		Bishop: chess.Bishop,
		Rook:   chess.Rook,
		Queen:  chess.Queen,
		King:   chess.King,
	}
	colors := map[Color]chess.Color{White: chess.White, Black: chess.Black}

	for _, fen := range testFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatalf("chess.FEN: %v", err)
			}
			ref := chess.NewGame(opt).Position()

			if ref.Turn() != colors[pos.ActiveColor] {
				t.Errorf("turn = %s, notnil %s", pos.ActiveColor, ref.Turn())
			}
			for _, c := range []Color{White, Black} {
				for _, kingSide := range []bool{true, false} {
					side := chess.QueenSide
					if kingSide {
						side = chess.KingSide
					}
					if got, want := pos.CastlingRights.CanCastle(c, kingSide), ref.CastleRights().CanCastle(colors[c], side); got != want {
						t.Errorf("CanCastle(%s, kingSide=%v) = %v, notnil %v", c, kingSide, got, want)
					}
				}
			}
			if refEP := ref.EnPassantSquare(); refEP != chess.NoSquare && refEP.String() != pos.EnPassantSquare().String() {
				t.Errorf("en passant = %s, notnil %s", pos.EnPassantSquare(), refEP)
			}

			b := ref.Board()
			for sq := A1; sq <= H8; sq++ {
				want := b.Piece(chess.Square(sq))
				pc, ok := pos.PieceAt(sq)
				if !ok {
					if want != chess.NoPiece {
						t.Errorf("%s empty, notnil has %s", sq, want)
					}
					continue
				}
				if want.Type() != types[pc.Type] || want.Color() != colors[pc.Color] {
					t.Errorf("%s holds %s %s, notnil %s", sq, pc.Color, pc.Type, want)
				}
			}
		})
	}
}
