// Command chesscore decodes FEN positions and dumps precomputed attack tables.
//
// Usage:
//
//	chesscore [-fen FEN] [-square e4] [-cpuprofile DIR] [-v] [FEN ...]
//
// Positional arguments are decoded in batch mode, each one a full quoted FEN.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("chesscore failed")
		os.Exit(1)
	}
}

type config struct {
	fen        string
	square     string
	cpuprofile string
	verbose    bool
	batch      []string
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("chesscore", flag.ContinueOnError)
	fs.StringVar(&cfg.fen, "fen", board.StartFEN, "position to decode")
	fs.StringVar(&cfg.square, "square", "", "print attack tables for this square (e.g. e4)")
	fs.StringVar(&cfg.cpuprofile, "cpuprofile", "", "write cpu profile to this directory")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.batch = fs.Args()

	if cfg.cpuprofile == "" {
		cfg.cpuprofile = os.Getenv("CHESSCORE_CPUPROFILE")
	}
	return cfg, nil
}

func run(args []string, out io.Writer, log zerolog.Logger) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	log = log.Level(zerolog.InfoLevel)
	if cfg.verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	if cfg.cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.cpuprofile), profile.Quiet).Stop()
		log.Info().Str("dir", cfg.cpuprofile).Msg("CPU profiling enabled")
	}

	cache, err := storage.Open(log)
	if err != nil {
		return err
	}
	defer cache.Close()

	fens := cfg.batch
	if len(fens) == 0 {
		fens = []string{cfg.fen}
	}

	for _, fen := range fens {
		if err := describe(out, cache, fen, log); err != nil {
			return err
		}
	}

	if cfg.square != "" {
		sq, err := board.ParseSquare(cfg.square)
		if err != nil {
			return err
		}
		printAttacks(out, board.Tables(), sq)
	}

	stats := cache.Stats()
	log.Debug().Uint64("hits", stats.Hits).Uint64("misses", stats.Misses).Msg("position cache")
	return nil
}

// describe decodes fen and prints the position.
func describe(out io.Writer, cache *storage.PositionCache, fen string, log zerolog.Logger) error {
	pos, cached, err := cache.Decode(fen)
	if err != nil {
		return fmt.Errorf("decode %q: %w", fen, err)
	}
	log.Debug().Str("fen", fen).Bool("cached", cached).Msg("decoded")

	first, seen, err := cache.Remember(pos, fen)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Raw FEN: %s\n", fen)
	fmt.Fprint(out, pos)
	if seen {
		fmt.Fprintf(out, "Transposition of: %s\n", first)
	}
	fmt.Fprintln(out)
	return nil
}

// printAttacks prints every table entry for sq as a marked debug grid.
func printAttacks(out io.Writer, t *board.AttackTables, sq board.Square) {
	section := func(name string, bb board.Bitboard) {
		fmt.Fprintf(out, "%s from %s (%d):\n%s\n", name, sq, bb.PopCount(), bb.Debug(sq))
	}

	for d := board.North; d < board.NumDirections; d++ {
		section(d.String()+" ray", t.Ray(sq, d))
	}
	section("Knight", t.KnightAttacks(sq))
	for c := board.White; c <= board.Black; c++ {
		section(c.String()+" pawn pushes", t.PawnPushes(sq, c))
		section(c.String()+" pawn captures", t.PawnCaptures(sq, c))
	}
}
