// Package storage provides an in-memory cache of decoded positions.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
)

// Key prefixes
const (
	prefixFEN  = "fen/"
	prefixHash = "hash/"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// PositionCache wraps an in-memory BadgerDB. Decoded positions are stored as
// JSON keyed by their FEN, and the first FEN seen for every Zobrist key is
// remembered so transpositions can be reported.
type PositionCache struct {
	db  *badger.DB
	log zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Open creates an empty cache. Nothing is written to disk.
func Open(log zerolog.Logger) (*PositionCache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()}).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open position cache: %w", err)
	}
	return &PositionCache{db: db, log: log}, nil
}

// Close closes the database
func (c *PositionCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Decode returns the position for fen, decoding and storing it on a miss.
// The boolean reports whether the result came from the cache. Malformed FENs
// are never cached.
func (c *PositionCache) Decode(fen string) (*board.Position, bool, error) {
	var pos *board.Position

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixFEN + fen))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			pos = &board.Position{}
			return json.Unmarshal(val, pos)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("read cached position: %w", err)
	}
	if pos != nil {
		c.hits.Add(1)
		return pos, true, nil
	}

	c.misses.Add(1)
	pos, err = board.ParseFEN(fen)
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(pos)
	if err != nil {
		return nil, false, fmt.Errorf("encode position: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixFEN+fen), data)
	})
	if err != nil {
		return nil, false, fmt.Errorf("store position: %w", err)
	}
	c.log.Debug().Str("fen", fen).Int("pieces", len(pos.Pieces)).Msg("cached position")

	return pos, false, nil
}

// Remember records fen under the Zobrist key of pos. If a position with the
// same key was seen before, its FEN is returned with seen set to true.
func (c *PositionCache) Remember(pos *board.Position, fen string) (first string, seen bool, err error) {
	key := []byte(prefixHash + strconv.FormatUint(pos.Hash(), 16))

	err = c.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			first = fen
			return txn.Set(key, []byte(fen))
		}
		if err != nil {
			return err
		}
		seen = true
		return item.Value(func(val []byte) error {
			first = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, fmt.Errorf("remember position: %w", err)
	}
	return first, seen, nil
}

// Stats returns the hit and miss counts of Decode.
func (c *PositionCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
