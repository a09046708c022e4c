// Package openings keeps the opening book: a frequency table of moves
// played from positions, keyed by position hash, in a sqlite file.
package openings

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/piece"
)

const schema = `
CREATE TABLE IF NOT EXISTS openings (
	hash    INTEGER NOT NULL,
	from_q  INTEGER NOT NULL,
	from_r  INTEGER NOT NULL,
	to_q    INTEGER NOT NULL,
	to_r    INTEGER NOT NULL,
	promo   INTEGER NOT NULL DEFAULT 0,
	played  INTEGER NOT NULL DEFAULT 0,
	wins    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (hash, from_q, from_r, to_q, to_r, promo)
);`

// BookMove is one book line out of a position.
type BookMove struct {
	Move   move.Move
	Played int
	Wins   int
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the book at path. Use ":memory:"
// for an ephemeral book.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open opening book: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init opening book: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record bumps the play count for m out of the position identified by
// hash, and the win count if the game was eventually won by the mover.
func (s *Store) Record(hash uint64, m move.Move, won bool) error {
	win := 0
	if won {
		win = 1
	}
	_, err := s.db.Exec(`
INSERT INTO openings (hash, from_q, from_r, to_q, to_r, promo, played, wins)
VALUES (?, ?, ?, ?, ?, ?, 1, ?)
ON CONFLICT (hash, from_q, from_r, to_q, to_r, promo)
DO UPDATE SET played = played + 1, wins = wins + ?`,
		int64(hash), m.From.Q, m.From.R, m.To.Q, m.To.R, int(m.Promotion), win, win)
	return err
}

// Lookup returns the book moves out of a position, most played first.
func (s *Store) Lookup(hash uint64) ([]BookMove, error) {
	rows, err := s.db.Query(`
SELECT from_q, from_r, to_q, to_r, promo, played, wins
FROM openings WHERE hash = ? ORDER BY played DESC`, int64(hash))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookMove
	for rows.Next() {
		var fq, fr, tq, tr, promo int
		var bm BookMove
		if err := rows.Scan(&fq, &fr, &tq, &tr, &promo, &bm.Played, &bm.Wins); err != nil {
			return nil, err
		}
		bm.Move = move.Move{
			From:      hexgrid.Coord{Q: fq, R: fr},
			To:        hexgrid.Coord{Q: tq, R: tr},
			Promotion: piece.Type(promo),
		}
		out = append(out, bm)
	}
	return out, rows.Err()
}
