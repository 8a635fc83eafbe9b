package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/pkg/metrics"

	_ "modernc.org/sqlite" // SQLite driver.
)

// PlayerResult is one archived appearance of a player.
type PlayerResult struct {
	MatchID    string    `json:"match_id"`
	MatchDate  string    `json:"match_date,omitempty"`
	Map        string    `json:"map"`
	Mode       string    `json:"mode"`
	Team       string    `json:"team"`
	Frags      int       `json:"frags"`
	Ping       int       `json:"ping"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Archive persists analysed matches in SQLite.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database and applies migrations.
func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; concurrent workers queue on the pool
	db.SetMaxOpenConns(1)

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return a, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			checksum TEXT NOT NULL UNIQUE,
			filename TEXT NOT NULL,
			map TEXT NOT NULL,
			mode TEXT NOT NULL,
			hostname TEXT NOT NULL,
			source TEXT NOT NULL,
			match_date TEXT NOT NULL,
			played_at TEXT NOT NULL,
			match_ms INTEGER NOT NULL,
			is_valid INTEGER NOT NULL,
			analyzed_at TEXT NOT NULL,
			summary TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS match_players (
			match_id TEXT NOT NULL,
			slot INTEGER NOT NULL,
			name TEXT NOT NULL,
			team TEXT NOT NULL,
			frags INTEGER NOT NULL,
			ping INTEGER NOT NULL,
			is_bot INTEGER NOT NULL,
			PRIMARY KEY (match_id, slot)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_matches_played_at ON matches(played_at, analyzed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_match_players_name ON match_players(name);`,
	}
	for _, stmt := range stmts {
		if _, err := a.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save stores m and its players, replacing an earlier copy with the same id.
func (a *Archive) Save(ctx context.Context, m model.Match) (err error) {
	defer func() {
		if err != nil {
			metrics.RecordArchiveError()
			return
		}
		metrics.RecordArchiveWrite()
	}()

	summary, err := json.Marshal(m)
	if err != nil {
		return err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = ?`, m.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO matches (id, checksum, filename, map, mode, hostname, source, match_date, played_at, match_ms, is_valid, analyzed_at, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Checksum,
		m.Filename,
		m.Map,
		m.Mode,
		m.Hostname,
		string(m.Source),
		m.MatchDate,
		playedAt(m),
		m.MatchDuration.Milliseconds(),
		m.IsValid,
		m.AnalyzedAt.UTC().Format(time.RFC3339Nano),
		string(summary),
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO match_players (match_id, slot, name, team, frags, ping, is_bot) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, p := range m.Players {
		if _, err = stmt.ExecContext(ctx, m.ID, i, p.Name, p.Team, p.Frags, p.Ping, p.IsBot); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// playedAt is the sort key of a match: the date and time of its matchdate,
// else the time it was analysed. Timezones are ignored.
func playedAt(m model.Match) string {
	const layout = "2006-01-02 15:04:05"
	if len(m.MatchDate) >= len(layout) {
		return m.MatchDate[:len(layout)]
	}
	return m.AnalyzedAt.UTC().Format(layout)
}

// Get returns the archived match with the given id.
func (a *Archive) Get(ctx context.Context, id string) (model.Match, error) {
	var summary string
	err := a.db.QueryRowContext(ctx, `SELECT summary FROM matches WHERE id = ?`, id).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, ErrMatchNotFound
	}
	if err != nil {
		return model.Match{}, err
	}
	var m model.Match
	if err := json.Unmarshal([]byte(summary), &m); err != nil {
		return model.Match{}, fmt.Errorf("match %s: %w", id, err)
	}
	return m, nil
}

// FindByChecksum returns the id of the match analysed from a demo with the
// given checksum.
func (a *Archive) FindByChecksum(ctx context.Context, checksum string) (string, error) {
	var id string
	err := a.db.QueryRowContext(ctx, `SELECT id FROM matches WHERE checksum = ?`, checksum).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMatchNotFound
	}
	return id, err
}

// PlayerResults returns the most recent archived appearances of a player,
// ordered by when the matches were played.
func (a *Archive) PlayerResults(ctx context.Context, name string, limit int) ([]PlayerResult, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT m.id, m.match_date, m.map, m.mode, p.team, p.frags, p.ping, m.analyzed_at
		 FROM match_players p
		 JOIN matches m ON m.id = p.match_id
		 WHERE p.name = ?
		 ORDER BY m.played_at DESC, m.analyzed_at DESC, p.slot
		 LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []PlayerResult
	for rows.Next() {
		var (
			r  PlayerResult
			at string
		)
		if err := rows.Scan(&r.MatchID, &r.MatchDate, &r.Map, &r.Mode, &r.Team, &r.Frags, &r.Ping, &at); err != nil {
			return nil, err
		}
		if r.AnalyzedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Each calls fn for every archived match in the order they were played and
// stops at the first error.
func (a *Archive) Each(ctx context.Context, fn func(model.Match) error) error {
	rows, err := a.db.QueryContext(ctx, `SELECT id, summary FROM matches ORDER BY played_at, analyzed_at`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, summary string
		if err := rows.Scan(&id, &summary); err != nil {
			return err
		}
		var m model.Match
		if err := json.Unmarshal([]byte(summary), &m); err != nil {
			return fmt.Errorf("match %s: %w", id, err)
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the number of archived matches.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}
