// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xanmankey/WiiMix/internal/settings"
	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)
)

// SQLiteStore is a catalog persisted in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the catalog database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS objectives (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		game_id TEXT REFERENCES games(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_objectives_game ON objectives(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// UpsertGame inserts or updates a game.
func (s *SQLiteStore) UpsertGame(ctx context.Context, g settings.GameReference) error {
	return upsertGame(ctx, s.db, g)
}

// UpsertObjective inserts or updates an objective.
func (s *SQLiteStore) UpsertObjective(ctx context.Context, o Objective) error {
	return upsertObjective(ctx, s.db, o)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertGame(ctx context.Context, db execer, g settings.GameReference) error {
	query := `
	INSERT INTO games (id, title, path)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET title = excluded.title, path = excluded.path
	`
	_, err := db.ExecContext(ctx, query, string(g.ID), g.Title, g.Path)
	return err
}

func upsertObjective(ctx context.Context, db execer, o Objective) error {
	query := `
	INSERT INTO objectives (id, title, description, game_id)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		game_id = excluded.game_id
	`
	var game sql.NullString
	if o.GameID != "" {
		game = sql.NullString{String: string(o.GameID), Valid: true}
	}
	_, err := db.ExecContext(ctx, query, int(o.ID), o.Title, o.Description, game)
	return err
}

// Import writes every game and objective of f in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, f Fixture) (games, objectives int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range f.GameReferences() {
		if err := upsertGame(ctx, tx, g); err != nil {
			return 0, 0, fmt.Errorf("import game %s: %w", g.ID, err)
		}
	}
	for _, o := range f.ObjectiveList() {
		if err := upsertObjective(ctx, tx, o); err != nil {
			return 0, 0, fmt.Errorf("import objective %d: %w", o.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit import: %w", err)
	}
	return len(f.Games), len(f.Objectives), nil
}

func (s *SQLiteStore) LookupGame(ctx context.Context, id settings.GameID) (settings.GameReference, error) {
	var g settings.GameReference
	var rawID string
	err := s.db.QueryRowContext(ctx, `SELECT id, title, path FROM games WHERE id = ?`, string(id)).
		Scan(&rawID, &g.Title, &g.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.GameReference{}, ErrNotFound
	}
	if err != nil {
		return settings.GameReference{}, err
	}
	g.ID = settings.GameID(rawID)
	return g, nil
}

// IsValid reports whether ref names a stored game.
func (s *SQLiteStore) IsValid(ctx context.Context, ref settings.GameReference) bool {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games WHERE id = ?`, string(ref.ID)).Scan(&n)
	return err == nil && n > 0
}

// Games lists every stored game ordered by ID.
func (s *SQLiteStore) Games(ctx context.Context) ([]settings.GameReference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, path FROM games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []settings.GameReference
	for rows.Next() {
		var g settings.GameReference
		var id string
		if err := rows.Scan(&id, &g.Title, &g.Path); err != nil {
			return nil, err
		}
		g.ID = settings.GameID(id)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LookupObjective(ctx context.Context, id settings.ObjectiveID) (Objective, error) {
	var o Objective
	var rawID int
	var game sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT id, title, description, game_id FROM objectives WHERE id = ?`, int(id)).
		Scan(&rawID, &o.Title, &o.Description, &game)
	if errors.Is(err, sql.ErrNoRows) {
		return Objective{}, ErrNotFound
	}
	if err != nil {
		return Objective{}, err
	}
	o.ID = settings.ObjectiveID(rawID)
	o.GameID = settings.GameID(game.String)
	return o, nil
}

func (s *SQLiteStore) ObjectivesForGame(ctx context.Context, id settings.GameID) ([]Objective, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description FROM objectives WHERE game_id = ? ORDER BY id`, string(id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Objective
	for rows.Next() {
		var o Objective
		var rawID int
		if err := rows.Scan(&rawID, &o.Title, &o.Description); err != nil {
			return nil, err
		}
		o.ID = settings.ObjectiveID(rawID)
		o.GameID = id
		out = append(out, o)
	}
	return out, rows.Err()
}
