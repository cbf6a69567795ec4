// Package storage provides SQLite-based persistence for quest save
// slots. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/quellen/wander/internal/core"
)

// ErrNoSave is returned when a requested save slot is empty.
var ErrNoSave = errors.New("storage: no save in slot")

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// SaveEntry represents one occupied save slot.
type SaveEntry struct {
	QuestID   string
	Slot      int
	Progress  core.Progress
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			quest_id TEXT NOT NULL,
			slot INTEGER NOT NULL,
			map_id TEXT NOT NULL,
			player_x INTEGER NOT NULL,
			player_y INTEGER NOT NULL,
			facing TEXT NOT NULL,
			play_ticks INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (quest_id, slot)
		);
		CREATE INDEX IF NOT EXISTS idx_saves_quest ON saves(quest_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProgress writes a save point into the given slot, replacing any
// previous save there.
func (s *Store) SaveProgress(questID string, slot int, p core.Progress) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (quest_id, slot, map_id, player_x, player_y, facing, play_ticks, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(quest_id, slot) DO UPDATE SET
			map_id = excluded.map_id,
			player_x = excluded.player_x,
			player_y = excluded.player_y,
			facing = excluded.facing,
			play_ticks = excluded.play_ticks,
			updated_at = CURRENT_TIMESTAMP`,
		questID, slot, p.MapID, p.PlayerTile[0], p.PlayerTile[1], p.Facing, p.PlayTicks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress reads the save in the given slot.
// Returns ErrNoSave if the slot is empty.
func (s *Store) LoadProgress(questID string, slot int) (core.Progress, error) {
	var p core.Progress
	err := s.db.QueryRow(
		`SELECT map_id, player_x, player_y, facing, play_ticks
		 FROM saves
		 WHERE quest_id = ? AND slot = ?`,
		questID, slot,
	).Scan(&p.MapID, &p.PlayerTile[0], &p.PlayerTile[1], &p.Facing, &p.PlayTicks)

	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("%w: %s/%d", ErrNoSave, questID, slot)
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return p, nil
}

// ListSaves retrieves all occupied slots for the given quest, newest
// first.
func (s *Store) ListSaves(questID string) ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT quest_id, slot, map_id, player_x, player_y, facing, play_ticks, updated_at
		 FROM saves
		 WHERE quest_id = ?
		 ORDER BY updated_at DESC`,
		questID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var updatedAt any
		if err := rows.Scan(&e.QuestID, &e.Slot, &e.Progress.MapID,
			&e.Progress.PlayerTile[0], &e.Progress.PlayerTile[1],
			&e.Progress.Facing, &e.Progress.PlayTicks, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.UpdatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSave clears the given slot. Deleting an empty slot is not an
// error.
func (s *Store) DeleteSave(questID string, slot int) error {
	_, err := s.db.Exec(
		"DELETE FROM saves WHERE quest_id = ? AND slot = ?",
		questID, slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}
