package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// settingGeminiAPIKey is the settings row holding the device-scoped
// translation API key. An absent or empty row is valid; the translation
// backend then decides whether it can serve the request.
const settingGeminiAPIKey = "gemini_api_key"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists device settings and per-media playback positions.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

func (s *SQLiteStore) getSetting(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) putSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at`,
		key,
		value,
		time.Now().UTC(),
	)
	return err
}

// GeminiAPIKey returns the stored translation API key, empty when unset.
func (s *SQLiteStore) GeminiAPIKey() (string, error) {
	return s.getSetting(settingGeminiAPIKey)
}

// SetGeminiAPIKey stores the translation API key. The key is trimmed;
// storing an empty value clears it.
func (s *SQLiteStore) SetGeminiAPIKey(key string) error {
	return s.putSetting(settingGeminiAPIKey, strings.TrimSpace(key))
}

// LoadPosition returns the saved playback position for a media item and
// whether one exists.
func (s *SQLiteStore) LoadPosition(mediaID string) (float64, bool, error) {
	row := s.db.QueryRow(`SELECT position FROM playback_positions WHERE media_id = ?`, mediaID)
	var position float64
	if err := row.Scan(&position); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return position, true, nil
}

// SavePosition upserts the playback position for a media item.
func (s *SQLiteStore) SavePosition(mediaID string, position float64) error {
	if strings.TrimSpace(mediaID) == "" {
		return fmt.Errorf("media id is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO playback_positions (media_id, position, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(media_id) DO UPDATE SET
			position=excluded.position,
			updated_at=excluded.updated_at`,
		mediaID,
		position,
		time.Now().UTC(),
	)
	return err
}

// DeletePosition removes the saved position for a media item, for use
// when playback finishes.
func (s *SQLiteStore) DeletePosition(mediaID string) error {
	_, err := s.db.Exec(`DELETE FROM playback_positions WHERE media_id = ?`, mediaID)
	return err
}
