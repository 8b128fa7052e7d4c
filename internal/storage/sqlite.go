package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bakes (
			scene_hash TEXT NOT NULL,
			language TEXT NOT NULL,
			options_hash TEXT NOT NULL,
			scene_name TEXT,
			class_name TEXT,
			output TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (scene_hash, language, options_hash)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bakes_created ON bakes(created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key BakeKey) (*BakeEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT scene_name, class_name, output, created_at
		FROM bakes
		WHERE scene_hash = ? AND language = ? AND options_hash = ?
	`, key.SceneHash, key.Language, key.OptionsHash)

	entry := &BakeEntry{Key: key}
	var createdAt int64
	err := row.Scan(&entry.SceneName, &entry.ClassName, &entry.Output, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = time.Unix(createdAt, 0).UTC()
	return entry, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entry *BakeEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bakes (scene_hash, language, options_hash, scene_name, class_name, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scene_hash, language, options_hash) DO UPDATE SET
			scene_name=excluded.scene_name,
			class_name=excluded.class_name,
			output=excluded.output,
			created_at=excluded.created_at
	`, entry.Key.SceneHash, entry.Key.Language, entry.Key.OptionsHash,
		entry.SceneName, entry.ClassName, entry.Output, entry.CreatedAt.Unix())

	return err
}

func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bakes WHERE created_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
