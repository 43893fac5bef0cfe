package userconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"checkbot/internal/checkbox"

	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the user config database at path.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_config (
			user_id INTEGER PRIMARY KEY,
			default_checked_box TEXT NOT NULL,
			default_unchecked_box TEXT NOT NULL,
			show_edit_confirmation INTEGER NOT NULL DEFAULT 1,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("failed to migrate user_config: %w", err)
		}
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, userID int64) (UserConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT default_checked_box, default_unchecked_box, show_edit_confirmation, updated_at_unixms
		 FROM user_config WHERE user_id = ?`, userID)

	cfg := UserConfig{UserID: userID}
	var updatedAt int64
	err := row.Scan(&cfg.DefaultCheckedBox, &cfg.DefaultUncheckedBox, &cfg.ShowEditConfirmation, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Default(userID), nil
	}
	if err != nil {
		return UserConfig{}, fmt.Errorf("failed to read user config %d: %w", userID, err)
	}
	cfg.UpdatedAt = time.UnixMilli(updatedAt)
	return cfg, nil
}

func (s *sqliteStore) Save(ctx context.Context, cfg UserConfig) error {
	if !slices.Contains(checkbox.SuggestedCheckedBoxes, cfg.DefaultCheckedBox) ||
		!slices.Contains(checkbox.SuggestedUncheckedBoxes, cfg.DefaultUncheckedBox) {
		return ErrInvalidStyle
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_config (user_id, default_checked_box, default_unchecked_box, show_edit_confirmation, updated_at_unixms)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			default_checked_box = excluded.default_checked_box,
			default_unchecked_box = excluded.default_unchecked_box,
			show_edit_confirmation = excluded.show_edit_confirmation,
			updated_at_unixms = excluded.updated_at_unixms`,
		cfg.UserID, cfg.DefaultCheckedBox, cfg.DefaultUncheckedBox, cfg.ShowEditConfirmation, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save user config %d: %w", cfg.UserID, err)
	}
	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
