package userconfig

import "context"

// Reader returns a user's configuration, falling back to Default.
type Reader interface {
	Get(ctx context.Context, userID int64) (UserConfig, error)
}

// Store persists user configurations.
type Store interface {
	Reader
	Save(ctx context.Context, cfg UserConfig) error
	Ping(ctx context.Context) error
	Close() error
}
