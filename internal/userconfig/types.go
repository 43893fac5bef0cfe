package userconfig

import (
	"time"

	"checkbot/internal/checkbox"
)

// UserConfig holds per-user checklist preferences.
type UserConfig struct {
	UserID               int64
	DefaultCheckedBox    string
	DefaultUncheckedBox  string
	ShowEditConfirmation bool
	UpdatedAt            time.Time
}

// Default returns the configuration of a user who never changed anything.
func Default(userID int64) UserConfig {
	return UserConfig{
		UserID:               userID,
		DefaultCheckedBox:    checkbox.DefaultCheckedBox,
		DefaultUncheckedBox:  checkbox.DefaultUncheckedBox,
		ShowEditConfirmation: true,
	}
}

// Defaults converts the preferences into parser defaults.
func (c UserConfig) Defaults() checkbox.Defaults {
	return checkbox.Defaults{CheckedBox: c.DefaultCheckedBox, UncheckedBox: c.DefaultUncheckedBox}
}
