package checklist

import (
	"checkbot/internal/checkbox"
	"checkbot/internal/location"
)

// ChannelSalt marks checklists converted from channel posts.
const ChannelSalt = "CHA"

// CreateInput describes a checklist to send. SourceChatID receives the
// canonical copy; ForeignChatID, when set, receives a mirror.
type CreateInput struct {
	Data            checkbox.Data
	SourceChatID    int64
	ForeignChatID   int64
	InlineMessageID string
	IsPersonal      bool
	Salt            string // generated when empty
}

// CreateOutput is the result of Create.
type CreateOutput struct {
	Location location.Location
}

// ToggleInput carries the decoded deep-link fields of a toggle URL.
type ToggleInput struct {
	Parts []string
}

// ToggleOutput is the result of Toggle.
type ToggleOutput struct {
	Location location.Location
	Data     checkbox.Data
	Line     int
	Stats    checkbox.Stats
	// Private is set when the checklist only lives in the caller's chat, so
	// the toggle is already visible where the user pressed it.
	Private bool
}

// ChannelPostInput is a channel post carrying "#check".
type ChannelPostInput struct {
	ChatID    int64
	MessageID int64
	Text      string
}

// ReadInput identifies a checklist by its escaped location parameter.
type ReadInput struct {
	Location string
}

// ReadOutput is the result of Read.
type ReadOutput struct {
	Data checkbox.Data
}

// UpdateInput replaces the lines of the checklist at Location.
type UpdateInput struct {
	Location string
	Lines    []checkbox.Line
}
