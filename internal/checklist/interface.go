package checklist

import (
	"context"

	"checkbot/internal/model"
)

// UseCase keeps every copy of a checklist in sync.
type UseCase interface {
	// Create sends a new checklist and wires its toggle links.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)

	// Toggle flips one line of an existing checklist from a deep-link token.
	Toggle(ctx context.Context, sc model.Scope, input ToggleInput) (ToggleOutput, error)

	// ConvertChannelPost turns a channel post into a checklist in place.
	ConvertChannelPost(ctx context.Context, input ChannelPostInput) error

	// Read returns the current lines of a checklist for the mini app.
	Read(ctx context.Context, sc model.Scope, input ReadInput) (ReadOutput, error)

	// Update replaces the lines of a checklist edited in the mini app.
	Update(ctx context.Context, sc model.Scope, input UpdateInput) error

	// CreateFromWebApp sends a checklist composed in the mini app.
	CreateFromWebApp(ctx context.Context, sc model.Scope, input UpdateInput) (CreateOutput, error)

	// MintDraftLocation signs an unsent location the mini app can create into.
	MintDraftLocation(ctx context.Context, sc model.Scope) (string, error)
}
