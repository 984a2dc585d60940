package app

import (
	"context"

	"spiderquest/internal/state"
)

// Store is the durable backend the app needs: the progress key-value table
// plus the settings table.
type Store interface {
	state.KV
	state.Settings
	EnsureSchema(ctx context.Context) error
}

// Audio is the feedback sink modes and the controller play through.
type Audio interface {
	Success()
	Fail()
	Click()
	Enabled() bool
	SetEnabled(bool)
	Close() error
}

// Books opens or exports the bundled PDF documents.
type Books interface {
	Available() bool
	Open(ctx context.Context, id string) (string, error)
	Download(ctx context.Context, id, dir string) (string, error)
}
