// Package engine talks to the external wallpaper-rendering application.
//
// The application exposes a command-style control surface: an executable
// invoked with a verb plus arguments. skylive never renders anything
// itself; it asks the engine to open a project descriptor on a monitor,
// reports what is currently shown, and places static images on the
// monitors that do not carry the live view.
package engine

import (
	"context"
	"errors"
)

// ErrActivationFailed is returned when the engine binary is unreachable or
// rejects a request. Activation failures are fatal to the invocation; the
// caller must not advance any rotation state past them.
var ErrActivationFailed = errors.New("activation failed")

// Monitor describes one display known to the engine. Index is the 0-based
// position used everywhere in skylive config; ID is the engine's own
// device identifier.
type Monitor struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Wallpaper string `json:"wallpaper,omitempty"`
}

// Gateway is the engine's command surface. Open and SetStatic are
// mutations and their errors are fatal; Active and Monitors are
// best-effort queries.
type Gateway interface {
	// Open asks the engine to display the project descriptor on monitor.
	Open(ctx context.Context, descriptor string, monitor int) error

	// Active returns the descriptor currently displayed on monitor.
	Active(ctx context.Context, monitor int) (string, error)

	// Monitors enumerates the displays the engine can drive.
	Monitors(ctx context.Context) ([]Monitor, error)

	// SetStatic asks the engine to show a static image on monitor.
	SetStatic(ctx context.Context, monitor int, image string) error
}
