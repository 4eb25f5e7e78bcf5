// Package switcher runs one resolve→activate→persist pass: decide which
// view the live monitor should show, ask the engine to show it, and record
// the choice so rotate mode can advance next time.
//
// The whole pass runs under an advisory file lock. Scheduled pipeline runs
// and ad-hoc CLI runs can otherwise overlap, and two concurrent passes
// would race both on the state file and at the engine.
package switcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"

	"github.com/mvarner/skylive/internal/engine"
	"github.com/mvarner/skylive/internal/registry"
	"github.com/mvarner/skylive/internal/selector"
	"github.com/mvarner/skylive/internal/state"
)

// lockRetry is how often a blocked lock acquisition re-polls.
const lockRetry = 250 * time.Millisecond

// Switcher wires the pieces of one pass together.
type Switcher struct {
	Registry *registry.Registry
	Selector selector.Config
	State    *state.Store
	Gateway  engine.Gateway
	Clock    clockwork.Clock

	// Monitor is the target monitor for the live view.
	Monitor int

	// LockPath guards the pass when non-empty.
	LockPath string

	// DryRun stops after the registry lookup: nothing is activated and no
	// state is written.
	DryRun bool
}

// Result reports what a pass decided and did.
type Result struct {
	Key        string `json:"key"`
	Descriptor string `json:"descriptor"`
	Monitor    int    `json:"monitor"`
	Activated  bool   `json:"activated"`
	Persisted  bool   `json:"persisted"`
}

// Run executes one pass. The resolved key is validated against the
// registry before any engine call, and rotation state is persisted only
// after the engine accepts the activation, so a failed pass repeats the
// same key next time instead of skipping it.
func (s *Switcher) Run(ctx context.Context) (Result, error) {
	if s.LockPath != "" {
		lock := flock.New(s.LockPath)
		locked, err := lock.TryLockContext(ctx, lockRetry)
		if err != nil {
			return Result{}, fmt.Errorf("acquire lock %s: %w", s.LockPath, err)
		}
		if !locked {
			return Result{}, fmt.Errorf("lock %s held by another run", s.LockPath)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				slog.Warn("release lock failed", "path", s.LockPath, "err", err)
			}
		}()
	}
	return s.run(ctx)
}

func (s *Switcher) run(ctx context.Context) (Result, error) {
	lastKey, err := s.State.Load()
	if err != nil {
		return Result{}, err
	}

	key, err := selector.Resolve(s.Selector, lastKey, s.Clock.Now())
	if err != nil {
		return Result{}, err
	}

	descriptor, err := s.Registry.Descriptor(key)
	if err != nil {
		return Result{}, err
	}

	res := Result{Key: key, Descriptor: descriptor, Monitor: s.Monitor}
	if s.DryRun {
		return res, nil
	}

	if err := s.Gateway.Open(ctx, descriptor, s.Monitor); err != nil {
		return res, fmt.Errorf("view %q: %w", key, err)
	}
	res.Activated = true
	slog.Info("view activated", "key", key, "monitor", s.Monitor)

	if selector.ParseMode(s.Selector.Mode) == selector.ModeRotate {
		if err := s.State.Save(key); err != nil {
			return res, fmt.Errorf("view %q activated but not persisted: %w", key, err)
		}
		res.Persisted = true
	}
	return res, nil
}
