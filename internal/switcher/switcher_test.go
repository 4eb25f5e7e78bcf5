package switcher

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarner/skylive/internal/engine"
	"github.com/mvarner/skylive/internal/registry"
	"github.com/mvarner/skylive/internal/selector"
	"github.com/mvarner/skylive/internal/state"
)

// fakeGateway records Open calls and can be told to fail.
type fakeGateway struct {
	opened  []string
	openErr error
}

func (f *fakeGateway) Open(_ context.Context, descriptor string, _ int) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, descriptor)
	return nil
}

func (f *fakeGateway) Active(context.Context, int) (string, error) {
	if len(f.opened) == 0 {
		return "", nil
	}
	return f.opened[len(f.opened)-1], nil
}

func (f *fakeGateway) Monitors(context.Context) ([]engine.Monitor, error) {
	return []engine.Monitor{{Index: 0, ID: "D0"}, {Index: 1, ID: "D1"}}, nil
}

func (f *fakeGateway) SetStatic(context.Context, int, string) error { return nil }

// newRegistry builds a registry file plus real project dirs (with
// descriptors) for the given keys and loads it.
func newRegistry(t *testing.T, keys ...string) *registry.Registry {
	t.Helper()
	root := t.TempDir()

	entries := make(map[string]map[string]string, len(keys))
	for _, key := range keys {
		dir := filepath.Join(root, key)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, registry.DescriptorName), []byte(`{}`), 0o644))
		entries[key] = map[string]string{"project_path": dir}
	}

	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	regPath := filepath.Join(root, "projects.json")
	require.NoError(t, os.WriteFile(regPath, raw, 0o644))

	reg, err := registry.Load(regPath)
	require.NoError(t, err)
	return reg
}

func newSwitcher(t *testing.T, reg *registry.Registry, cfg selector.Config, gw engine.Gateway) *Switcher {
	t.Helper()
	dir := t.TempDir()
	return &Switcher{
		Registry: reg,
		Selector: cfg,
		State:    state.New(filepath.Join(dir, "last_view")),
		Gateway:  gw,
		Clock:    clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)),
		Monitor:  0,
		LockPath: filepath.Join(dir, "run.lock"),
	}
}

func TestRotateCycle(t *testing.T) {
	reg := newRegistry(t, "A", "B", "C")
	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "rotate", RotateOrder: []string{"A", "B", "C"}}, gw)

	// Four consecutive runs walk the cycle and wrap: A, B, C, A.
	want := []string{"A", "B", "C", "A"}
	for i, key := range want {
		res, err := sw.Run(context.Background())
		require.NoError(t, err, "run %d", i)
		assert.Equal(t, key, res.Key, "run %d", i)
		assert.True(t, res.Activated, "run %d", i)
		assert.True(t, res.Persisted, "run %d", i)

		stored, err := sw.State.Load()
		require.NoError(t, err)
		assert.Equal(t, key, stored, "run %d", i)
	}
	assert.Len(t, gw.opened, 4)
}

func TestManualDoesNotPersist(t *testing.T) {
	reg := newRegistry(t, "A")
	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "A"}, gw)

	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Activated)
	assert.False(t, res.Persisted)

	stored, err := sw.State.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRulesUsesClock(t *testing.T) {
	reg := newRegistry(t, "day", "night", "twilight")
	gw := &fakeGateway{}
	cfg := selector.Config{
		Mode: "rules",
		Rules: &selector.Rules{
			DayView:       "day",
			NightView:     "night",
			TwilightView:  "twilight",
			NightHours:    [2]int{19, 5},
			TwilightHours: [4]int{5, 7, 17, 19},
		},
	}
	sw := newSwitcher(t, reg, cfg, gw)
	sw.Clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 3, 0, 0, 0, time.Local))

	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "night", res.Key)
}

func TestUnknownKeyCheckedBeforeActivation(t *testing.T) {
	reg := newRegistry(t, "A")
	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "missing"}, gw)

	_, err := sw.Run(context.Background())
	assert.ErrorIs(t, err, registry.ErrUnknownKey)
	assert.Empty(t, gw.opened, "engine must not be called for an unknown key")
}

func TestNoActiveViewPropagates(t *testing.T) {
	reg := newRegistry(t, "A")
	sw := newSwitcher(t, reg, selector.Config{Mode: "rotate"}, &fakeGateway{})

	_, err := sw.Run(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoActiveView)
}

func TestActivationFailureKeepsState(t *testing.T) {
	reg := newRegistry(t, "A", "B")
	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "rotate", RotateOrder: []string{"A", "B"}}, gw)

	// First run succeeds and lands on A.
	_, err := sw.Run(context.Background())
	require.NoError(t, err)

	// Second run fails at the engine: state must still say A, so the next
	// attempt retries B instead of skipping it.
	gw.openErr = engine.ErrActivationFailed
	_, err = sw.Run(context.Background())
	assert.ErrorIs(t, err, engine.ErrActivationFailed)

	stored, err := sw.State.Load()
	require.NoError(t, err)
	assert.Equal(t, "A", stored)

	// Engine recovers: the rotation resumes where it stalled.
	gw.openErr = nil
	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B", res.Key)
}

func TestDryRun(t *testing.T) {
	reg := newRegistry(t, "A", "B")
	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "rotate", RotateOrder: []string{"A", "B"}}, gw)
	sw.DryRun = true

	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", res.Key)
	assert.NotEmpty(t, res.Descriptor)
	assert.False(t, res.Activated)
	assert.False(t, res.Persisted)
	assert.Empty(t, gw.opened)

	// Dry runs never advance the rotation.
	stored, err := sw.State.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMissingDescriptorFatal(t *testing.T) {
	reg := newRegistry(t, "A")

	// Registry entry exists but its descriptor has been deleted since load.
	entry, err := reg.Lookup("A")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(entry.ProjectPath, registry.DescriptorName)))

	gw := &fakeGateway{}
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "A"}, gw)

	_, err = sw.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, gw.opened)
}

func TestRunWithoutLockPath(t *testing.T) {
	reg := newRegistry(t, "A")
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "A"}, &fakeGateway{})
	sw.LockPath = ""

	_, err := sw.Run(context.Background())
	require.NoError(t, err)
}

func TestStateLoadErrorFatal(t *testing.T) {
	reg := newRegistry(t, "A")
	sw := newSwitcher(t, reg, selector.Config{Mode: "rotate", RotateOrder: []string{"A"}}, &fakeGateway{})

	// A directory at the state path makes Load fail with a real error (not
	// fs.ErrNotExist), which must abort the run.
	require.NoError(t, os.MkdirAll(sw.State.Path(), 0o755))

	_, err := sw.Run(context.Background())
	assert.Error(t, err)
}

func TestUnknownKeyErrorNamesKey(t *testing.T) {
	reg := newRegistry(t, "A")
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "GOES-Missing"}, &fakeGateway{})

	_, err := sw.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOES-Missing")
}

var _ engine.Gateway = (*fakeGateway)(nil)

func TestActivationErrorWrapsKey(t *testing.T) {
	reg := newRegistry(t, "A")
	gw := &fakeGateway{openErr: errors.New("engine busy")}
	sw := newSwitcher(t, reg, selector.Config{Mode: "manual", ActiveView: "A"}, gw)

	_, err := sw.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"A"`)
}
