package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/mvarner/skylive/internal/engine"
	"github.com/mvarner/skylive/internal/registry"
	"github.com/mvarner/skylive/internal/selector"
	"github.com/mvarner/skylive/internal/state"
	"github.com/mvarner/skylive/internal/switcher"
)

func defaultEnginePath() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files (x86)\Steam\steamapps\common\wallpaper_engine\wallpaper64.exe`
	}
	return "linux-wallpaperengine"
}

func defaultStatePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "skylive", "last_view")
	}
	return filepath.Join(os.TempDir(), "skylive-last_view")
}

func defaultLockPath() string {
	return filepath.Join(os.TempDir(), "skylive.lock")
}

// newSwitcher loads the input documents named by v and assembles a
// Switcher around them. Registry problems are fatal here; the selector
// file falls back to its embedded default when absent.
func newSwitcher(v *viper.Viper, dryRun bool) (*switcher.Switcher, error) {
	reg, err := registry.Load(v.GetString("registry"))
	if err != nil {
		return nil, err
	}
	cfg, err := selector.Load(v.GetString("selector"))
	if err != nil {
		return nil, err
	}

	monitor := v.GetInt("monitor")
	if monitor < 0 {
		monitor = engine.LiveMonitorIndex(v.GetString("runtime-config"))
	}

	return &switcher.Switcher{
		Registry: reg,
		Selector: cfg,
		State:    state.New(v.GetString("state-file")),
		Gateway:  engine.NewExec(v.GetString("engine")),
		Clock:    clockwork.NewRealClock(),
		Monitor:  monitor,
		LockPath: v.GetString("lock-file"),
		DryRun:   dryRun,
	}, nil
}
