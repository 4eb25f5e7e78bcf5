// Package selector decides which view key the live monitor should show.
//
// The selector config is a small JSON document maintained next to the
// project registry. Three modes exist: manual pins one view, rotate cycles
// through a fixed order (one step per invocation), and rules picks by the
// current hour of day against night/twilight windows.
package selector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// Mode is a selection strategy.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeRotate Mode = "rotate"
	ModeRules  Mode = "rules"
)

// ParseMode normalizes a mode string. Matching is case-insensitive and
// anything unrecognized (including the empty string) means manual.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rotate":
		return ModeRotate
	case "rules":
		return ModeRules
	default:
		return ModeManual
	}
}

// Rules holds the time-of-day windows for rules mode. Hours are local
// hour-of-day integers in [0,23]; every window is half-open [start, end).
type Rules struct {
	DayView      string `json:"day_view"`
	NightView    string `json:"night_view"`
	TwilightView string `json:"twilight_view"`

	// NightHours may wrap past midnight: [19, 5] means 19:00–05:00.
	NightHours [2]int `json:"night_hours"`

	// TwilightHours is two disjoint windows: [a, b, c, d] means
	// [a,b) and [c,d), typically dawn and dusk.
	TwilightHours [4]int `json:"twilight_hours"`
}

// Config is the selector document.
type Config struct {
	Mode        string   `json:"mode"`
	ActiveView  string   `json:"active_view"`
	RotateOrder []string `json:"rotate_order"`
	Rules       *Rules   `json:"rules"`
}

// DefaultView is the view pinned when no selector config exists. It is the
// deployment's primary full-disk GeoColor view.
const DefaultView = "GOES-19_East_752W_Full_Disk_GeoColor_CIRA"

// Default is the embedded fallback used when the selector file is absent.
func Default() Config {
	return Config{Mode: string(ModeManual), ActiveView: DefaultView}
}

// Load reads the selector config at path. An absent file falls back to
// Default; a present but malformed file is an error. Overlapping rule
// windows are tolerated (night wins by precedence) but logged.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("selector config absent, using default", "path", path, "view", DefaultView)
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read selector config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse selector config %s: %w", path, err)
	}

	if ParseMode(cfg.Mode) == ModeRules && cfg.Rules != nil {
		if hours := overlapHours(cfg.Rules); len(hours) > 0 {
			slog.Warn("night window shadows twilight hours; night takes precedence",
				"hours", hours, "path", path)
		}
	}
	return cfg, nil
}

// overlapHours returns the hours claimed by both the night window and a
// twilight window, in ascending order.
func overlapHours(r *Rules) []int {
	var both []int
	for h := 0; h < 24; h++ {
		if nightAt(r, h) && twilightAt(r, h) {
			both = append(both, h)
		}
	}
	return both
}
