package engine

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EnvLiveMonitor overrides the configured live monitor index when set to a
// non-negative integer.
const EnvLiveMonitor = "LIVE_MONITOR_INDEX"

// runtimeConfig is the slice of the runtime defaults document we care
// about. live_index historically appeared both at the top level and under
// "defaults"; the top-level value wins.
type runtimeConfig struct {
	LiveIndex *int `json:"live_index"`
	Defaults  struct {
		LiveIndex *int `json:"live_index"`
	} `json:"defaults"`
}

// LiveMonitorIndex returns the monitor reserved for the live view: the
// LIVE_MONITOR_INDEX env var if set, else the runtime defaults document at
// path. A missing or malformed document falls back to monitor 0 — the
// live view must land somewhere even when the config is broken.
func LiveMonitorIndex(path string) int {
	if env := strings.TrimSpace(os.Getenv(EnvLiveMonitor)); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n >= 0 {
			return n
		}
		slog.Warn("ignoring invalid "+EnvLiveMonitor, "value", env)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var cfg runtimeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		slog.Warn("malformed runtime config, using monitor 0", "path", path, "err", err)
		return 0
	}

	idx := cfg.Defaults.LiveIndex
	if cfg.LiveIndex != nil {
		idx = cfg.LiveIndex
	}
	if idx == nil || *idx < 0 {
		return 0
	}
	return *idx
}
