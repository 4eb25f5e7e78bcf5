package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvarner/skylive/internal/companion"
	"github.com/mvarner/skylive/internal/engine"
)

func newCompanionsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "companions",
		Short: "Set time-matched static wallpapers on the non-live monitors",
		Long: `Picks static images matching the current time band (morning, afternoon,
evening) and applies them to every monitor except the live one. Images come
from the static directory; a manual_labels/<band>/ subdirectory is
preferred when it holds images, otherwise the whole directory is the pool.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCompanions(v) },
	}

	f := cmd.Flags()
	f.String("static-dir", "static_backgrounds", "root directory of static companion images")
	f.Int("count", 2, "number of distinct images to pick")
	f.String("runtime-config", "runtime_config.json", "runtime defaults (live monitor index)")
	f.String("engine", defaultEnginePath(), "wallpaper engine executable")
	f.Duration("timeout", 30*time.Second, "engine timeout")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runCompanions(v *viper.Viper) error {
	setupLogging(v)

	band := companion.Band(time.Now())
	pool, err := companion.Pool(v.GetString("static-dir"), band)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		slog.Info("no static images found, nothing to do", "dir", v.GetString("static-dir"))
		return nil
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	chosen := companion.Pick(pool, v.GetInt("count"), rng)
	if len(chosen) == 0 {
		slog.Info("no companion images picked, nothing to do", "count", v.GetInt("count"))
		return nil
	}
	slog.Info("companions picked", "band", band, "images", chosen)

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()

	gw := engine.NewExec(v.GetString("engine"))
	monitors, err := gw.Monitors(ctx)
	if err != nil {
		return err
	}

	liveIdx := engine.LiveMonitorIndex(v.GetString("runtime-config"))
	applied, err := applyCompanions(ctx, gw, monitors, chosen, liveIdx)
	if err != nil {
		return err
	}

	if applied == 0 {
		slog.Info("no companion monitors", "live_index", liveIdx)
		return nil
	}
	fmt.Printf("Applied %d companion wallpaper(s), band %s (live monitor %d skipped).\n", applied, band, liveIdx)
	return nil
}

// applyCompanions places the chosen images round-robin on every monitor
// except the live one. An empty chosen slice applies nothing.
func applyCompanions(ctx context.Context, gw engine.Gateway, monitors []engine.Monitor, chosen []string, liveIdx int) (int, error) {
	if len(chosen) == 0 {
		return 0, nil
	}
	applied := 0
	for _, m := range monitors {
		if m.Index == liveIdx {
			continue
		}
		img := chosen[applied%len(chosen)]
		if err := gw.SetStatic(ctx, m.Index, img); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
