package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply the selection on an interval until interrupted",
		Long: `Runs apply immediately and then once per interval, reloading the selector
config each time so edits take effect without a restart. In rules mode this
is what tracks the day/twilight/night transitions; in rotate mode each tick
advances the cycle by one view.

A failed pass is logged and the loop continues; the next tick retries from
the same rotation position.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.Duration("interval", 15*time.Minute, "time between passes")
	f.Int("monitor", -1, "target monitor index (-1 = live index from runtime config)")
	f.Duration("timeout", 30*time.Second, "engine activation timeout per pass")
	addInputFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	setupLogging(v)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := v.GetDuration("interval")
	slog.Info("watch started", "interval", interval)

	watchLoop(ctx, clockwork.NewRealClock(), interval, func(ctx context.Context) { pass(ctx, v) })
	return nil
}

// watchLoop runs fn immediately and then once per tick until ctx is done.
func watchLoop(ctx context.Context, clock clockwork.Clock, interval time.Duration, fn func(context.Context)) {
	fn(ctx)

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped")
			return
		case <-ticker.Chan():
			fn(ctx)
		}
	}
}

// pass runs one apply sequence, reloading the input documents so config
// edits between ticks are honored.
func pass(ctx context.Context, v *viper.Viper) {
	sw, err := newSwitcher(v, false)
	if err != nil {
		slog.Error("pass skipped", "err", err)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, v.GetDuration("timeout"))
	defer cancel()

	if _, err := sw.Run(runCtx); err != nil {
		slog.Error("pass failed", "err", err)
	}
}
