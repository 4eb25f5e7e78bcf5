package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newApplyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Resolve the view to show and activate it",
		Long: `Resolves one view key from the selector config (manual, rotate or rules
mode), looks it up in the project registry, and asks the wallpaper engine to
display its project on the live monitor.

In rotate mode the chosen key is persisted after a successful activation, so
the next run advances the cycle. A failed activation leaves the state
untouched and the run exits non-zero.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runApply(v) },
	}

	f := cmd.Flags()
	f.Int("monitor", -1, "target monitor index (-1 = live index from runtime config)")
	f.Bool("dry-run", false, "resolve and print the key without activating")
	f.Duration("timeout", 30*time.Second, "engine activation timeout")
	addInputFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runApply(v *viper.Viper) error {
	setupLogging(v)

	sw, err := newSwitcher(v, v.GetBool("dry-run"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()

	res, err := sw.Run(ctx)
	if err != nil {
		return err
	}
	if sw.DryRun {
		fmt.Println(res.Key)
	}
	return nil
}
