package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvarner/skylive/internal/engine"
	"github.com/mvarner/skylive/internal/selector"
	"github.com/mvarner/skylive/internal/state"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the selection mode, persisted state and active wallpaper",
		Long: `Reports the configured selection mode, the persisted last selection, and
(best effort) what the engine says is currently active on the live monitor.
The engine query failing is not fatal; the rest is still printed.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	f := cmd.Flags()
	f.Int("monitor", -1, "monitor to query (-1 = live index from runtime config)")
	f.Duration("timeout", 10*time.Second, "engine query timeout")
	f.Bool("json", false, "output raw JSON")
	addInputFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

type statusReport struct {
	Mode    string `json:"mode"`
	Monitor int    `json:"monitor"`
	Last    string `json:"last,omitempty"`
	Active  string `json:"active,omitempty"`
}

func runStatus(v *viper.Viper) error {
	setupLogging(v)

	cfg, err := selector.Load(v.GetString("selector"))
	if err != nil {
		return err
	}

	monitor := v.GetInt("monitor")
	if monitor < 0 {
		monitor = engine.LiveMonitorIndex(v.GetString("runtime-config"))
	}

	last, err := state.New(v.GetString("state-file")).Load()
	if err != nil {
		return err
	}

	report := statusReport{
		Mode:    string(selector.ParseMode(cfg.Mode)),
		Monitor: monitor,
		Last:    last,
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()
	active, err := engine.NewExec(v.GetString("engine")).Active(ctx, monitor)
	if err != nil {
		slog.Warn("engine query failed", "err", err)
	} else {
		report.Active = active
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Mode:\t%s\n", report.Mode)
	fmt.Fprintf(w, "Monitor:\t%d\n", report.Monitor)
	fmt.Fprintf(w, "Last selection:\t%s\n", orDash(report.Last))
	fmt.Fprintf(w, "Active:\t%s\n", orDash(report.Active))
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
