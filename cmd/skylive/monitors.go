package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvarner/skylive/internal/engine"
)

func newMonitorsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List the monitors known to the wallpaper engine",
		Long: `Enumerates the displays the engine can drive, with their current
wallpaper. Use the index column for --monitor flags and for live_index in
runtime_config.json.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runMonitors(v) },
	}

	f := cmd.Flags()
	f.String("engine", defaultEnginePath(), "wallpaper engine executable")
	f.Duration("timeout", 10*time.Second, "engine query timeout")
	f.Bool("json", false, "output raw JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runMonitors(v *viper.Viper) error {
	setupLogging(v)

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()

	monitors, err := engine.NewExec(v.GetString("engine")).Monitors(ctx)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(monitors, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	if len(monitors) == 0 {
		fmt.Println("No monitors reported.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INDEX\tID\tWALLPAPER\n")
	fmt.Fprintf(w, "-----\t--\t---------\n")
	for _, m := range monitors {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.Index, m.ID, orDash(m.Wallpaper))
	}
	return w.Flush()
}
