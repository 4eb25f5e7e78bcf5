// skylive: satellite imagery as rotating desktop wallpaper.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvarner/skylive/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "skylive",
		Short: "Satellite imagery as live desktop wallpaper",
		Long: `skylive decides which satellite view the live monitor shows and asks the
wallpaper engine to display it. It is the selection step of the larger
fetch → deploy → select pipeline and exits non-zero on any failure so the
pipeline halts instead of silently degrading.

Selection modes (view_select.json):
  manual  pin one view
  rotate  step through a fixed order, one view per run
  rules   pick by hour of day: night / twilight / day windows

Config file search order (first found wins):
  /etc/skylive/skylive.json
  $HOME/.config/skylive/skylive.json
  path supplied via --config

All flags can be set via SKYLIVE_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newApplyCmd(),
		newResolveCmd(),
		newStatusCmd(),
		newMonitorsCmd(),
		newCompanionsCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("skylive %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(formatStr, levelStr string) {
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr))
}
