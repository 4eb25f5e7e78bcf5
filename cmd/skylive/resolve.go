package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolveCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the view that apply would activate",
		Long: `Runs the selection policy and prints the resolved view key without
touching the engine or the rotation state. Useful for checking a rules
config against the current hour, or previewing the next rotation step.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runResolve(v) },
	}

	f := cmd.Flags()
	f.Int("monitor", -1, "target monitor index (-1 = live index from runtime config)")
	f.Bool("json", false, "output the full resolution as JSON")
	addInputFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runResolve(v *viper.Viper) error {
	setupLogging(v)

	sw, err := newSwitcher(v, true)
	if err != nil {
		return err
	}

	res, err := sw.Run(context.Background())
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(enc))
		return nil
	}
	fmt.Println(res.Key)
	return nil
}
