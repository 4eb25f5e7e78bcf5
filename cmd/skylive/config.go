package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and SKYLIVE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → SKYLIVE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("skylive")
		v.SetConfigType("json")
		v.AddConfigPath("/etc/skylive/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/skylive", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("SKYLIVE")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addInputFlags adds the flags locating the pipeline's input documents and
// the engine binary. Every selecting verb takes the same set.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("registry", "projects.json", "project registry (view key → project path)")
	f.String("selector", "view_select.json", "selector config (mode + mode parameters)")
	f.String("runtime-config", "runtime_config.json", "runtime defaults (live monitor index)")
	f.String("state-file", defaultStatePath(), "last-selection state file")
	f.String("lock-file", defaultLockPath(), "advisory lock guarding the run ('' to disable)")
	f.String("engine", defaultEnginePath(), "wallpaper engine executable")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	resolveLogging(v.GetString("log-format"), v.GetString("log-level"))
}
