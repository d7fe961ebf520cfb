// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilewave/internal/config"
)

var (
	rulesFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:          "tilegen",
	Short:        "Wave-function-collapse tile map generator",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesFile, "file", "f", "", "YAML rule set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every attempt and collapse")
	_ = rootCmd.MarkPersistentFlagRequired("file")
}

// newLogger writes structured logs to stderr so stdout stays clean for output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("component", "tilegen"))
}

// loadSetup loads the rule set, applies flag overrides and compiles it.
func loadSetup(logger *slog.Logger, override func(*config.Config)) (*config.Setup, error) {
	cfg, err := config.Load(rulesFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	setup, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	logger.Debug("rules compiled",
		slog.String("file", rulesFile),
		slog.String("grid", setup.Grid.String()),
		slog.Int("models", setup.Rules.ModelsCount()),
		slog.Int("instances", setup.Rules.InstancesCount()),
	)
	return setup, nil
}
