// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilewave/generator"
	"github.com/katalvlaran/tilewave/internal/config"
)

var (
	seed       int64
	retries    int
	format     string
	outputFile string
	timeout    time.Duration
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a tile map",
		Long: `Generate one tile map from a YAML rule set, retrying failed attempts.

Examples:
  tilegen gen -f coast.yaml
  tilegen gen -f coast.yaml --seed 42 --retries 100
  tilegen gen -f caves.yaml --format yaml -o caves-out.yaml`,
		RunE: runGen,
	}

	genCmd.Flags().Int64Var(&seed, "seed", 0, "Fixed seed (overrides the rule set; 0 draws a new seed per attempt)")
	genCmd.Flags().IntVar(&retries, "retries", 0, "Maximum attempts (overrides generation.max_attempts)")
	genCmd.Flags().StringVar(&format, "format", formatText, "Output format: text or yaml")
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	genCmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop retrying after this long (0 = no limit)")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	if format != formatText && format != formatYAML {
		return fmt.Errorf("unknown format %q (use %s or %s)", format, formatText, formatYAML)
	}
	logger := newLogger()

	flags := cmd.Flags()
	setup, err := loadSetup(logger, func(cfg *config.Config) {
		if flags.Changed("seed") {
			cfg.Generation.Seed = seed
		}
		if flags.Changed("retries") {
			cfg.Generation.MaxAttempts = retries
		}
	})
	if err != nil {
		return err
	}

	opts := append(setup.Options,
		generator.WithOnContradiction(func(e *generator.GeneratorError) {
			logger.Debug("attempt failed",
				slog.Int("node", e.Node),
				slog.Int("source", e.Source),
				slog.Int64("seed", e.Seed),
			)
		}),
	)
	if verbose {
		opts = append(opts, generator.WithOnCollapse(func(node, instance int) {
			logger.Debug("collapse",
				slog.Int("node", node),
				slog.String("model", setup.Rules.ModelName(instance)),
				slog.String("rotation", setup.Rules.Instance(instance).Rotation.String()),
			)
		}))
	}

	gen, err := generator.New(setup.Grid, setup.Rules, opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := gen.GenerateWithRetries(ctx)
	if err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		return fmt.Errorf("generation failed: %w", err)
	}
	logger.Info("generated",
		slog.Int("attempts", res.Info.Attempts),
		slog.Int64("seed", res.Info.Seed),
		slog.Int("collapses", res.Info.Collapses),
		slog.Int("propagations", res.Info.Propagations),
		slog.Duration("duration", time.Since(start)),
	)

	var w io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if format == formatYAML {
		return renderYAML(w, setup, res)
	}
	return renderText(w, setup, res)
}
