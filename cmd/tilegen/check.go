// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilewave/generator"
)

func init() {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate and compile a rule set without generating",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	setup, err := loadSetup(logger, nil)
	if err != nil {
		return err
	}
	// New rejects grid and rules that disagree, and invalid pins.
	if _, err := generator.New(setup.Grid, setup.Rules, setup.Options...); err != nil {
		return err
	}

	r := setup.Rules
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "grid:      %s\n", setup.Grid)
	fmt.Fprintf(out, "models:    %d\n", r.ModelsCount())
	fmt.Fprintf(out, "instances: %d\n", r.InstancesCount())
	for m := 0; m < r.ModelsCount(); m++ {
		insts := r.InstancesOf(m)
		fmt.Fprintf(out, "  %-12s %s  weight %-6g rotations %d\n",
			r.ModelName(insts[0]), setup.Glyphs[m], r.ModelWeight(m), len(insts))
	}
	return nil
}
