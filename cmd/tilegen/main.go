// SPDX-License-Identifier: MIT

// Command tilegen generates tile maps from a YAML rule set.
//
// Examples:
//
//	tilegen check -f coast.yaml
//	tilegen gen -f coast.yaml --seed 42
//	tilegen gen -f coast.yaml --retries 100 --format yaml -o map.yaml
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
