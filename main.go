// =============================================================================
// BOM Compare - Main Entry Point
// =============================================================================
//
// This is the main entry point for the BOM Compare CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   bomcompare compare   - Compare two or more BOMs and report differences
//   bomcompare validate  - Check BOMs can be read with the configured layout
//   bomcompare init      - Write a default configuration file
//   bomcompare version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Extraction, aggregation, diffing and report output
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/BOM-compare/cmd"
)

func main() {
	cmd.Execute()
}
