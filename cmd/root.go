// =============================================================================
// BOM Compare - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bomcompare)
//   ├── compareCmd  (bomcompare compare)
//   ├── validateCmd (bomcompare validate)
//   ├── initCmd     (bomcompare init)
//   └── versionCmd  (bomcompare version)
//
// CONFIGURATION:
//   Before any command runs, the root command:
//   1. Loads the configuration (--config, bomcompare.yaml, BOMCOMPARE_* env)
//   2. Builds the zap logger (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// When empty, bomcompare.yaml in the working directory is used if present.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are set up by the root command before a subcommand
// runs.
var (
	appConfig *config.MainConfig
	logger    = zap.NewNop()
)

// skipConfigAnnotation marks commands that run without loading the config.
const skipConfigAnnotation = "skip-config"

// ErrDifferencesFound is returned by compare --exit-code when the sources
// differ. Execute turns it into exit status 1 without printing it.
var ErrDifferencesFound = errors.New("BOM sources differ")

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bomcompare",
	Short: "BOM Compare - Compare bills of materials across revisions",
	Long: `BOM Compare reads two or more bills of materials exported as XLSX or CSV,
matches their items by identifier and reports every field that differs.

Key Features:
  - Items missing from a source are reported with all their fields
  - Order data (manufacturer part numbers) is compared independent of row order
  - Reports as text, CSV, JSON, YAML, XML or XLSX
  - Sheet layout (start row, columns) configurable via bomcompare.yaml

Example Usage:
  bomcompare compare old.xlsx new.xlsx           # Print the differences
  bomcompare compare revisions/ -f xlsx -o out/  # Compare every BOM in a directory
  bomcompare validate old.xlsx                   # Check a BOM can be read
  bomcompare init                                # Write a default bomcompare.yaml`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfigAnnotation] == "true" {
			return nil
		}
		return setup()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// setup loads the configuration and builds the logger.
func setup() error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	l, err := config.InitLogger(cfg.Log)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrDifferencesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is ./"+config.DefaultConfigName+" if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
