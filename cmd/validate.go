// =============================================================================
// BOM Compare - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks that BOM files can
// be read with the current sheet layout without comparing them.
//
// COMMAND USAGE:
//   bomcompare validate <bom> [bom...]
//
// OUTPUT:
//   One summary line per source, followed by any findings:
//
//   old.xlsx: 214 rows, 97 items, 117 order entries
//   new.xlsx: 220 rows, 99 items, 121 order entries
//
//   No validation errors.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/BOM-compare/internal/comparer"
	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/validation"
	"github.com/ginjaninja78/BOM-compare/internal/xlsxparser"
	"github.com/ginjaninja78/BOM-compare/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <bom> [bom...]",
	Short: "Check that BOM files can be read with the configured layout",
	Long: `The validate command checks the configured sheet layout, then opens each
BOM and extracts its items exactly as compare would. It reports how many
rows, items and order entries were found, and warns about item rows without
an identifier and order rows without an item above them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(appConfig, logger, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate validates every source and prints a summary.
func runValidate(cfg *config.MainConfig, log *zap.Logger, args []string, stdout io.Writer) error {
	paths, err := utils.ExpandSources(args, comparer.IsSupportedSource)
	if err != nil {
		return err
	}

	result := validation.ValidateLayout(cfg.Layout)
	opener := comparer.NewFileOpener(cfg)

	for _, path := range paths {
		sourceResult := validation.ValidateSource(path)
		result.Merge(sourceResult)
		if !sourceResult.IsValid {
			continue
		}

		sheet, err := opener.Open(path)
		if err != nil {
			result.Add(&validation.ValidationError{
				Severity: validation.SeverityError,
				Source:   path,
				Field:    "path",
				Rule:     "readable",
				Message:  err.Error(),
			})
			continue
		}

		extractor := xlsxparser.NewExtractor(cfg.Layout, log.With(zap.String("source", path)))
		extractor.Extract(sheet)
		stats := extractor.Stats()

		fmt.Fprintf(stdout, "%s: %d rows, %d items, %d order entries\n",
			path, stats.Rows, stats.Items, stats.OrderEntries)

		result.Merge(validation.ValidateExtraction(path, stats))
	}

	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, validation.FormatErrors(result.Errors))
	if len(result.Errors) == 0 {
		fmt.Fprintln(stdout)
	}

	if !result.IsValid {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount)
	}
	return nil
}
