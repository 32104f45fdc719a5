// =============================================================================
// BOM Compare - Compare Command
// =============================================================================
//
// This file defines the 'compare' command, the main command of the tool. It
// orchestrates one comparison from arguments to report.
//
// COMMAND USAGE:
//   bomcompare compare <bom> <bom> [bom...] [flags]
//
// Directory arguments are replaced by the BOM files they contain, sorted by
// name. Sources are loaded in argument order; report column i belongs to
// source i.
//
// FLAGS:
//   --format, -f      : Report format (text, csv, json, yaml, xml, xlsx)
//   --output, -o      : Report file, or directory for a generated name
//   --sheet           : Worksheet to read (default: first sheet)
//   --start-row       : First data row
//   --report-revision : Show Revision rows for items present everywhere
//   --full-paths      : Label report columns with full source paths
//   --no-color        : Disable colored text output
//   --force           : Overwrite an existing report file
//   --exit-code       : Exit with status 1 when the sources differ
//
// PROCESSING PIPELINE:
//   1. Expand directory arguments
//   2. Validate sources and sheet layout
//   3. Compare (extract, aggregate, normalize, diff)
//   4. Report extraction warnings
//   5. Write the report
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/comparer"
	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/reportwriter"
	"github.com/ginjaninja78/BOM-compare/internal/types"
	"github.com/ginjaninja78/BOM-compare/internal/validation"
	"github.com/ginjaninja78/BOM-compare/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// compareOptions holds the flags of the compare command.
type compareOptions struct {
	Format         string
	Output         string
	Sheet          string
	StartRow       int
	ReportRevision bool
	FullPaths      bool
	NoColor        bool
	Force          bool
	ExitCode       bool
}

var compareOpts compareOptions

// =============================================================================
// COMPARE COMMAND DEFINITION
// =============================================================================

// compareCmd represents the 'compare' command.
var compareCmd = &cobra.Command{
	Use:   "compare <bom> <bom> [bom...]",
	Short: "Compare two or more BOMs and report the differences",
	Long: `The compare command reads every BOM, matches items by identifier and
reports, per item, the fields that differ between sources.

An item missing from any source is reported with all of its fields, using
an empty cell for each source that lacks it. Items identical in every source
are left out of the report.

The report goes to stdout unless --output is given. The xlsx format is always
written to a file; without --output it is created in the configured output
directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyCompareFlags(cmd, appConfig, compareOpts)
		return runCompare(appConfig, logger, compareOpts, args, cmd.OutOrStdout(), cmd.Flags().Changed("format"))
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringVarP(&compareOpts.Format, "format", "f", "", "Report format: text, csv, json, yaml, xml or xlsx (default from config)")
	flags.StringVarP(&compareOpts.Output, "output", "o", "", "Report file, or an existing directory to create a generated file name in")
	flags.StringVar(&compareOpts.Sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	flags.IntVar(&compareOpts.StartRow, "start-row", 0, "First data row (default from config)")
	flags.BoolVar(&compareOpts.ReportRevision, "report-revision", false, "Report Revision changes for items present in every source")
	flags.BoolVar(&compareOpts.FullPaths, "full-paths", false, "Label report columns with full source paths")
	flags.BoolVar(&compareOpts.NoColor, "no-color", false, "Disable colored text output")
	flags.BoolVar(&compareOpts.Force, "force", false, "Overwrite an existing report file")
	flags.BoolVar(&compareOpts.ExitCode, "exit-code", false, "Exit with status 1 when the sources differ")
}

// applyCompareFlags copies explicitly set flags over the configuration.
func applyCompareFlags(cmd *cobra.Command, cfg *config.MainConfig, opts compareOptions) {
	if cmd.Flags().Changed("sheet") {
		cfg.Layout.SheetName = opts.Sheet
	}
	if cmd.Flags().Changed("start-row") {
		cfg.Layout.StartRow = opts.StartRow
	}
	if opts.ReportRevision {
		cfg.Diff.ReportRevision = true
	}
}

// =============================================================================
// MAIN COMPARE FUNCTION
// =============================================================================

// runCompare runs one comparison and writes its report. Text reports go to
// stdout unless opts.Output is set.
func runCompare(cfg *config.MainConfig, log *zap.Logger, opts compareOptions, args []string, stdout io.Writer, formatSet bool) error {
	// =========================================================================
	// STEP 1: RESOLVE SOURCES AND FORMAT
	// =========================================================================

	paths, err := utils.ExpandSources(args, comparer.IsSupportedSource)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg, opts, formatSet)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	result := validation.ValidateSources(paths, validation.MinSources)
	result.Merge(validation.ValidateLayout(cfg.Layout))
	if err := result.Err(); err != nil {
		return fmt.Errorf("cannot compare: %w", err)
	}
	logWarnings(log, result)

	// =========================================================================
	// STEP 3: COMPARE
	// =========================================================================

	log.Debug("comparing sources", zap.Strings("sources", paths), zap.String("format", string(format)))

	c := comparer.New(comparer.NewFileOpener(cfg), cfg, log)
	report, err := c.Compare(paths)
	if err != nil {
		return err
	}

	for _, source := range c.Stats().Sources {
		logWarnings(log, validation.ValidateExtraction(source.Path, source.ExtractStats))
	}

	// =========================================================================
	// STEP 4: WRITE REPORT
	// =========================================================================

	writeOpts := reportwriter.Options{FullPaths: opts.FullPaths}

	outputPath, err := resolveOutputPath(cfg, opts.Output, format, paths)
	if err != nil {
		return err
	}

	if outputPath == "" {
		writeOpts.Color = cfg.Output.Color && !opts.NoColor
		if err := reportwriter.Write(stdout, report, format, writeOpts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else {
		if err := writeReportFile(outputPath, opts.Force, report, format, writeOpts); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", outputPath))
		fmt.Fprintf(stdout, "%d item(s) differ. Report written to %s\n", report.Len(), outputPath)
	}

	if opts.ExitCode && !report.Empty() {
		return ErrDifferencesFound
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// resolveFormat picks the report format: the --format flag, then the
// --output extension, then the configured default.
func resolveFormat(cfg *config.MainConfig, opts compareOptions, formatSet bool) (reportwriter.Format, error) {
	if formatSet {
		return reportwriter.ParseFormat(opts.Format)
	}
	if opts.Output != "" && !isDirectory(opts.Output) {
		if format, ok := reportwriter.FormatFromPath(opts.Output); ok {
			return format, nil
		}
	}
	return reportwriter.ParseFormat(cfg.Output.Format)
}

// resolveOutputPath returns the report file path, or "" for stdout.
func resolveOutputPath(cfg *config.MainConfig, output string, format reportwriter.Format, sources []string) (string, error) {
	switch {
	case output == "-":
		if format.Binary() {
			return "", fmt.Errorf("%s reports cannot be written to stdout", format)
		}
		return "", nil
	case output == "":
		if !format.Binary() {
			return "", nil
		}
		return filepath.Join(cfg.Output.Dir, outputFileName(cfg, format, sources)), nil
	case isDirectory(output) || strings.HasSuffix(output, string(os.PathSeparator)):
		return filepath.Join(output, outputFileName(cfg, format, sources)), nil
	}
	return output, nil
}

// outputFileName generates a report file name from the configured pattern.
func outputFileName(cfg *config.MainConfig, format reportwriter.Format, sources []string) string {
	stems := make([]string, 0, len(sources))
	for _, source := range sources {
		stems = append(stems, utils.SourceStem(source))
	}

	params := map[string]string{"sources": strings.Join(stems, "_vs_")}
	if len(stems) > 0 {
		params["first"] = stems[0]
		params["last"] = stems[len(stems)-1]
	}

	return utils.GenerateOutputFileName(cfg.Output.FileNameFormat, params, format.Extension())
}

// writeReportFile writes the report to path.
func writeReportFile(path string, overwrite bool, report *types.DiffReport, format reportwriter.Format, opts reportwriter.Options) error {
	file, err := utils.CreateOutputFile(path, overwrite)
	if err != nil {
		return err
	}

	if err := reportwriter.Write(file, report, format, opts); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// logWarnings logs the non-fatal findings of a validation result.
func logWarnings(log *zap.Logger, result *validation.ValidationResult) {
	for _, finding := range result.Errors {
		if finding.Severity != validation.SeverityWarning {
			continue
		}
		log.Warn(finding.Message,
			zap.String("source", finding.Source),
			zap.String("field", finding.Field),
			zap.String("value", finding.Value))
	}
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
