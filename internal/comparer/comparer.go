// =============================================================================
// BOM Compare - Comparer Module
// =============================================================================
//
// This module runs one comparison session over N BOM sources. It orchestrates
// the whole pipeline and holds the resulting report for the presentation
// layer.
//
// COMPARISON PIPELINE:
//   1. Open each source in load order (SourceOpener)
//   2. Extract item records from each sheet (xlsxparser.Extractor)
//   3. Merge all sources by item identifier (aggregator.Aggregate)
//   4. Sort items and order entries (aggregator.Normalize)
//   5. Diff every item and keep the non-empty ones (diff.Engine)
//
// FAILURE MODEL:
//   The first source that cannot be read aborts the comparison. No partial
//   aggregation is produced and the previous report is discarded.
//
// CONCURRENCY:
//   A comparison is one synchronous call. A Comparer is not safe for
//   concurrent use.
//
// =============================================================================

package comparer

import (
	"errors"
	"time"

	"github.com/ginjaninja78/BOM-compare/internal/aggregator"
	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/diff"
	"github.com/ginjaninja78/BOM-compare/internal/types"
	"github.com/ginjaninja78/BOM-compare/internal/xlsxparser"
	"go.uber.org/zap"
)

// ErrNoSources is returned when Compare is called without paths.
var ErrNoSources = errors.New("no BOM sources to compare")

// =============================================================================
// STATISTICS
// =============================================================================

// SourceStats describes the extraction of one source.
type SourceStats struct {
	Path string
	xlsxparser.ExtractStats
}

// Stats describes the most recent successful comparison.
type Stats struct {
	// Sources holds per-source extraction counters in load order.
	Sources []SourceStats

	// Items is the number of distinct identifiers across all sources.
	Items int

	// ItemsWithDiffs is the number of items in the report.
	ItemsWithDiffs int

	// MissingItems is the number of items absent from at least one source.
	MissingItems int

	// Duration is the wall time of the comparison.
	Duration time.Duration
}

// =============================================================================
// COMPARER
// =============================================================================

// Comparer compares BOM sources.
type Comparer struct {
	opener SourceOpener
	layout config.SheetLayout
	engine diff.Engine
	logger *zap.Logger

	report *types.DiffReport
	stats  Stats
}

// New creates a Comparer.
//
// PARAMETERS:
//   - opener: Opens sources; use NewFileOpener for files on disk.
//   - cfg: The application configuration (layout and diff switches).
//   - logger: The logger; nil disables logging.
func New(opener SourceOpener, cfg *config.MainConfig, logger *zap.Logger) *Comparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{
		opener: opener,
		layout: cfg.Layout,
		engine: diff.Engine{ReportRevision: cfg.Diff.ReportRevision},
		logger: logger,
	}
}

// Compare loads every source in order and builds a fresh report.
//
// RETURNS:
//   - The report; also available from GetDiff until the next Compare.
//   - A *xlsxparser.SourceReadError for the first source that failed.
func (c *Comparer) Compare(paths []string) (*types.DiffReport, error) {
	startTime := time.Now()

	// A new comparison discards all previous state, even when it fails.
	c.report = nil
	c.stats = Stats{}

	if len(paths) == 0 {
		return nil, ErrNoSources
	}

	// =========================================================================
	// STEP 1: EXTRACT EVERY SOURCE
	// =========================================================================

	extracted := make([][]types.SourceItem, 0, len(paths))
	sourceStats := make([]SourceStats, 0, len(paths))

	for _, path := range paths {
		items, stats, err := c.extract(path)
		if err != nil {
			c.logger.Error("comparison aborted", zap.String("source", path), zap.Error(err))
			return nil, err
		}

		c.logger.Debug("extracted source",
			zap.String("source", path),
			zap.Int("rows", stats.Rows),
			zap.Int("items", stats.Items),
			zap.Int("order_entries", stats.OrderEntries))

		extracted = append(extracted, items)
		sourceStats = append(sourceStats, SourceStats{Path: path, ExtractStats: stats})
	}

	// =========================================================================
	// STEP 2: AGGREGATE AND NORMALIZE
	// =========================================================================

	items := aggregator.Aggregate(extracted)
	aggregator.Normalize(items)

	// =========================================================================
	// STEP 3: DIFF
	// =========================================================================

	report := c.engine.BuildReport(paths, items)

	missing := 0
	for _, item := range items {
		if !item.AllPresent() {
			missing++
		}
	}

	c.report = report
	c.stats = Stats{
		Sources:        sourceStats,
		Items:          len(items),
		ItemsWithDiffs: report.Len(),
		MissingItems:   missing,
		Duration:       time.Since(startTime),
	}

	c.logger.Info("comparison complete",
		zap.Int("sources", len(paths)),
		zap.Int("items", c.stats.Items),
		zap.Int("items_with_diffs", c.stats.ItemsWithDiffs),
		zap.Int("missing_items", c.stats.MissingItems),
		zap.Duration("elapsed", c.stats.Duration))

	return report, nil
}

// GetDiff returns the report of the last successful comparison, or nil.
func (c *Comparer) GetDiff() *types.DiffReport {
	return c.report
}

// Stats returns the statistics of the last successful comparison.
func (c *Comparer) Stats() Stats {
	return c.stats
}

// extract opens one source and reads its items. The sheet is not retained.
func (c *Comparer) extract(path string) ([]types.SourceItem, xlsxparser.ExtractStats, error) {
	sheet, err := c.opener.Open(path)
	if err != nil {
		var sourceErr *xlsxparser.SourceReadError
		if errors.As(err, &sourceErr) {
			return nil, xlsxparser.ExtractStats{}, err
		}
		return nil, xlsxparser.ExtractStats{}, &xlsxparser.SourceReadError{Path: path, Err: err}
	}

	extractor := xlsxparser.NewExtractor(c.layout, c.logger.With(zap.String("source", path)))
	items := extractor.Extract(sheet)

	return items, extractor.Stats(), nil
}

// =============================================================================
// CONVENIENCE ENTRY POINT
// =============================================================================

// CompareSources compares the BOM files at paths using the default
// configuration.
func CompareSources(paths []string) (*types.DiffReport, error) {
	cfg := config.DefaultMainConfig()
	return New(NewFileOpener(cfg), cfg, nil).Compare(paths)
}
