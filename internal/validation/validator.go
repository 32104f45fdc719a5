// =============================================================================
// BOM Compare - Validation Engine
// =============================================================================
//
// This module checks comparison inputs before and after extraction:
//   1. Source-level: the paths exist, are files and have a supported type
//   2. Layout-level: the configured sheet layout is usable
//   3. Extraction-level: what the extractor skipped or dropped in a source
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error names the source, field and offending value
//   - Errors can be warnings (comparison can run) or fatal (it cannot)
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ginjaninja78/BOM-compare/internal/comparer"
	"github.com/ginjaninja78/BOM-compare/internal/config"
	"github.com/ginjaninja78/BOM-compare/internal/xlsxparser"
	"github.com/xuri/excelize/v2"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// MinSources is the number of sources a comparison needs to show anything.
const MinSources = 2

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Source is the BOM path the finding belongs to, if any.
	Source string

	// Field is the config key or input that failed validation.
	Field string

	// Value is the offending value.
	Value string

	// Rule is the violated rule.
	Rule string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.ToUpper(e.Severity))
	b.WriteString("] ")
	if e.Source != "" {
		fmt.Fprintf(&b, "Source '%s', ", e.Source)
	}
	fmt.Fprintf(&b, "Field '%s': %s", e.Field, e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", e.Value)
	}
	return b.String()
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// Add records a finding.
func (r *ValidationResult) Add(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	if err.Severity == SeverityWarning {
		r.WarningCount++
		return
	}
	r.ErrorCount++
	r.IsValid = false
}

// Merge appends all findings of other.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for _, err := range other.Errors {
		r.Add(err)
	}
}

// Err returns the fatal findings joined into one error, or nil.
func (r *ValidationResult) Err() error {
	var errs []error
	for _, err := range r.Errors {
		if err.Severity != SeverityWarning {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// SOURCE VALIDATION
// =============================================================================

// ValidateSources checks the source list of a comparison. minSources is
// the required number of sources; pass MinSources for the CLI.
func ValidateSources(paths []string, minSources int) *ValidationResult {
	result := NewValidationResult()

	if len(paths) < minSources {
		result.Add(&ValidationError{
			Severity: SeverityError,
			Field:    "sources",
			Value:    strconv.Itoa(len(paths)),
			Rule:     "min_sources",
			Message:  fmt.Sprintf("at least %d BOM sources are required", minSources),
		})
	}

	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if seen[path] {
			result.Add(&ValidationError{
				Severity: SeverityWarning,
				Source:   path,
				Field:    "sources",
				Rule:     "duplicate",
				Message:  "source is listed more than once",
			})
		}
		seen[path] = true

		result.Merge(ValidateSource(path))
	}

	return result
}

// ValidateSource checks that one path is a readable BOM file.
func ValidateSource(path string) *ValidationResult {
	result := NewValidationResult()

	info, err := os.Stat(path)
	switch {
	case err != nil:
		result.Add(&ValidationError{
			Severity: SeverityError,
			Source:   path,
			Field:    "path",
			Rule:     "exists",
			Message:  "file does not exist or cannot be accessed",
		})
		return result
	case info.IsDir():
		result.Add(&ValidationError{
			Severity: SeverityError,
			Source:   path,
			Field:    "path",
			Rule:     "regular_file",
			Message:  "path is a directory",
		})
		return result
	}

	if !comparer.IsSupportedSource(path) {
		result.Add(&ValidationError{
			Severity: SeverityError,
			Source:   path,
			Field:    "path",
			Rule:     "file_type",
			Message: fmt.Sprintf("unsupported file type (supported: %s, %s)",
				strings.Join(comparer.WorkbookExtensions, ", "),
				strings.Join(comparer.CSVExtensions, ", ")),
		})
	}

	return result
}

// =============================================================================
// LAYOUT VALIDATION
// =============================================================================

// ValidateLayout checks a sheet layout.
func ValidateLayout(layout config.SheetLayout) *ValidationResult {
	result := NewValidationResult()

	if layout.StartRow < 1 || layout.StartRow > excelize.TotalRows {
		result.Add(&ValidationError{
			Severity: SeverityError,
			Field:    "layout.start_row",
			Value:    strconv.Itoa(layout.StartRow),
			Rule:     "range",
			Message:  fmt.Sprintf("must be between 1 and %d", excelize.TotalRows),
		})
	}

	if strings.TrimSpace(layout.OrderMarker) == "" {
		result.Add(&ValidationError{
			Severity: SeverityError,
			Field:    "layout.order_marker",
			Rule:     "required",
			Message:  "order marker must not be empty",
		})
	}

	columns := layout.Columns()
	for _, name := range slices.Sorted(maps.Keys(columns)) {
		column := columns[name]
		if column < 1 || column > excelize.MaxColumns {
			result.Add(&ValidationError{
				Severity: SeverityError,
				Field:    "layout." + name,
				Value:    strconv.Itoa(column),
				Rule:     "range",
				Message:  fmt.Sprintf("column must be between 1 and %d", excelize.MaxColumns),
			})
		}
	}

	if layout.IdentifierColumn == layout.SentinelColumn {
		result.Add(&ValidationError{
			Severity: SeverityWarning,
			Field:    "layout.identifier_column",
			Value:    strconv.Itoa(layout.IdentifierColumn),
			Rule:     "distinct",
			Message:  "identifier column is also the sentinel column",
		})
	}

	return result
}

// =============================================================================
// EXTRACTION VALIDATION
// =============================================================================

// ValidateExtraction reports rows the extractor could not use.
// These are warnings: the comparison still runs.
func ValidateExtraction(source string, stats xlsxparser.ExtractStats) *ValidationResult {
	result := NewValidationResult()

	if stats.Items == 0 {
		result.Add(&ValidationError{
			Severity: SeverityWarning,
			Source:   source,
			Field:    "items",
			Rule:     "non_empty",
			Message:  "no items found at the configured start row",
		})
	}

	if stats.SkippedItemRows > 0 {
		result.Add(&ValidationError{
			Severity: SeverityWarning,
			Source:   source,
			Field:    "identifier",
			Value:    strconv.Itoa(stats.SkippedItemRows),
			Rule:     "required",
			Message:  "item rows without an identifier were skipped",
		})
	}

	if stats.DroppedOrderRows > 0 {
		result.Add(&ValidationError{
			Severity: SeverityWarning,
			Source:   source,
			Field:    "order_marker",
			Value:    strconv.Itoa(stats.DroppedOrderRows),
			Rule:     "follows_item",
			Message:  "order rows without an item above them were dropped",
		})
	}

	return result
}

// =============================================================================
// ERROR OUTPUT
// =============================================================================

// FormatErrors formats validation errors for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
