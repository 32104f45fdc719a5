// =============================================================================
// BOM Compare - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the command line, including:
//   - Source discovery (expanding directory arguments into BOM files)
//   - Directory management
//   - Report file naming and creation
//
// DISCOVERY ORDER:
//   Files found in a directory are sorted by name so that the load order,
//   and therefore the report column order, is reproducible.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates dir and its parents if they don't exist.
func EnsureDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// SOURCE DISCOVERY
// =============================================================================

// DiscoverSources lists the files in dir accepted by supported, sorted by
// name. Subdirectories, hidden files and Office lock files ("~$bom.xlsx")
// are skipped.
func DiscoverSources(dir string, supported func(path string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	var result []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		path := filepath.Join(dir, name)
		if supported != nil && !supported(path) {
			continue
		}
		result = append(result, path)
	}

	sort.Strings(result)
	return result, nil
}

// ExpandSources replaces every directory argument by the sources it holds.
// File arguments are kept in place, unchecked.
//
// EXAMPLE:
//   args:   ["old.xlsx", "revisions/"]
//   output: ["old.xlsx", "revisions/a.xlsx", "revisions/b.xlsx"]
func ExpandSources(args []string, supported func(path string) bool) ([]string, error) {
	var result []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			result = append(result, arg)
			continue
		}

		found, err := DiscoverSources(arg, supported)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("directory %s contains no BOM files", arg)
		}
		result = append(result, found...)
	}

	return result, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {first}     - First source name (without extension)
//               {last}      - Last source name (without extension)
//   - params: A map of placeholder values.
//   - ext: The extension to ensure, including the dot (".csv").
//
// EXAMPLE:
//   format: "bomdiff_{timestamp}_{uuid}"
//   ext:    ".json"
//   output: "bomdiff_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// SourceStem returns the file name of path without its extension.
func SourceStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// CreateOutputFile creates path, and its directory, for writing. An existing
// file is only replaced when overwrite is set.
func CreateOutputFile(path string, overwrite bool) (*os.File, error) {
	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("output file %s already exists (use --force to overwrite)", path)
		}
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, nil
}
