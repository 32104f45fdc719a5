// =============================================================================
// BOM Compare - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file describes:
//   1. The BOM sheet layout (start row, sentinel column, column positions)
//   2. CSV parsing settings for BOMs exported as CSV
//   3. Report output settings (format, directory, file naming)
//   4. Logging settings
//   5. Diff behaviour switches
//
// LOADING ORDER:
//   built-in defaults  <  bomcompare.yaml (or --config)  <  BOMCOMPARE_* env
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
// Example: BOMCOMPARE_LAYOUT_START_ROW=25
const EnvPrefix = "BOMCOMPARE"

// DefaultConfigName is the config file looked up in the working directory
// when no --config flag is given.
const DefaultConfigName = "bomcompare.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// Layout describes where BOM data lives in each sheet.
	Layout SheetLayout `yaml:"layout" mapstructure:"layout"`

	// CSV contains settings for BOM sources supplied as CSV files.
	CSV CSVSettings `yaml:"csv" mapstructure:"csv"`

	// Output controls how diff reports are written.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Log controls the zap logger.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Diff holds switches for the diff engine.
	Diff DiffConfig `yaml:"diff" mapstructure:"diff"`
}

// =============================================================================
// SHEET LAYOUT STRUCTURE
// =============================================================================

// SheetLayout defines which columns of a BOM sheet contain which data.
// Columns and rows are 1-based, as shown in a spreadsheet (A=1, B=2, ...).
//
// The defaults match the BOM export of the PDM system: metadata occupies the
// first 19 rows and item data starts at row 20.
type SheetLayout struct {
	// SheetName selects the sheet by name. When empty the first sheet is used.
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`

	// RawValues reads unformatted cell values. Quantities formatted as
	// "5.00" by the authoring tool are then read as "5".
	RawValues bool `yaml:"raw_values" mapstructure:"raw_values"`

	// StartRow is the first data row. Scanning stops at the first row
	// whose sentinel column is empty.
	StartRow int `yaml:"start_row" mapstructure:"start_row"`

	// SentinelColumn holds the find number on item rows and OrderMarker
	// on order-detail rows.
	SentinelColumn int `yaml:"sentinel_column" mapstructure:"sentinel_column"`

	// OrderMarker is the sentinel value of an order-detail row.
	OrderMarker string `yaml:"order_marker" mapstructure:"order_marker"`

	IdentifierColumn          int `yaml:"identifier_column" mapstructure:"identifier_column"`
	RevisionColumn            int `yaml:"revision_column" mapstructure:"revision_column"`
	NameColumn                int `yaml:"name_column" mapstructure:"name_column"`
	QuantityColumn            int `yaml:"quantity_column" mapstructure:"quantity_column"`
	AdditionalNameColumn      int `yaml:"additional_name_column" mapstructure:"additional_name_column"`
	ShortDescriptionColumn    int `yaml:"short_description_column" mapstructure:"short_description_column"`
	ReferenceDesignatorColumn int `yaml:"reference_designator_column" mapstructure:"reference_designator_column"`

	// Order-detail row columns.
	OrderNameColumn        int `yaml:"order_name_column" mapstructure:"order_name_column"`
	ManufacturerColumn     int `yaml:"manufacturer_column" mapstructure:"manufacturer_column"`
	OrderDescriptionColumn int `yaml:"order_description_column" mapstructure:"order_description_column"`
}

// DefaultSheetLayout returns the default layout.
func DefaultSheetLayout() SheetLayout {
	return SheetLayout{
		RawValues:                 true,
		StartRow:                  20,
		SentinelColumn:            1,  // Column A
		OrderMarker:               "OD",
		IdentifierColumn:          2,  // Column B
		RevisionColumn:            3,  // Column C
		NameColumn:                4,  // Column D
		QuantityColumn:            5,  // Column E
		AdditionalNameColumn:      17, // Column Q
		ShortDescriptionColumn:    18, // Column R
		ReferenceDesignatorColumn: 20, // Column T
		OrderNameColumn:           4,  // Column D
		ManufacturerColumn:        11, // Column K
		OrderDescriptionColumn:    15, // Column O
	}
}

// Columns returns every configured column keyed by its config name.
// Used by validation to report bad column numbers by name.
func (l SheetLayout) Columns() map[string]int {
	return map[string]int{
		"sentinel_column":             l.SentinelColumn,
		"identifier_column":           l.IdentifierColumn,
		"revision_column":             l.RevisionColumn,
		"name_column":                 l.NameColumn,
		"quantity_column":             l.QuantityColumn,
		"additional_name_column":      l.AdditionalNameColumn,
		"short_description_column":    l.ShortDescriptionColumn,
		"reference_designator_column": l.ReferenceDesignatorColumn,
		"order_name_column":           l.OrderNameColumn,
		"manufacturer_column":         l.ManufacturerColumn,
		"order_description_column":    l.OrderDescriptionColumn,
	}
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing BOMs exported as CSV.
// Row and column numbers of the sheet layout apply unchanged.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), ";" (semicolon), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`

	// TrimLeadingSpace removes leading white space from fields.
	TrimLeadingSpace bool `yaml:"trim_leading_space" mapstructure:"trim_leading_space"`
}

// =============================================================================
// OUTPUT / LOG / DIFF SETTINGS
// =============================================================================

// OutputConfig controls report output.
type OutputConfig struct {
	// Format is the default report format: text, csv, json, yaml, xml or xlsx.
	Format string `yaml:"format" mapstructure:"format"`

	// Dir is where report files are created when --output names a
	// directory or the format cannot go to stdout (xlsx).
	Dir string `yaml:"dir" mapstructure:"dir"`

	// FileNameFormat names generated report files.
	// Placeholders: {uuid}, {timestamp}, {date}, {time}, {first}, {last},
	// {sources} (source names joined with "_vs_")
	FileNameFormat string `yaml:"file_name_format" mapstructure:"file_name_format"`

	// Color enables ANSI colors in the text format.
	Color bool `yaml:"color" mapstructure:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format" mapstructure:"format"`
}

// DiffConfig holds diff engine switches.
type DiffConfig struct {
	// ReportRevision renders a Revision row for items present in every
	// source. Off by default: revision changes are tracked but not shown.
	ReportRevision bool `yaml:"report_revision" mapstructure:"report_revision"`
}

// DefaultMainConfig returns a configuration with every default applied.
func DefaultMainConfig() *MainConfig {
	cfg := &MainConfig{Layout: DefaultSheetLayout()}
	applyMainConfigDefaults(cfg)
	cfg.Output.Color = true
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration.
//
// PARAMETERS:
//   - configPath: Path to a YAML config file. When empty, bomcompare.yaml in
//     the working directory is used if present.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if an explicit file cannot be read or any file cannot be parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultConfigName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config MainConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key with viper so env overrides resolve.
func setDefaults(v *viper.Viper) {
	layout := DefaultSheetLayout()
	v.SetDefault("layout.sheet_name", layout.SheetName)
	v.SetDefault("layout.raw_values", layout.RawValues)
	v.SetDefault("layout.start_row", layout.StartRow)
	v.SetDefault("layout.sentinel_column", layout.SentinelColumn)
	v.SetDefault("layout.order_marker", layout.OrderMarker)
	for key, column := range layout.Columns() {
		v.SetDefault("layout."+key, column)
	}

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.trim_leading_space", false)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.file_name_format", "bomdiff_{timestamp}_{uuid}")
	v.SetDefault("output.color", true)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("diff.report_revision", false)
}

// applyMainConfigDefaults sets default values for any unset options.
// Zero columns fall back to the default layout.
func applyMainConfigDefaults(config *MainConfig) {
	defaults := DefaultSheetLayout()
	layout := &config.Layout

	if layout.StartRow == 0 {
		layout.StartRow = defaults.StartRow
	}
	if layout.OrderMarker == "" {
		layout.OrderMarker = defaults.OrderMarker
	}
	fill := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}
	fill(&layout.SentinelColumn, defaults.SentinelColumn)
	fill(&layout.IdentifierColumn, defaults.IdentifierColumn)
	fill(&layout.RevisionColumn, defaults.RevisionColumn)
	fill(&layout.NameColumn, defaults.NameColumn)
	fill(&layout.QuantityColumn, defaults.QuantityColumn)
	fill(&layout.AdditionalNameColumn, defaults.AdditionalNameColumn)
	fill(&layout.ShortDescriptionColumn, defaults.ShortDescriptionColumn)
	fill(&layout.ReferenceDesignatorColumn, defaults.ReferenceDesignatorColumn)
	fill(&layout.OrderNameColumn, defaults.OrderNameColumn)
	fill(&layout.ManufacturerColumn, defaults.ManufacturerColumn)
	fill(&layout.OrderDescriptionColumn, defaults.OrderDescriptionColumn)

	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "."
	}
	if config.Output.FileNameFormat == "" {
		config.Output.FileNameFormat = "bomdiff_{timestamp}_{uuid}"
	}
	if config.Log.Level == "" {
		config.Log.Level = "warn"
	}
	if config.Log.Format == "" {
		config.Log.Format = "console"
	}
}

// validateMainConfig validates settings that cannot be checked later.
// Layout checks live in the validation package.
func validateMainConfig(config *MainConfig) error {
	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch config.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", config.Log.Format)
	}

	return nil
}

// =============================================================================
// CONFIGURATION WRITING
// =============================================================================

// Save writes the configuration as YAML.
// An existing file is only replaced when overwrite is true.
func Save(config *MainConfig, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// LOGGING
// =============================================================================

// InitLogger builds the zap logger described by cfg and installs it as the
// global logger.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	zapCfg.Level.SetLevel(level)

	// Reports go to stdout; keep logs off it.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}
