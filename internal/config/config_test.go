package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadMainConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadMainConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSheetLayout(), cfg.Layout)
	assert.Equal(t, 20, cfg.Layout.StartRow)
	assert.Equal(t, "OD", cfg.Layout.OrderMarker)
	assert.True(t, cfg.Layout.RawValues)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "bomdiff_{timestamp}_{uuid}", cfg.Output.FileNameFormat)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Diff.ReportRevision)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, DefaultMainConfig().Output, cfg.Output)
}

func TestLoadMainConfig_FromWorkingDirectory(t *testing.T) {
	dir := chdirTemp(t)

	yamlData := `
layout:
  start_row: 5
  sheet_name: BOM
  quantity_column: 6
diff:
  report_revision: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigName), []byte(yamlData), 0644))

	cfg, err := LoadMainConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Layout.StartRow)
	assert.Equal(t, "BOM", cfg.Layout.SheetName)
	assert.Equal(t, 6, cfg.Layout.QuantityColumn)
	assert.Equal(t, 2, cfg.Layout.IdentifierColumn)
	assert.True(t, cfg.Diff.ReportRevision)
}

func TestLoadMainConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\nlog:\n  level: debug\n"), 0644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMainConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMainConfig_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BOMCOMPARE_LAYOUT_START_ROW", "12")
	t.Setenv("BOMCOMPARE_LAYOUT_ORDER_MARKER", "ORD")

	cfg, err := LoadMainConfig("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Layout.StartRow)
	assert.Equal(t, "ORD", cfg.Layout.OrderMarker)
}

func TestLoadMainConfig_InvalidLogSettings(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "bad level", yaml: "log:\n  level: loud\n", wantErr: "log.level"},
		{name: "bad format", yaml: "log:\n  format: xml\n", wantErr: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := LoadMainConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bomcompare.yaml")

	cfg := DefaultMainConfig()
	assert.True(t, cfg.Output.Color)
	cfg.Layout.StartRow = 7
	cfg.Output.Format = "xlsx"
	require.NoError(t, Save(cfg, path, false))

	loaded, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.Output.Color)

	// An explicit false survives the trip too.
	cfg.Output.Color = false
	require.NoError(t, Save(cfg, path, true))
	loaded, err = LoadMainConfig(path)
	require.NoError(t, err)
	assert.False(t, loaded.Output.Color)
}

func TestSave_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bomcompare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	err := Save(DefaultMainConfig(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Save(DefaultMainConfig(), path, true))
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	logger, err := InitLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	assert.Same(t, logger, zap.L())

	_, err = InitLogger(LogConfig{Level: "nope", Format: "console"})
	assert.Error(t, err)
}
