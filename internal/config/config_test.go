package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquidbio/ctdna-lab/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.05, cfg.Thresholds.VAFPercent)
	assert.Equal(t, 3.0, cfg.Thresholds.SignalToNoise)
	assert.False(t, cfg.Thresholds.ClassifyWithDetection)
	assert.Equal(t, 5, cfg.Display.ShowCount)
	assert.Equal(t, 200, cfg.Calibration.Replicates)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
thresholds:
  vaf_percent: 0.1
  classify_with_detection_thresholds: true
calibration:
  replicates: 50
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Thresholds.VAFPercent)
	assert.True(t, cfg.Thresholds.ClassifyWithDetection)
	assert.Equal(t, 50, cfg.Calibration.Replicates)
	// Unset fields keep their defaults.
	assert.Equal(t, 3.0, cfg.Thresholds.SignalToNoise)
	assert.Equal(t, 5, cfg.Display.ShowCount)
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"vaf too high", "thresholds:\n  vaf_percent: 1.5\n"},
		{"sn too low", "thresholds:\n  signal_to_noise: 0.5\n"},
		{"show count too high", "display:\n  show_count: 20\n"},
		{"negative rate", "calibration:\n  rate_per_second: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSample_RoundTrips(t *testing.T) {
	data, err := config.Sample()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
