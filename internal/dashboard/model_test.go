package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquidbio/ctdna-lab/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(config.Default())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func TestModel_ThresholdStepping(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 0.05, m.Thresholds().VAF)
	require.Equal(t, 3.0, m.Thresholds().SignalToNoise)

	m = press(m, "right", "right")
	assert.InDelta(t, 0.07, m.Thresholds().VAF, 1e-9)

	m = press(m, "up")
	assert.InDelta(t, 3.1, m.Thresholds().SignalToNoise, 1e-9)
}

func TestModel_ThresholdsClampToRanges(t *testing.T) {
	m := newTestModel(t)

	for range 200 {
		m = press(m, "left", "down")
	}
	assert.InDelta(t, 0.01, m.Thresholds().VAF, 1e-9)
	assert.InDelta(t, 1.0, m.Thresholds().SignalToNoise, 1e-9)

	for range 2000 {
		m = press(m, "right", "up")
	}
	assert.InDelta(t, 1.0, m.Thresholds().VAF, 1e-9)
	assert.InDelta(t, 10.0, m.Thresholds().SignalToNoise, 1e-9)
}

func TestModel_ShowCountBounds(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 5, m.ShowCount())

	for range 20 {
		m = press(m, "+")
	}
	assert.Equal(t, len(m.variants), m.ShowCount())

	for range 20 {
		m = press(m, "-")
	}
	assert.Equal(t, 1, m.ShowCount())
	assert.Equal(t, 0, m.selected, "selection follows the shrinking list")
}

func TestModel_SelectionAndExpand(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "j", "j")
	assert.Equal(t, 2, m.selected)

	m = press(m, "enter")
	assert.True(t, m.expanded[2])
	m = press(m, "enter")
	assert.False(t, m.expanded[2])
}

func TestModel_ClassificationToggle(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.classifyDetect)

	m = press(m, "c")
	assert.True(t, m.classifyDetect)
	assert.Contains(t, m.View(), "detection-threshold rule")
}

func TestModel_RedrawQCKeepsWindow(t *testing.T) {
	m := newTestModel(t)
	before := m.qcSeries

	m = press(m, "r")
	require.Len(t, m.qcSeries, len(before))
	assert.Equal(t, before[0].Date, m.qcSeries[0].Date, "window is fixed")
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewSections(t *testing.T) {
	view := newTestModel(t).View()

	for _, want := range []string{
		"Liquid Biopsy Analysis",
		"VAF threshold",
		"S/N threshold",
		"High Confidence",
		"QC monitoring",
		"Variant detail",
		"var_001",
	} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", sparkline(nil))
	assert.Equal(t, 5, len([]rune(sparkline([]float64{1, 2, 3, 2, 1}))))

	flat := sparkline([]float64{2, 2, 2})
	assert.Equal(t, strings.Repeat("▁", 3), flat)
}

func TestRenderScatter(t *testing.T) {
	points := []point{
		{x: 0.05, y: 2.0},
		{x: 0.5, y: 6.0, good: true},
	}
	plot := renderScatter(points, 40, 8, 3.0, NewStyles(DarkTheme()))

	lines := strings.Split(plot, "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, plot, "●")
	assert.Contains(t, plot, "┄")
}
