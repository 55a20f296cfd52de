package dashboard

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liquidbio/ctdna-lab/internal/config"
	"github.com/liquidbio/ctdna-lab/internal/derive"
	"github.com/liquidbio/ctdna-lab/internal/qc"
	"github.com/liquidbio/ctdna-lab/internal/sysinfo"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// Threshold sliders step on integer ticks to avoid float drift:
// VAF ticks are hundredths of a percent, S/N ticks are tenths.
const (
	vafTickMin = 1   // 0.01 %
	vafTickMax = 100 // 1.00 %
	snTickMin  = 10  // 1.0
	snTickMax  = 100 // 10.0
)

// Model is the bubbletea model for the single-page dashboard.
type Model struct {
	styles Styles

	cache    *variant.DatasetCache
	variants []variant.Record
	qcSeries []qc.Record

	vafTick   int
	snTick    int
	showCount int
	selected  int
	expanded  map[int]bool

	// classifyDetect mirrors classify_with_detection_thresholds; toggled
	// live with "c" so the threshold disconnect is inspectable.
	classifyDetect bool

	memPercent float64
	memKnown   bool

	vafSlider progress.Model
	snSlider  progress.Model
	detail    viewport.Model

	width  int
	height int
	ready  bool
}

// New builds the dashboard from the settings. Datasets are produced once up
// front through the bounded cache; only the QC series can be redrawn.
func New(cfg config.Config) Model {
	cache := variant.NewDatasetCache(variant.DefaultCacheSize)
	gen := variant.NewGenerator()
	records := cache.GetOrGenerate(gen.Seed(), gen.Generate)

	theme := LightTheme()
	if cfg.Display.DarkTheme {
		theme = DarkTheme()
	}

	m := Model{
		styles:         NewStyles(theme),
		cache:          cache,
		variants:       records,
		qcSeries:       qc.NewGenerator().Generate(),
		vafTick:        clampInt(int(cfg.Thresholds.VAFPercent*100+0.5), vafTickMin, vafTickMax),
		snTick:         clampInt(int(cfg.Thresholds.SignalToNoise*10+0.5), snTickMin, snTickMax),
		showCount:      clampInt(cfg.Display.ShowCount, 1, len(records)),
		expanded:       make(map[int]bool),
		classifyDetect: cfg.Thresholds.ClassifyWithDetection,
		vafSlider:      progress.New(progress.WithSolidFill(string(theme.Accent)), progress.WithoutPercentage()),
		snSlider:       progress.New(progress.WithSolidFill(string(theme.Accent)), progress.WithoutPercentage()),
		detail:         viewport.New(80, 12),
	}
	return m
}

// Thresholds returns the current slider values in derivation form.
func (m Model) Thresholds() derive.Thresholds {
	return derive.Thresholds{
		VAF:           float64(m.vafTick) / 100,
		SignalToNoise: float64(m.snTick) / 10,
	}
}

// ShowCount returns the current detail-list bound.
func (m Model) ShowCount() int {
	return m.showCount
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vafSlider.Width = sliderWidth(msg.Width)
		m.snSlider.Width = sliderWidth(msg.Width)
		m.detail.Width = msg.Width - 4
		m.detail.Height = maxInt(6, msg.Height-detailReserved)
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left":
			m.vafTick = clampInt(m.vafTick-1, vafTickMin, vafTickMax)
		case "right":
			m.vafTick = clampInt(m.vafTick+1, vafTickMin, vafTickMax)
		case "down":
			m.snTick = clampInt(m.snTick-1, snTickMin, snTickMax)
		case "up":
			m.snTick = clampInt(m.snTick+1, snTickMin, snTickMax)
		case "-":
			m.showCount = clampInt(m.showCount-1, 1, len(m.variants))
			m.selected = clampInt(m.selected, 0, m.showCount-1)
		case "+", "=":
			m.showCount = clampInt(m.showCount+1, 1, len(m.variants))
		case "j":
			m.selected = clampInt(m.selected+1, 0, m.showCount-1)
		case "k":
			m.selected = clampInt(m.selected-1, 0, m.showCount-1)
		case "enter", " ":
			m.expanded[m.selected] = !m.expanded[m.selected]
		case "c":
			m.classifyDetect = !m.classifyDetect
		case "r":
			// QC is the one unseeded series; redraw it on demand.
			m.qcSeries = qc.NewGenerator().Generate()
		case "m":
			if pct, err := sysinfo.MemoryUsedPercent(); err == nil {
				m.memPercent = pct
				m.memKnown = true
			}
		}

	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.detail.SetContent(m.detailContent())
	return m, nil
}

// detailReserved is the vertical space the non-detail panels occupy.
const detailReserved = 26

func sliderWidth(total int) int {
	w := total/2 - 18
	if w < 10 {
		w = 10
	}
	return w
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
