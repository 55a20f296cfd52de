package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liquidbio/ctdna-lab/internal/derive"
	"github.com/liquidbio/ctdna-lab/internal/qc"
	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	t := m.Thresholds()
	metrics := derive.Summary(m.variants, t)

	sections := []string{
		m.styles.Header.Render("🧬 Liquid Biopsy Analysis — ctdna-lab"),
		m.slidersView(t),
		m.cardsView(metrics),
		m.scatterView(t),
		m.qcView(),
		m.styles.Section.Render(fmt.Sprintf("Variant detail (%d of %d)", m.showCount, len(m.variants))),
		m.detail.View(),
		m.footerView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) slidersView(t derive.Thresholds) string {
	vaf := fmt.Sprintf("VAF threshold  %5.2f%% %s",
		t.VAF, m.vafSlider.ViewAs(float64(m.vafTick-vafTickMin)/float64(vafTickMax-vafTickMin)))
	sn := fmt.Sprintf("S/N threshold  %5.1f  %s",
		t.SignalToNoise, m.snSlider.ViewAs(float64(m.snTick-snTickMin)/float64(snTickMax-snTickMin)))
	return lipgloss.JoinVertical(lipgloss.Left, vaf, sn)
}

func (m Model) cardsView(metrics derive.Metrics) string {
	mean := "n/a"
	if !math.IsNaN(metrics.MeanVAF) {
		mean = fmt.Sprintf("%.2f%%", metrics.MeanVAF)
	}

	cards := []string{
		m.card("High Confidence", fmt.Sprintf("%d  (%.0f%%)", metrics.HighConfidence, metrics.HighConfidencePct*100)),
		m.card("Fixed-Rule Calls", fmt.Sprintf("%d", metrics.FixedRuleCalls)),
		m.card("Actionable", fmt.Sprintf("%d  (%.0f%%)", metrics.Actionable, metrics.ActionablePct*100)),
		m.card("Reportable", fmt.Sprintf("%d", metrics.Reportable)),
		m.card("Mean VAF", mean),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) card(title, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardTitle.Render(title),
		m.styles.CardValue.Render(value),
	)
	return m.styles.Card.Render(body)
}

func (m Model) scatterView(t derive.Thresholds) string {
	points := make([]point, 0, len(m.variants))
	for _, r := range m.variants {
		points = append(points, point{
			x:    r.VAFPercent,
			y:    r.SignalToNoise,
			good: derive.HighConfidenceCall(r),
		})
	}
	plot := renderScatter(points, scatterWidth(m.width), 8, t.SignalToNoise, m.styles)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Section.Render("VAF vs Signal-to-Noise (log x; line = S/N threshold)"),
		plot,
	)
}

func (m Model) qcView() string {
	validation := make([]float64, 0, len(m.qcSeries))
	artifact := make([]float64, 0, len(m.qcSeries))
	excursions := 0
	for _, r := range m.qcSeries {
		validation = append(validation, r.ValidationRate)
		artifact = append(artifact, r.ArtifactRate)
		if r.ArtifactRate > qc.ArtifactRateLimit {
			excursions++
		}
	}

	artifactLine := fmt.Sprintf("artifact rate   %s", sparkline(artifact))
	if excursions > 0 {
		artifactLine += m.styles.Bad.Render(fmt.Sprintf("  %d day(s) over %.0f%%", excursions, qc.ArtifactRateLimit*100))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Section.Render(fmt.Sprintf("QC monitoring — %d days from %s (r to redraw)",
			len(m.qcSeries), qc.WindowStart().Format("2006-01-02"))),
		fmt.Sprintf("validation rate %s", sparkline(validation)),
		artifactLine,
	)
}

func (m Model) detailContent() string {
	t := m.Thresholds()
	var sb strings.Builder

	for i, r := range m.variants[:m.showCount] {
		cursor := "  "
		line := fmt.Sprintf("%s %s  VAF %.3f%%  S/N %.1f", r.VariantID, r.Gene, r.VAFPercent, r.SignalToNoise)
		if i == m.selected {
			cursor = "> "
			line = m.styles.Selected.Render(line)
		}

		if m.callLabel(r, t) {
			line += m.styles.Good.Render("  ✅ high confidence")
		} else {
			line += m.styles.Warn.Render("  ⚠ requires validation")
		}
		sb.WriteString(cursor + line + "\n")

		if m.expanded[i] {
			sb.WriteString(m.styles.Muted.Render(fmt.Sprintf(
				"    depth %d (alt %d) | cancer %s | ctDNA fraction %.2f%% | artifact %.0f%% | status %s | reportable %v\n",
				r.Depth, r.AltReads, r.CancerType, r.CTDNAFraction*100,
				r.ArtifactProb*100, r.ValidationStatus, r.VAFPercent >= t.VAF)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// callLabel mirrors the report's classification switch.
func (m Model) callLabel(r variant.Record, t derive.Thresholds) bool {
	if m.classifyDetect {
		return r.SignalToNoise > t.SignalToNoise && r.ArtifactProb < derive.CallArtifactThreshold
	}
	return derive.HighConfidenceCall(r)
}

func (m Model) footerView() string {
	rule := "fixed call rule"
	if m.classifyDetect {
		rule = "detection-threshold rule"
	}
	memory := ""
	if m.memKnown {
		memory = fmt.Sprintf(" | mem %.1f%%", m.memPercent)
	}
	return m.styles.Footer.Render(fmt.Sprintf(
		"←/→ VAF  ↑/↓ S/N  +/- shown  j/k select  ⏎ expand  c rule (%s)  r redraw QC  m memory  q quit%s",
		rule, memory))
}

func scatterWidth(total int) int {
	w := total - 12
	if w < 20 {
		w = 20
	}
	if w > 72 {
		w = 72
	}
	return w
}
