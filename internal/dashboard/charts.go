package dashboard

import (
	"math"
	"strings"
)

// Rune-grid chart helpers for the scatter and sparkline panels. These only
// format values they are handed; axis scaling is derived from the data.

type point struct {
	x, y float64
	good bool
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as a block-rune strip scaled to their own range.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// renderScatter plots the points on a width x height rune grid with a log x
// axis (VAF spans orders of magnitude) and a horizontal threshold line.
func renderScatter(points []point, width, height int, yThreshold float64, styles Styles) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		xMin = math.Min(xMin, p.x)
		xMax = math.Max(xMax, p.x)
		yMin = math.Min(yMin, p.y)
		yMax = math.Max(yMax, p.y)
	}
	yMin = math.Min(yMin, yThreshold)
	yMax = math.Max(yMax, yThreshold)
	if xMax <= xMin {
		xMax = xMin + 1
	}
	if yMax <= yMin {
		yMax = yMin + 1
	}

	logMin, logMax := math.Log10(xMin), math.Log10(xMax)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	thresholdRow := rowFor(yThreshold, yMin, yMax, height)
	for c := range width {
		grid[thresholdRow][c] = '┄'
	}

	markers := make(map[[2]int]bool) // position -> good
	for _, p := range points {
		col := 0
		if logMax > logMin {
			col = int((math.Log10(p.x) - logMin) / (logMax - logMin) * float64(width-1))
		}
		row := rowFor(p.y, yMin, yMax, height)
		grid[row][col] = '●'
		markers[[2]int{row, col}] = markers[[2]int{row, col}] || p.good
	}

	lines := make([]string, 0, height)
	for r, runes := range grid {
		var sb strings.Builder
		for c, ch := range runes {
			if ch != '●' {
				sb.WriteRune(ch)
				continue
			}
			if markers[[2]int{r, c}] {
				sb.WriteString(styles.Good.Render("●"))
			} else {
				sb.WriteString(styles.Warn.Render("●"))
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// rowFor maps a y value to a grid row; row 0 is the top of the plot.
func rowFor(y, yMin, yMax float64, height int) int {
	frac := (y - yMin) / (yMax - yMin)
	row := height - 1 - int(frac*float64(height-1))
	if row < 0 {
		return 0
	}
	if row >= height {
		return height - 1
	}
	return row
}
