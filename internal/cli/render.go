package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/vrognas/redmyne-sub005/internal/engine"
	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// chartWidth is the character width of the timeline chart area. Pixel
// coordinates from the scene are scaled into this fixed width so the
// output stays terminal-sized at every zoom level.
const chartWidth = 60

const dateFormat = "2006-01-02"

// RenderTimeline writes a text rendering of the scene: one line per row,
// the bar drawn as a run of characters scaled into chartWidth columns,
// then the dependency arrows.
func RenderTimeline(w io.Writer, s *engine.Scene, tasks []plan.Task) {
	fmt.Fprintf(w, "Timeline %s .. %s (zoom: %s)\n",
		s.MinDate.Format(dateFormat), s.MaxDate.Format(dateFormat), s.Zoom)
	fmt.Fprintln(w, strings.Repeat("=", labelWidth+2+chartWidth))

	barsByRow := make(map[int]engine.Bar, len(s.Bars))
	for _, b := range s.Bars {
		barsByRow[b.Row] = b
	}
	scale := scaleFor(s)

	for i, row := range s.Rows {
		label := rowLabel(row)
		bar, ok := barsByRow[i]
		if !ok {
			fmt.Fprintf(w, "%-*s |\n", labelWidth, label)
			continue
		}
		fmt.Fprintf(w, "%-*s |%s\n", labelWidth, label, barLine(bar, scale))
	}

	if len(s.Arrows) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Dependencies:")
		titles := titleIndex(tasks)
		for _, a := range s.Arrows {
			fmt.Fprintf(w, "  %s -[%s]-> %s\n",
				titles[a.Relation.Source], a.Relation.Type, titles[a.Relation.Target])
		}
	}
}

// labelWidth is the character width of the row label column.
const labelWidth = 28

func rowLabel(row layout.Row) string {
	var label string
	switch row.Kind {
	case layout.RowProject:
		label = "# " + row.ProjectName
	default:
		indent := strings.Repeat("  ", row.Depth)
		label = indent + row.Task.Title
		if row.IsSummary {
			label += " *"
		}
	}
	if len(label) > labelWidth {
		label = label[:labelWidth-1] + "~"
	}
	return label
}

// scaleFor maps scene pixel X coordinates into chart columns.
func scaleFor(s *engine.Scene) float64 {
	minX := 0.0
	maxX := s.Zoom.PixelsPerDay() // at least one day wide
	for _, b := range s.Bars {
		if b.X1 > maxX {
			maxX = b.X1
		}
	}
	if maxX <= minX {
		return 1
	}
	return float64(chartWidth) / maxX
}

func barLine(b engine.Bar, scale float64) string {
	col0 := int(b.X0 * scale)
	col1 := int(b.X1 * scale)
	if col0 < 0 {
		col0 = 0
	}
	if col1 >= chartWidth {
		col1 = chartWidth - 1
	}
	if col1 < col0 {
		col1 = col0
	}

	line := []byte(strings.Repeat(" ", chartWidth))
	ch := barChar(b)
	for c := col0; c <= col1; c++ {
		line[c] = ch
	}
	out := strings.TrimRight(string(line), " ")
	if tag := statusTag(b.Score); tag != "" {
		out += " " + tag
	}
	return out
}

// barChar picks the fill character: '=' for summary aggregate bars,
// '#' for overbooked tasks, '-' for everything else.
func barChar(b engine.Bar) byte {
	if b.Summary {
		return '='
	}
	if b.Score != nil && b.Score.Status == plan.StatusOverbooked {
		return '#'
	}
	return '-'
}

func statusTag(score *plan.FlexibilityScore) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf("[%s %+d%%]", score.Status, score.Remaining)
}

func titleIndex(tasks []plan.Task) map[int]string {
	titles := make(map[int]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}
	return titles
}

// RenderHeatmap writes the per-day utilization rows: date, a bar scaled
// at 10 columns per 100% utilization, the percentage, and the band.
func RenderHeatmap(w io.Writer, cells []engine.HeatCell) {
	fmt.Fprintln(w, "Date        Utilization       Band")
	fmt.Fprintln(w, strings.Repeat("-", 44))
	for _, c := range cells {
		cols := int(c.Utilization*10 + 0.5)
		if cols > 15 {
			cols = 15
		}
		fmt.Fprintf(w, "%s  %-15s  %4.0f%%  %s\n",
			c.Date.Format(dateFormat), strings.Repeat("█", cols),
			c.Utilization*100, c.Band)
	}
}

// RenderFlexTable writes one line per ranked task with its
// classification, most urgent first.
func RenderFlexTable(w io.Writer, tasks []plan.Task, classify func(plan.Task) *plan.FlexibilityScore) {
	fmt.Fprintf(w, "%-4s %-28s %-12s %9s %6s %8s\n",
		"ID", "Title", "Status", "Remaining", "Days", "Hours")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, t := range tasks {
		score := classify(t)
		if score == nil {
			fmt.Fprintf(w, "%-4d %-28s %-12s\n", t.ID, clip(t.Title, 28), "no data")
			continue
		}
		fmt.Fprintf(w, "%-4d %-28s %-12s %8d%% %6d %7.1fh\n",
			t.ID, clip(t.Title, 28), score.Status,
			score.Remaining, score.DaysRemaining, score.HoursRemaining)
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// bandCounts summarizes a heatmap for JSON output.
func bandCounts(cells []engine.HeatCell) map[string]int {
	counts := make(map[string]int)
	for _, c := range cells {
		counts[c.Band.String()]++
	}
	return counts
}
