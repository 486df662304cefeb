// Package widgets renders the pipeline dashboard chart. It is deliberately
// self-contained: ntcharts draws with lipgloss v1, so this package keeps its
// own v1 styles instead of sharing the board's v2 theme.
package widgets

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

var (
	chartColorFallback = lipgloss.Color("#874BFD")
	chartLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	chartValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	chartTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D75FD7"))
)

// RenderPipelineChart renders a bar chart of total deal value per stage.
// Stages supply the labels and colors; the summary supplies the numbers.
func RenderPipelineChart(summary *models.PipelineSummary, stages []*models.Stage, width, height int) string {
	if summary == nil || len(summary.ByStage) == 0 {
		return chartLabelStyle.Render("No pipeline data")
	}

	labels := make(map[types.StageID]string, len(stages))
	colors := make(map[types.StageID]string, len(stages))
	for _, s := range stages {
		labels[s.ID] = s.Label
		colors[s.ID] = s.Color
	}

	bc := barchart.New(width, height)
	for _, st := range summary.ByStage {
		style := lipgloss.NewStyle().Foreground(chartColorFallback)
		if color := colors[st.Stage]; color != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		}
		label := labels[st.Stage]
		if label == "" {
			label = string(st.Stage)
		}
		bc.Push(barchart.BarData{
			Label: stageChartLabel(label),
			Values: []barchart.BarValue{
				{Name: string(st.Stage), Value: st.Value, Style: style},
			},
		})
	}
	bc.Draw()
	return bc.View()
}

// RenderPipelineTotals renders the headline numbers above the chart:
// open value, weighted value and deal count.
func RenderPipelineTotals(summary *models.PipelineSummary, width int) string {
	if summary == nil {
		return ""
	}

	col := width / 3
	if col < 20 {
		col = 20
	}

	row := padRight(chartLabelStyle.Render("Open value ")+chartValueStyle.Render(formatCompactTRY(summary.TotalValue)), col) +
		padRight(chartLabelStyle.Render("Weighted ")+chartValueStyle.Render(formatCompactTRY(summary.WeightedValue)), col) +
		padRight(chartLabelStyle.Render("Deals ")+chartValueStyle.Render(fmt.Sprintf("%d", summary.DealCount)), col)

	title := chartTitleStyle.Render("Pipeline")
	return title + "\n\n" + row
}

// RenderStageBreakdown renders a per-stage table under the chart with
// counts and weighted values.
func RenderStageBreakdown(summary *models.PipelineSummary, stages []*models.Stage) string {
	if summary == nil {
		return ""
	}

	labels := make(map[types.StageID]string, len(stages))
	for _, s := range stages {
		labels[s.ID] = s.Label
	}

	var b strings.Builder
	for _, st := range summary.ByStage {
		label := labels[st.Stage]
		if label == "" {
			label = string(st.Stage)
		}
		line := padRight(chartLabelStyle.Render(label), 18) +
			padRight(chartValueStyle.Render(fmt.Sprintf("%d", st.Count)), 6) +
			padRight(chartValueStyle.Render(formatCompactTRY(st.Value)), 12) +
			chartLabelStyle.Render("weighted ") + chartValueStyle.Render(formatCompactTRY(st.Weighted))
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// stageChartLabel shortens stage labels so bars stay readable at narrow widths
func stageChartLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= 8 {
		return label
	}
	return string(runes[:7]) + "…"
}

// formatCompactTRY abbreviates large amounts for the headline row
func formatCompactTRY(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("₺%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("₺%.1fK", v/1_000)
	default:
		return fmt.Sprintf("₺%.0f", v)
	}
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s + " "
	}
	return s + strings.Repeat(" ", gap)
}
