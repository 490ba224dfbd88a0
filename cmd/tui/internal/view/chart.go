package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/salesdash/internal/report"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

var openBandSuffix = "-" + strconv.FormatInt(report.MaxSafeInteger, 10)

// BandLabel shortens the open-ended top band to "901+".
func BandLabel(priceRange string) string {
	if lower, ok := strings.CutSuffix(priceRange, openBandSuffix); ok {
		return lower + "+"
	}

	return priceRange
}

// BarLength scales count against top into at most width cells. Non-zero
// counts always get at least one cell.
func BarLength(count, top, width int) int {
	if count <= 0 || top <= 0 || width <= 0 {
		return 0
	}

	n := count * width / top
	if n == 0 {
		n = 1
	}

	return n
}

// RenderBarChart draws the price histogram as horizontal bars.
func RenderBarChart(entries []report.BarChartEntry, width int) string {
	longest, top := 0, 0

	for _, e := range entries {
		longest = max(longest, len(BandLabel(e.PriceRange)))
		top = max(top, e.Count)
	}

	var b strings.Builder

	for _, e := range entries {
		label := fmt.Sprintf("%*s", longest, BandLabel(e.PriceRange))
		bar := strings.Repeat("█", BarLength(e.Count, top, width))

		fmt.Fprintf(&b, "%s │%s %d\n", labelStyle.Render(label), barStyle.Render(bar), e.Count)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderCategories lists the category breakdown with right-aligned counts.
func RenderCategories(entries []report.PieChartEntry) string {
	if len(entries) == 0 {
		return labelStyle.Render("No sales this month")
	}

	longest := 0
	for _, e := range entries {
		longest = max(longest, len([]rune(e.Category)))
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		pad := strings.Repeat(" ", longest-len([]rune(e.Category)))
		lines[i] = fmt.Sprintf("%s%s  %d", e.Category, pad, e.Count)
	}

	return strings.Join(lines, "\n")
}
