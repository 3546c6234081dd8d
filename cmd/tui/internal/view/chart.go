package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

var (
	chartBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	chartLabelStyle = lipgloss.NewStyle().Faint(true)
)

// renderChart draws a person's debt history as horizontal bars, one row
// per debt, oldest first. Bars are scaled to the largest absolute amount.
func renderChart(points []ledger.HistoryPoint, symbol string, barWidth int) string {
	if len(points) == 0 {
		return chartLabelStyle.Render("No debts recorded yet.")
	}

	maxAbs := decimal.Zero
	for _, p := range points {
		if abs := p.Amount.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	var sb strings.Builder

	for i, p := range points {
		if i > 0 {
			sb.WriteByte('\n')
		}

		bar := 1
		if maxAbs.IsPositive() {
			ratio, _ := p.Amount.Abs().Div(maxAbs).Float64()
			bar = int(ratio * float64(barWidth))

			if bar < 1 {
				bar = 1
			}
		}

		sb.WriteString(chartLabelStyle.Render(FormatDate(p.Date)))
		sb.WriteString("  ")
		sb.WriteString(chartBarStyle.Render(strings.Repeat("█", bar)))
		sb.WriteString(" ")
		sb.WriteString(FormatAmount(p.Amount, symbol))
	}

	return sb.String()
}
