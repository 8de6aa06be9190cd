package cli

import (
	"strconv"
	"strings"
	"worklog/pkg"
	"worklog/pkg/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	accent     = lipgloss.Color("62")
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Width(16).Align(lipgloss.Right).MarginRight(2).Faint(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

// Summary renders the outcome of a report run for the terminal.
func Summary(result *report.Result) string {
	if result.Empty {
		return boxStyle.Render(titleStyle.Render("No worklogs found") + "\n" +
			"Nothing was written for " + strconv.Itoa(result.Users) + " requested users.")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Report created"))
	sb.WriteString("\n\n")
	fields := []struct{ label, value string }{
		{"Users:", strconv.Itoa(result.Users)},
		{"Issues:", strconv.Itoa(result.Issues)},
		{"Worklogs:", strconv.Itoa(result.Count)},
		{"Total hours:", strconv.FormatFloat(pkg.Hours(result.Seconds), 'f', 2, 64)},
		{"Duration:", pkg.FormatDayHourMinute(result.Seconds)},
		{"File:", result.Path},
		{"Size:", humanize.Bytes(uint64(result.Size))},
	}
	for i, f := range fields {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.label), f.value))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}
	return boxStyle.Render(sb.String())
}
