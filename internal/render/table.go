package render

import (
	"fmt"
	"io"
	"strings"

	"go-linkedin-job-scraper/internal/app"
	"go-linkedin-job-scraper/internal/job"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCell = 60

// linkColumn is never truncated so the link stays usable.
const linkColumn = 4

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Table renders records as a bordered table with one row per record.
func Table(records []job.Record) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		row := r.Row()
		for j := range row {
			if j == linkColumn {
				continue
			}
			row[j] = truncate(row[j], maxCell)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(job.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Notice renders one user-facing message.
func Notice(n app.Notice) string {
	switch n.Level {
	case app.LevelSuccess:
		return successStyle.Render(n.Message)
	case app.LevelWarning:
		return warningStyle.Render(n.Message)
	case app.LevelError:
		return errorStyle.Render(n.Message)
	default:
		return n.Message
	}
}

// Result writes the notices followed by the table, if there is anything to show.
func Result(w io.Writer, res *app.Result) error {
	for _, n := range res.Notices {
		if _, err := fmt.Fprintln(w, Notice(n)); err != nil {
			return err
		}
	}
	if len(res.Records) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, Table(res.Records))
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
