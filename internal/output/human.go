package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/henrybloomingdale/fred-cli/internal/stlouisfed"
)

// --- Styles ---

var (
	cyan       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	red        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// truncate cuts a string to maxLen characters, appending "…" if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

// tableColumns picks the columns shown for each FRED record list.
func tableColumns(key string) []string {
	switch key {
	case "observations":
		return []string{"date", "value"}
	case "seriess":
		return []string{"id", "title", "frequency_short", "units_short", "last_updated"}
	case "releases":
		return []string{"id", "name", "press_release"}
	case "categories":
		return []string{"id", "name", "parent_id"}
	case "sources":
		return []string{"id", "name", "link"}
	case "tags":
		return []string{"name", "group_id", "popularity", "series_count"}
	default:
		return nil
	}
}

func formatHuman(w io.Writer, out *stlouisfed.Outcome) error {
	if out.IsError() {
		fmt.Fprintln(w, red.Render(fmt.Sprintf("✗ API error %d: %s", out.ErrorCode(), out.ErrorMessage())))
		return nil
	}

	key, records := recordList(out.Document)
	if key == "" {
		return formatDocumentBox(w, out.Document)
	}

	header := fmt.Sprintf("📈 %d %s", len(records), key)
	if count, ok := out.Document["count"].(float64); ok && int(count) > len(records) {
		header = fmt.Sprintf("📈 Found %d %s (showing %d)", int(count), key, len(records))
	}
	fmt.Fprintln(w, bold.Render(header))
	fmt.Fprintln(w)

	if len(records) == 0 {
		return nil
	}

	cols := tableColumns(key)
	if cols == nil {
		return formatDocumentBox(w, out.Document)
	}

	var rows [][]string
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			cell := truncate(stringify(rec[col]), 50)
			if i == 0 {
				cell = cyan.Render(cell)
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}

	t := table.New().
		Headers(cols...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, dim.Render("💾 Use --json for the full document"))
	return nil
}

// formatDocumentBox renders a reply without a record list as a bordered
// key/value box.
func formatDocumentBox(w io.Writer, doc map[string]any) error {
	var body string
	for _, k := range sortedKeys(doc) {
		if nested, ok := doc[k].(map[string]any); ok {
			for _, nk := range sortedKeys(nested) {
				body += labelStyle.Render(k+"."+nk+": ") + stringify(nested[nk]) + "\n"
			}
			continue
		}
		body += labelStyle.Render(k+": ") + stringify(doc[k]) + "\n"
	}
	if body == "" {
		fmt.Fprintln(w, dim.Render("Empty reply."))
		return nil
	}
	fmt.Fprintln(w, boxStyle.Render(body[:len(body)-1]))
	return nil
}
