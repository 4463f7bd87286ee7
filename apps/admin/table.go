package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableTitleStyle  = lipgloss.NewStyle().Bold(true)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableSepStyle    = lipgloss.NewStyle().Faint(true)
)

// table renders rows of plain cells under bold headers, one column per header.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers, rows: make([][]string, 0)}
}

func (t *table) addRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) render() string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(tableTitleStyle.Render(t.title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	total := len(widths) - 1 // separators
	for i := range widths {
		widths[i] += 2 // padding
		total += widths[i]
	}

	t.writeLine(&sb, tableHeaderStyle, t.headers, widths)
	sb.WriteString(tableSepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		t.writeLine(&sb, tableCellStyle, row, widths)
	}
	return sb.String()
}

func (t *table) writeLine(sb *strings.Builder, style lipgloss.Style, cells []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(style.Width(w).Render(cell))
		if i < len(widths)-1 {
			sb.WriteString(tableSepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
}
