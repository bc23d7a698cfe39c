package main

import (
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	redRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			Bold(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0, 0, 0)
)

// reportTable is a lipgloss table whose rows can be flagged red.
type reportTable struct {
	table *lgtable.Table
	count int
	reds  map[int]bool
}

func (t *reportTable) Row(isRed bool, row ...string) {
	if isRed {
		t.reds[t.count] = true
	}
	t.table.Row(row...)
	t.count++
}

func (t *reportTable) Render() string {
	return t.table.Render()
}

func newReportTable(alignments ...lipgloss.Position) *reportTable {
	t := &reportTable{reds: make(map[int]bool)}
	t.table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row == lgtable.HeaderRow {
				return headerRowStyle
			}
			switch {
			case t.reds[row]:
				s = redRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col < len(alignments) {
				s = s.Align(alignments[col])
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
	return t
}
