package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/navigator"
)

var (
	crumbStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	paneStyle     = lipgloss.NewStyle().PaddingRight(4)
)

// View renders breadcrumbs, the tree, the selected node's details and help
func (m Model) View() string {
	b := &strings.Builder{}
	b.WriteString(crumbStyle.Render(m.breadcrumbs()))
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.treeView()),
		m.detailView(),
	)
	b.WriteString(body)
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.state.Error))
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(dimStyle.Render("loading..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) breadcrumbs() string {
	crumbs := []string{constants.RootLabel}
	if len(m.state.SelectedPath) > 1 {
		crumbs = append(crumbs, m.state.SelectedPath[1:]...)
	}
	return strings.Join(crumbs, " / ")
}

func (m Model) treeView() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("(empty)")
	}
	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		line := strings.Repeat("  ", row.Depth) + marker(row) + " " + rowLabel(row.Node)
		if row.Selected {
			line = selectedStyle.Render(line)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func marker(row navigator.Row) string {
	switch {
	case row.Node.Leaf:
		return "•"
	case row.Expanded:
		return "▾"
	default:
		return "▸"
	}
}

func rowLabel(node *api.Node) string {
	if node.IsRoot() {
		return constants.RootLabel
	}
	return node.Label
}

func (m Model) detailView() string {
	b := &strings.Builder{}
	if m.state.SelectedNode != "" {
		b.WriteString(crumbStyle.Render(m.state.SelectedNode))
		b.WriteString("\n")
	}
	b.WriteString(formatData(m.state.Data))
	b.WriteString("\n\n")
	if m.state.Stat != nil {
		b.WriteString(StatTable(m.state.Stat).String())
	}
	return b.String()
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case nil:
		return dimStyle.Render("(no data)")
	case string:
		if d == "" {
			return dimStyle.Render("(empty)")
		}
		return d
	default:
		return fmt.Sprint(d)
	}
}

// StatTable lays out stat as a two column table
func StatTable(stat *api.Stat) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("czxid", stat.Czxid)
	table.AddRow("mzxid", stat.Mzxid)
	table.AddRow("ctime", stat.Ctime)
	table.AddRow("mtime", stat.Mtime)
	table.AddRow("version", stat.Version)
	table.AddRow("cversion", stat.Cversion)
	table.AddRow("aversion", stat.Aversion)
	table.AddRow("ephemeralOwner", stat.EphemeralOwner)
	table.AddRow("dataLength", stat.DataLength)
	table.AddRow("numChildren", stat.NumChildren)
	table.AddRow("pzxid", stat.Pzxid)
	return table
}
