package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/orrery/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConflictBrowserModel - Interactive conflict browsing
// =============================================================================

// ConflictBrowserModel is the bubbletea model for browsing the explanation
// rows of a layout. The table lists one row per constraint source; the
// pane below shows the constraints of the selected source.
type ConflictBrowserModel struct {
	Conflicts []layout.Conflict
	Cursor    int
	Height    int
	Offset    int
}

// NewConflictBrowserModel creates a new conflict browser model.
func NewConflictBrowserModel(conflicts []layout.Conflict) ConflictBrowserModel {
	return ConflictBrowserModel{
		Conflicts: conflicts,
		Cursor:    0,
		Height:    12,
		Offset:    0,
	}
}

func (m ConflictBrowserModel) Init() tea.Cmd {
	return nil
}

func (m ConflictBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Conflicts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 4 {
			m.Height = 4
		}
	}
	return m, nil
}

func (m ConflictBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Conflicting Sources"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Conflicts) {
		end = len(m.Conflicts)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cf := m.Conflicts[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := "conflicting"
		if cf.Dropped {
			status = "dropped"
		}

		rows = append(rows, []string{cursor, cf.Source, fmt.Sprintf("%d", len(cf.Constraints)), status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Source", "Constraints", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Conflicts) {
				return lipgloss.NewStyle()
			}
			cf := m.Conflicts[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if cf.Dropped {
				base = base.Foreground(colorDim)
			} else if col == 1 {
				base = base.Foreground(colorYellow)
			}
			if isCurrent {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	// Detail pane for the selected source.
	if len(m.Conflicts) > 0 {
		cf := m.Conflicts[m.Cursor]
		b.WriteString(listSelectedStyle.Render(cf.Source))
		b.WriteString("\n")
		for _, constraint := range cf.Constraints {
			b.WriteString("  " + listNormalStyle.Render(constraint))
			b.WriteString("\n")
		}
		if cf.Dropped {
			b.WriteString(listDimStyle.Render("  dropped: references a hidden node"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Conflicts))))

	return b.String()
}
