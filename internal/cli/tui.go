package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spren9er/cactuz-sub000/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RootListModel - Interactive forest root selection
// =============================================================================

// rootCandidate pairs a root id with the size of the subtree below it.
type rootCandidate struct {
	ID   string
	Name string
	Size int
}

// RootListModel is the bubbletea model for picking a root from a forest.
type RootListModel struct {
	Roots    []rootCandidate
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewRootListModel creates a new root list model.
func NewRootListModel(roots []rootCandidate) RootListModel {
	return RootListModel{Roots: roots, Height: 15}
}

func (m RootListModel) Init() tea.Cmd {
	return nil
}

func (m RootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Roots)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Roots[m.Cursor].ID
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RootListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Roots) {
		end = len(m.Roots)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Roots[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := r.Name
		if name == "" {
			name = r.ID
		}
		line := fmt.Sprintf("%s%-30s  %s", cursor, name,
			listDimStyle.Render(fmt.Sprintf("%d nodes", r.Size)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Roots))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// pickRoot runs the interactive root picker and returns the chosen root id.
func pickRoot(doc graph.Document, roots []string) (string, error) {
	candidates := rootCandidates(doc, roots)

	p := tea.NewProgram(NewRootListModel(candidates))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(RootListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no root selected")
	}
	return m.Selected, nil
}

// rootCandidates resolves names and subtree sizes for each root id.
// Sizes count records reachable through parent links, so orphaned branches
// are excluded the same way hierarchy building excludes them.
func rootCandidates(doc graph.Document, roots []string) []rootCandidate {
	names := make(map[string]string, len(doc.Nodes))
	kids := make(map[string][]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if _, dup := names[n.ID]; dup {
			continue
		}
		names[n.ID] = n.DisplayName()
		if n.Parent != "" && n.Parent != n.ID {
			kids[n.Parent] = append(kids[n.Parent], n.ID)
		}
	}

	var size func(id string) int
	size = func(id string) int {
		total := 1
		for _, c := range kids[id] {
			total += size(c)
		}
		return total
	}

	out := make([]rootCandidate, 0, len(roots))
	for _, id := range roots {
		out = append(out, rootCandidate{ID: id, Name: names[id], Size: size(id)})
	}
	return out
}
