package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tareas/pkg/tasklist"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle      = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Strikethrough(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	lines := []string{headerStyle.Render("Tareas")}
	if m.status != "" {
		lines = append(lines, noticeStyle.Render(m.status))
	}
	if m.formActive {
		lines = append(lines, m.viewForm(), m.help.View(formHelp{m.keys}))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, m.viewList())
	if it, ok := m.selected(); ok {
		lines = append(lines, panelStyle.Render(renderDescription(it.Description)))
	}
	lines = append(lines, m.help.View(listHelp{m.keys}))
	return strings.Join(lines, "\n")
}

func (m Model) viewList() string {
	if len(m.items) == 0 {
		return emptyStyle.Render("No hay tareas pendientes")
	}
	var b strings.Builder
	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, checkbox(it), itemName(it))
		fmt.Fprintf(&b, "      %s\n", metaStyle.Render(it.DueLabel+"   "+it.PriorityLabel))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewForm() string {
	labels := []string{"Nombre", "Descripción", "Fecha de vencimiento", "Prioridad"}
	var b strings.Builder
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%s\n%s\n", nameStyle.Render(labels[i]), in.View())
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func checkbox(it tasklist.Item) string {
	if it.Completed {
		return "[x]"
	}
	return "[ ]"
}

func itemName(it tasklist.Item) string {
	if it.Completed {
		return completedStyle.Render(it.Name)
	}
	return nameStyle.Render(it.Name)
}

// renderDescription shows descriptions as markdown, falling back to the
// raw text.
func renderDescription(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
