package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/loiter/pkg/timeparse"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	body := m.renderBody()
	lines := strings.Split(body, "\n")
	contentHeight := h - 4
	for i := 0; i < contentHeight; i++ {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.keys.ShortHelp()))

	return b.String()
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("loiter")
	today := HeaderCountStyle.Render(fmt.Sprintf("%s today", m.Today()))
	return title + "  " + today
}

func (m Model) renderBody() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	if m.status == nil {
		return IdleStyle.Render(IconIdle + " Not tracking")
	}

	l := m.status.Log
	var b strings.Builder
	b.WriteString(ElapsedStyle.Render(fmt.Sprintf("%s %s", IconActive, m.Elapsed())))
	b.WriteString("\n\n")

	project := l.ProjectID
	if m.project != nil && m.project.Name != "" {
		project = fmt.Sprintf("%s (%s)", m.project.Name, l.ProjectID)
	}
	writeField(&b, "Project", project)
	if m.task != nil {
		writeField(&b, "Task", fmt.Sprintf("#%d %s [%s]", m.task.ID, m.task.Description, m.task.State))
	}
	if l.Start != nil {
		writeField(&b, "Started", timeparse.Format(*l.Start))
	}
	if l.Comment != "" {
		writeField(&b, "Comment", l.Comment)
	}
	if len(l.Tags) > 0 {
		b.WriteString(LabelStyle.Render("Tags"))
		b.WriteString(TagStyle.Render(strings.Join(l.Tags, ", ")))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}

func (m Model) renderHelpModal() string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range m.keys.FullHelp() {
		b.WriteString(ModalLabelStyle.Render(row[0]))
		b.WriteString(ModalValueStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return ModalStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
