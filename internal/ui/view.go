package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	hudStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Bold(true)
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00af00")).
			Padding(0, 1)
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00ff00")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.hudView())
	b.WriteByte('\n')

	if m.overlay != overlayNone {
		b.WriteString(lipgloss.Place(m.width, m.canvasRows(), lipgloss.Center, lipgloss.Center, m.overlayView()))
	} else {
		b.WriteString(canvasStyle.Render(m.screen.Frame()))
	}
	b.WriteByte('\n')

	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) hudView() string {
	var parts []string
	if m.score.visible {
		parts = append(parts, "Score: "+m.score.text)
	}
	if m.lives.visible {
		parts = append(parts, "Lives: "+m.lives.text)
	}
	if m.opts.Difficulty != nil {
		parts = append(parts, "Difficulty: "+m.opts.Difficulty())
	}
	return hudStyle.Render(strings.Join(parts, "   "))
}

// footerView renders exactly footerRows lines so the canvas never shifts.
func (m Model) footerView() string {
	lines := make([]string, footerRows)

	if m.status.visible {
		status := strings.SplitN(m.status.text, "\n", 2)
		for i, s := range status {
			lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, statusStyle.Render(s))
		}
	}

	if m.buttons {
		buttons := []string{
			buttonStyle.Render("[d] difficulty"),
			buttonStyle.Render("[h] high scores"),
			buttonStyle.Render("[?] help"),
		}
		lines[2] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(buttons, " "))
	}

	if m.nameVisible {
		lines[3] = m.name.View()
	}
	return strings.Join(lines, "\n")
}

func (m Model) overlayView() string {
	switch m.overlay {
	case overlayHelp:
		return overlayStyle.Render("Controls\n\n" + m.help.View(m.keys))
	case overlayScores:
		if m.scoreErr != nil {
			return overlayStyle.Render(errorStyle.Render("High scores unavailable: " + m.scoreErr.Error()))
		}
		if len(m.scores.Rows()) == 0 {
			return overlayStyle.Render("High scores\n\nNo scores yet")
		}
		return overlayStyle.Render("High scores\n\n" + m.scores.View())
	}
	return ""
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
