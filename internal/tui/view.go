package tui

import (
	"fmt"
	"strings"

	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded && m.err == nil {
		return docStyle.Render("Loading...")
	}

	var b strings.Builder

	day, err := utils.ParseDate(m.date)
	title := m.date
	if err == nil {
		title = day.Format("Monday, January 2 2006")
	}
	b.WriteString(headerStyle.Render("cadence"))
	b.WriteString("  ")
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(dangerStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderEntries())
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderSummary()))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return docStyle.Render(b.String())
}

func (m Model) renderEntries() string {
	if len(m.view.Entries) == 0 {
		return dimStyle.Render("Nothing scheduled for this day.") + "\n"
	}

	var b strings.Builder
	for i, entry := range m.view.Entries {
		line := fmt.Sprintf("%s %s", statusGlyph(entry.Completion.Status), entry.Task.Name)
		if name := m.catName[entry.Task.CategoryID]; name != "" {
			line += dimStyle.Render("  " + name)
		}
		if entry.Task.ScheduledStart != "" {
			line += dimStyle.Render(fmt.Sprintf("  %s", entry.Task.ScheduledStart))
		}
		if entry.Completion.QualityScore != nil {
			line += fmt.Sprintf("  quality %d/10", *entry.Completion.QualityScore)
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.summary
	lines := []string{
		fmt.Sprintf("Completed %d/%d (%.0f%%)", s.CompletedTasks, s.TotalTasks, s.CompletionRate),
	}
	if s.AvgQuality > 0 {
		lines = append(lines, fmt.Sprintf("Avg quality  %.1f/10", s.AvgQuality))
	}
	if s.ReadingMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Reading      %d min, %d pages", s.ReadingMinutes, s.PagesRead))
	}
	if s.ExerciseDone {
		lines = append(lines, "Exercise     done")
	}
	lines = append(lines, fmt.Sprintf("Excellence   %d/6 targets", s.Excellence.MetCount()))
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	if m.mode == modeQuality {
		return warningStyle.Render("Quality score? 1-9, 0 for 10, esc to cancel")
	}
	help := "←/→ day · j/k move · s start · c complete · x skip · p postpone · t today · r refresh · q quit"
	return dimStyle.Render(help)
}

func statusGlyph(status models.CompletionStatus) string {
	switch status {
	case models.StatusCompleted:
		return doneStyle.Render("✓")
	case models.StatusInProgress:
		return warningStyle.Render("▶")
	case models.StatusSkipped:
		return dimStyle.Render("✗")
	case models.StatusPostponed:
		return dimStyle.Render("→")
	default:
		return dimStyle.Render("·")
	}
}
