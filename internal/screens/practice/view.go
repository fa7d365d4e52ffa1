package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/rules"
	"github.com/abhisek/smartest/internal/ui/components"
	"github.com/abhisek/smartest/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	left := width * 2 / 5
	if left < 28 {
		left = 28
	}
	right := width - left - 1
	if right < 20 {
		// Narrow terminals stack the panels.
		return lipgloss.JoinVertical(lipgloss.Left,
			s.renderCatalog(width, height/3),
			s.renderOptions(width),
			s.renderQuestion(width))
	}
	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		s.renderCatalog(left, height/2),
		s.renderOptions(left))
	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " ", s.renderQuestion(right))
}

func (s *PracticeScreen) renderCatalog(width, height int) string {
	var b strings.Builder
	switch {
	case s.catErr != "":
		b.WriteString(theme.ErrorText.Render("Catalog unavailable: " + s.catErr))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("press r to retry"))
	case s.catalog == nil:
		b.WriteString(theme.Hint.Render("Loading catalog..."))
	default:
		if s.filtering || s.filter.Value() != "" {
			b.WriteString("/ " + s.filter.View() + "\n")
		}
		if len(s.entries) == 0 {
			b.WriteString(theme.Hint.Render("No matching subchapters"))
			break
		}
		rows := height - 4
		start, end := components.Window(s.cursor, len(s.entries), rows)
		for i := start; i < end; i++ {
			e := s.entries[i]
			mark := "  "
			if s.selected != nil && *s.selected == e.Selection {
				mark = "● "
			}
			line := mark + e.Chapter + " · " + e.Text
			if lipgloss.Width(line) > width-6 && width > 10 {
				line = string([]rune(line)[:max(width-7, 1)]) + "…"
			}
			style := theme.Unselected
			if i == s.cursor && s.focus == paneCatalog {
				style = theme.Selected
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}
	return components.Panel("Subchapters", strings.TrimRight(b.String(), "\n"), width, s.focus == paneCatalog)
}

func (s *PracticeScreen) renderOptions(width int) string {
	var b strings.Builder
	b.WriteString("Difficulty: ")
	b.WriteString(theme.Selected.Render(strings.ToUpper(string(s.tier))))
	b.WriteString("\n")
	if s.form == nil {
		b.WriteString(theme.Hint.Render("Select a subchapter to see its options"))
		return components.Panel("Options", b.String(), width, s.focus == paneOptions)
	}
	b.WriteString(theme.Subtitle.Render(s.form.Kind().DisplayName()))
	b.WriteString("\n")
	for i, f := range s.form.Fields() {
		value := f.Value
		if f.Spec.Type == rules.Numeric {
			value += fmt.Sprintf("  (%d-%d)", f.Spec.Min, f.Spec.Max)
		}
		line := fmt.Sprintf("%-18s %s", f.Def.Label, value)
		style := theme.Unselected
		switch {
		case !f.Editable:
			style = theme.Disabled
			line += "  locked"
		case i == s.fieldIdx && s.focus == paneOptions:
			style = theme.Selected
			line = "▸ " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return components.Panel("Options", strings.TrimRight(b.String(), "\n"), width, s.focus == paneOptions)
}

func (s *PracticeScreen) renderQuestion(width int) string {
	sess := s.session
	aff := sess.Affordances()
	var b strings.Builder

	label := "no subchapter selected"
	if s.catalog != nil && s.selected != nil {
		label = s.catalog.Label(s.selected)
	}
	b.WriteString(theme.Subtitle.Render(label))
	b.WriteString("\n\n")

	textWidth := max(width-6, 10)
	switch {
	case sess.InFlight() == lifecycle.OpGenerate:
		b.WriteString(theme.Hint.Render("Generating question..."))
	case sess.Question() != nil:
		b.WriteString(theme.Body.Width(textWidth).Render(sess.Question().Text))
	default:
		b.WriteString(theme.Hint.Render("Press Ctrl+G to generate a question"))
	}
	b.WriteString("\n\n")

	if !s.choices.Empty() {
		b.WriteString(s.choices.View(sess.Answer()))
		b.WriteString("\n")
	}
	answerStyle := theme.Body
	if !aff.AnswerInput {
		answerStyle = theme.Disabled
	}
	b.WriteString(answerStyle.Render("Answer: "))
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	b.WriteString(components.ButtonRow(
		components.NewButton("Generate", "Ctrl+G", aff.Generate),
		components.NewButton("Check", "Enter", aff.Check),
		components.NewButton("Explain", "Ctrl+E", aff.Explanation),
		components.NewButton("Raw", "Ctrl+R", aff.RawExchange),
	))
	b.WriteString("\n\n")

	if sess.InFlight() == lifecycle.OpCheck {
		b.WriteString(theme.Hint.Render("Checking..."))
	} else if line := sess.ResultLine(); line != "" {
		b.WriteString(resultStyle(sess).Width(textWidth).Render(line))
	}

	if s.showExplanation {
		if exp, ok := sess.Explanation(); ok {
			b.WriteString("\n\n")
			b.WriteString(theme.Subtitle.Render("Explanation"))
			b.WriteString("\n")
			b.WriteString(theme.Body.Width(textWidth).Render(exp))
		}
	}
	if s.showRaw {
		if raw, ok := sess.RawExchange(); ok {
			b.WriteString("\n\n")
			b.WriteString(theme.Subtitle.Render("Raw response"))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(raw))
		}
	}

	return components.Panel("Question", b.String(), width, s.focus == paneAnswer)
}

func resultStyle(sess *lifecycle.Session) lipgloss.Style {
	switch sess.State() {
	case lifecycle.StateError:
		return theme.ErrorText
	case lifecycle.StateChecked:
		r := sess.Result()
		if r != nil && r.Correct != nil {
			if *r.Correct {
				return theme.Correct
			}
			return theme.Incorrect
		}
		return theme.Body
	default:
		return theme.Notice
	}
}
