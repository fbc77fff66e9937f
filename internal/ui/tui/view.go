package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/onboard/internal/media"
	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/ui/content"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	state := m.wizard.State()

	var main strings.Builder
	renderHeader(&main, m, state)
	renderProgressBar(&main, m, state)
	renderPage(&main, m, state)
	if m.Status != "" {
		main.WriteString(failedStyle.Render("  " + crossMark + " " + m.Status))
		main.WriteString("\n")
	}
	renderFooter(&main, m, state)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(renderSidebar(state.Step)),
		main.String(),
	)
}

func renderHeader(b *strings.Builder, m Model, state onboarding.State) {
	b.WriteString(titleStyle.Render("onboard"))
	b.WriteString(" ")
	switch {
	case state.Syncing:
		b.WriteString(activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Sending your details..."))
	case state.Step.Terminal():
		b.WriteString(readyStyle.Render("Complete"))
	default:
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("step %d of %d", state.Index+1, onboarding.LastIndex())))
	}
	b.WriteString("\n")
}

func renderSidebar(current onboarding.Step) string {
	var b strings.Builder
	for _, sec := range onboarding.Sections() {
		var icon string
		var style styleFunc
		switch sec.Status(current) {
		case onboarding.SectionPast:
			icon = checkMark
			style = sf(readyStyle)
		case onboarding.SectionActive:
			icon = ">>  "
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}
		fmt.Fprintf(&b, "%s %s\n", style(icon), style(sec.Label))
	}
	if current.Terminal() {
		fmt.Fprintf(&b, "%s %s\n", readyStyle.Render(checkMark), readyStyle.Render("Done"))
	}
	return b.String()
}

func renderProgressBar(b *strings.Builder, m Model, state onboarding.State) {
	progress := state.Progress()
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 40
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))
	fmt.Fprintf(b, "%s %d%%\n", bar, int(progress*100))
}

func renderPage(b *strings.Builder, m Model, state onboarding.State) {
	page := content.PageFor(state.Step)
	b.WriteString(headingStyle.Render(page.Heading))
	b.WriteString("\n")
	if page.Body != "" {
		b.WriteString(subtitleStyle.Render(page.Body))
		b.WriteString("\n")
	}

	for i := range m.fields {
		f := &m.fields[i]
		label := f.def.Label
		if i == m.focus {
			label = activeStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		fmt.Fprintf(b, "\n%s\n%s\n", label, f.View())
		if f.def.Image {
			renderImageNote(b, m, state, f.def.Ref.Product)
		}
	}

	if state.Step == onboarding.StepFinance {
		b.WriteString("\n")
		renderSummary(b, state.Form)
	}
}

func renderImageNote(b *strings.Builder, m Model, state onboarding.State, which onboarding.ProductKey) {
	if m.encoding {
		b.WriteString(activeStyle.Render(currentSpinner(m.SpinnerFrame)) + dimStyle.Render(" reading image...") + "\n")
		return
	}
	p, err := state.Form.Product(which)
	if err != nil || p.Image == nil {
		return
	}
	b.WriteString(readyStyle.Render(checkMark) + dimStyle.Render(" "+media.Describe(*p.Image)) + "\n")
}

// renderSummary lists what will be sent, one line per filled answer.
func renderSummary(b *strings.Builder, form onboarding.FormState) {
	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(b, "%s %s\n", dimStyle.Render(label+":"), firstLine(value))
	}
	line("Business", form.BusinessName)
	line("Location", form.Location)
	line("Product 1", form.ProductA.Name)
	line("Product 2", form.ProductB.Name)
	line("Telegram", form.Telegram)
	line("Email", form.Email)
}

func renderFooter(b *strings.Builder, m Model, state onboarding.State) {
	var hint string
	switch {
	case state.Syncing || m.encoding:
		hint = "please wait"
	case state.Step.Terminal():
		hint = "enter: close"
	default:
		action := content.PageFor(state.Step).Action
		parts := []string{fmt.Sprintf("enter: %s", strings.ToLower(action))}
		if state.Index > 0 {
			parts = append(parts, "esc: back")
		}
		if len(m.fields) > 1 {
			parts = append(parts, "tab: next field")
		}
		if f := m.focusedView(); f != nil && f.def.Multiline {
			parts = append(parts, "alt+enter: new line")
		}
		parts = append(parts, "ctrl+c: quit")
		hint = strings.Join(parts, "  |  ")
	}
	b.WriteString(footerStyle.Render(hint))
	b.WriteString("\n")
}

// Helper functions

func (m Model) focusedView() *fieldInput {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
