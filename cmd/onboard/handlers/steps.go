package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/onboard/internal/onboarding"
)

var (
	stepsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	stepsSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#3b82f6"))

	stepsDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))
)

type stepView struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Section string   `json:"section,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// Steps prints the step order grouped by section.
func Steps(out io.Writer, jsonOutput bool) error {
	views := stepViews()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	var b strings.Builder
	b.WriteString(stepsTitleStyle.Render("Onboarding steps"))
	b.WriteString("\n")
	section := ""
	for _, v := range views {
		label := v.Section
		if label == "" {
			label = "Finish"
		}
		if label != section {
			section = label
			b.WriteString("\n")
			b.WriteString(stepsSectionStyle.Render("  " + section))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "    %2d  %-14s %s", v.Index, v.Name, v.Title)
		if len(v.Fields) > 0 {
			b.WriteString(stepsDimStyle.Render("  (" + strings.Join(v.Fields, ", ") + ")"))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func stepViews() []stepView {
	sectionOf := make(map[onboarding.Step]string)
	for _, sec := range onboarding.Sections() {
		for _, s := range sec.Steps {
			sectionOf[s] = sec.Label
		}
	}

	steps := onboarding.Steps()
	views := make([]stepView, 0, len(steps))
	for i, s := range steps {
		v := stepView{Index: i, Name: s.String(), Title: s.Title(), Section: sectionOf[s]}
		for _, ref := range s.Fields() {
			v.Fields = append(v.Fields, ref.String())
		}
		views = append(views, v)
	}
	return views
}
