package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/onboard/internal/ui/content"
)

// fieldInput wraps a single-line or multi-line input for one form field.
type fieldInput struct {
	def  content.Field
	line textinput.Model
	area textarea.Model
}

func newFieldInput(def content.Field, value string) fieldInput {
	f := fieldInput{def: def}
	if def.Multiline {
		f.area = textarea.New()
		f.area.Placeholder = def.Placeholder
		f.area.ShowLineNumbers = false
		f.area.SetHeight(3)
		f.area.SetWidth(56)
		f.area.CharLimit = 2000
		f.area.SetValue(value)
		f.area.Blur()
		return f
	}
	f.line = textinput.New()
	f.line.Placeholder = def.Placeholder
	f.line.Prompt = "> "
	f.line.Width = 54
	f.line.CharLimit = 512
	f.line.SetValue(value)
	f.line.Blur()
	return f
}

func (f *fieldInput) Value() string {
	if f.def.Multiline {
		return f.area.Value()
	}
	return f.line.Value()
}

func (f *fieldInput) Focus() tea.Cmd {
	if f.def.Multiline {
		return f.area.Focus()
	}
	return f.line.Focus()
}

func (f *fieldInput) Blur() {
	if f.def.Multiline {
		f.area.Blur()
		return
	}
	f.line.Blur()
}

func (f *fieldInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.def.Multiline {
		f.area, cmd = f.area.Update(msg)
		return cmd
	}
	f.line, cmd = f.line.Update(msg)
	return cmd
}

func (f *fieldInput) View() string {
	if f.def.Multiline {
		return f.area.View()
	}
	return f.line.View()
}
