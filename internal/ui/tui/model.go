package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/onboard/internal/media"
	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/ui/content"
)

// Model is the Bubble Tea model for the onboarding wizard. It is the only
// place keyboard input is interpreted, so the Enter shortcut lives exactly
// as long as the program does.
type Model struct {
	wizard *onboarding.Wizard
	ctx    context.Context
	encode func(path string) (string, error)

	// Inputs for the step they were built for
	fields    []fieldInput
	focus     int
	fieldStep onboarding.Step

	// Last image path encoded per product, shown again on retreat
	imagePaths map[onboarding.ProductKey]string
	encoding   bool

	// Animation
	SpinnerFrame int

	// UI state
	Width   int
	Height  int
	Status  string
	Aborted bool
	Done    bool
}

// NewModel creates a model driving w.
func NewModel(ctx context.Context, w *onboarding.Wizard) Model {
	m := Model{
		wizard:     w,
		ctx:        ctx,
		encode:     media.EncodeFile,
		imagePaths: make(map[onboarding.ProductKey]string),
		fieldStep:  -1,
	}
	m.syncStep()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.focusCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		if m.wizard.Syncing() || m.encoding {
			m.SpinnerFrame++
			return m, tickCmd()
		}
		return m, nil

	case deliveredMsg:
		m.wizard.FinishSubmit()
		m.syncStep()
		return m, nil

	case imageEncodedMsg:
		m.encoding = false
		if msg.err != nil {
			m.Status = msg.err.Error()
			return m, nil
		}
		payload := msg.payload
		if err := m.wizard.SetProductImage(msg.product, &payload); err != nil {
			m.Status = err.Error()
			return m, nil
		}
		m.imagePaths[msg.product] = msg.path
		m.wizard.Advance(m.ctx)
		m.syncStep()
		return m, m.focusCmd()
	}

	return m, m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Nothing interrupts a submission once it has started.
	if m.wizard.Syncing() || m.encoding {
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.Aborted = true
		return m, tea.Quit
	}

	if m.wizard.Step().Terminal() {
		switch msg.String() {
		case "enter", "q", "esc":
			m.Done = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.advance()
	case "esc", "ctrl+b":
		m.commit()
		m.Status = ""
		m.wizard.Retreat()
		m.syncStep()
		return m, m.focusCmd()
	case "tab":
		return m, m.moveFocus(1)
	case "shift+tab":
		return m, m.moveFocus(-1)
	case "alt+enter":
		if f := m.focused(); f != nil && f.def.Multiline {
			return m, f.Update(tea.KeyMsg{Type: tea.KeyEnter})
		}
		return m, nil
	}

	return m, m.updateFocused(msg)
}

// advance commits the inputs and moves forward. FINANCE starts the
// submission; image steps encode a newly entered path first.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.commit()
	m.Status = ""
	step := m.wizard.Step()

	if step == onboarding.StepFinance {
		form, ok := m.wizard.BeginSubmit()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(deliverCmd(m.ctx, m.wizard, form), tickCmd())
	}

	if p, path, ok := m.pendingImage(); ok {
		m.encoding = true
		return m, tea.Batch(encodeCmd(m.encode, p, path), tickCmd())
	}

	m.wizard.Advance(m.ctx)
	m.syncStep()
	return m, m.focusCmd()
}

// pendingImage reports an image path that has not been encoded yet.
func (m Model) pendingImage() (onboarding.ProductKey, string, bool) {
	for i := range m.fields {
		f := &m.fields[i]
		if !f.def.Image {
			continue
		}
		path := strings.TrimSpace(f.Value())
		if path != "" && path != m.imagePaths[f.def.Ref.Product] {
			return f.def.Ref.Product, path, true
		}
	}
	return "", "", false
}

// commit writes text inputs to the wizard. Image paths are stored only
// after encoding; a cleared path drops the stored image.
func (m *Model) commit() {
	for i := range m.fields {
		f := &m.fields[i]
		if f.def.Image {
			m.clearImage(f.def.Ref.Product, f.Value())
			continue
		}
		if err := m.wizard.Set(f.def.Ref, f.Value()); err != nil {
			m.Status = err.Error()
		}
	}
}

func (m *Model) clearImage(p onboarding.ProductKey, path string) {
	if strings.TrimSpace(path) != "" || m.imagePaths[p] == "" {
		return
	}
	if err := m.wizard.SetProductImage(p, nil); err != nil {
		m.Status = err.Error()
		return
	}
	delete(m.imagePaths, p)
}

// syncStep rebuilds the inputs when the wizard has moved to another step,
// pre-filled with the values already collected.
func (m *Model) syncStep() {
	step := m.wizard.Step()
	if step == m.fieldStep {
		return
	}
	form := m.wizard.Form()
	page := content.PageFor(step)

	m.fields = make([]fieldInput, 0, len(page.Fields))
	for _, def := range page.Fields {
		value, _ := form.Get(def.Ref)
		if def.Image {
			value = m.imagePaths[def.Ref.Product]
		}
		m.fields = append(m.fields, newFieldInput(def, value))
	}
	m.focus = 0
	m.fieldStep = step
	if len(m.fields) > 0 {
		m.fields[0].Focus()
	}
}

func (m *Model) focused() *fieldInput {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}

func (m *Model) focusCmd() tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	return f.Focus()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.fields) < 2 {
		return nil
	}
	if f := m.focused(); f != nil {
		f.Blur()
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m.focusCmd()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	return f.Update(msg)
}

func deliverCmd(ctx context.Context, w *onboarding.Wizard, form onboarding.FormState) tea.Cmd {
	return func() tea.Msg {
		w.Deliver(ctx, form)
		return deliveredMsg{}
	}
}

func encodeCmd(encode func(string) (string, error), product onboarding.ProductKey, path string) tea.Cmd {
	return func() tea.Msg {
		payload, err := encode(path)
		return imageEncodedMsg{product: product, path: path, payload: payload, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
