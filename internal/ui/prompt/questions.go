package prompt

import (
	"context"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/imamik/onboard/internal/ui/content"
)

// Question is one page to ask, with the values collected so far.
type Question struct {
	Page    content.Page
	Values  []string
	CanBack bool
}

// Answer is what the user entered for a Question.
type Answer struct {
	Values []string
	Back   bool
}

// Asker presents a Question and waits for the answer.
type Asker interface {
	Ask(ctx context.Context, q Question) (Answer, error)
}

// HuhAsker asks questions with huh forms.
type HuhAsker struct {
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

// Ask implements Asker.
func (h HuhAsker) Ask(ctx context.Context, q Question) (Answer, error) {
	ans := Answer{Values: append([]string(nil), q.Values...)}
	for len(ans.Values) < len(q.Page.Fields) {
		ans.Values = append(ans.Values, "")
	}
	forward := true

	form := buildForm(q, ans.Values, &forward)
	form = form.WithAccessible(h.Accessible)
	if h.Input != nil {
		form = form.WithInput(h.Input)
	}
	if h.Output != nil {
		form = form.WithOutput(h.Output)
	}
	if err := form.RunWithContext(ctx); err != nil {
		return Answer{}, err
	}

	ans.Back = !forward
	return ans, nil
}

// buildForm lays out one page as a single group: a note for the heading,
// one input per field bound to values, and a confirm for navigation.
func buildForm(q Question, values []string, forward *bool) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().Title(q.Page.Heading).Description(q.Page.Body),
	}

	for i, f := range q.Page.Fields {
		if f.Multiline {
			fields = append(fields, huh.NewText().
				Title(f.Label).
				Placeholder(f.Placeholder).
				Value(&values[i]))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(f.Label).
			Placeholder(f.Placeholder).
			Value(&values[i]))
	}

	if q.CanBack {
		fields = append(fields, huh.NewConfirm().
			Title("Continue?").
			Affirmative(q.Page.Action).
			Negative("Back").
			Value(forward))
	}

	return huh.NewForm(huh.NewGroup(fields...))
}
