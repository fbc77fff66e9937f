package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/onboard/internal/media"
	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/ui/content"
)

// Runner walks a wizard from its current step to SUCCESS.
type Runner struct {
	asker  Asker
	out    io.Writer
	encode func(path string) (string, error)

	// Last image path encoded per product
	paths map[onboarding.ProductKey]string
}

// NewRunner creates a Runner asking through a and printing progress to out.
func NewRunner(a Asker, out io.Writer) *Runner {
	return &Runner{
		asker:  a,
		out:    out,
		encode: media.EncodeFile,
		paths:  make(map[onboarding.ProductKey]string),
	}
}

// Run asks one question per step until the wizard reaches SUCCESS.
func (r *Runner) Run(ctx context.Context, w *onboarding.Wizard) error {
	for !w.Step().Terminal() {
		step := w.Step()
		page := content.PageFor(step)

		ans, err := r.asker.Ask(ctx, Question{
			Page:    page,
			Values:  r.values(w.Form(), page),
			CanBack: onboarding.IndexOf(step) > 0,
		})
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
				return ErrAborted
			}
			return fmt.Errorf("%s: %w", strings.ToLower(step.Title()), err)
		}

		if !r.store(w, page, ans.Values) {
			continue
		}
		if ans.Back {
			w.Retreat()
			continue
		}
		if step == onboarding.StepFinance {
			fmt.Fprintln(r.out, "Sending your details...")
		}
		w.Advance(ctx)
	}

	done := content.PageFor(onboarding.StepSuccess)
	fmt.Fprintf(r.out, "%s\n%s\n", done.Heading, done.Body)
	return nil
}

func (r *Runner) values(form onboarding.FormState, page content.Page) []string {
	out := make([]string, len(page.Fields))
	for i, f := range page.Fields {
		if f.Image {
			out[i] = r.paths[f.Ref.Product]
			continue
		}
		out[i], _ = form.Get(f.Ref)
	}
	return out
}

// store writes the answers to w. It reports false when an image could not
// be encoded, so the same step is asked again.
func (r *Runner) store(w *onboarding.Wizard, page content.Page, values []string) bool {
	for i, f := range page.Fields {
		if i >= len(values) {
			break
		}
		if !f.Image {
			if err := w.Set(f.Ref, values[i]); err != nil {
				fmt.Fprintf(r.out, "%s: %v\n", f.Label, err)
			}
			continue
		}

		path := strings.TrimSpace(values[i])
		if path == "" && r.paths[f.Ref.Product] != "" {
			if err := w.SetProductImage(f.Ref.Product, nil); err != nil {
				fmt.Fprintf(r.out, "%s: %v\n", f.Label, err)
				return false
			}
			delete(r.paths, f.Ref.Product)
			continue
		}
		if path == "" || path == r.paths[f.Ref.Product] {
			continue
		}
		payload, err := r.encode(path)
		if err != nil {
			fmt.Fprintf(r.out, "%s: %v\n", f.Label, err)
			return false
		}
		if err := w.SetProductImage(f.Ref.Product, &payload); err != nil {
			fmt.Fprintf(r.out, "%s: %v\n", f.Label, err)
			return false
		}
		r.paths[f.Ref.Product] = path
		fmt.Fprintf(r.out, "%s: %s\n", f.Label, media.Describe(payload))
	}
	return true
}
