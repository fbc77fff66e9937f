package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/ui/prompt"
	"github.com/imamik/onboard/internal/ui/tui"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	ConfigPath string
	Accessible bool
	LogFile    string
}

// Front end variables - can be replaced in tests.
var (
	runTUI = func(ctx context.Context, w *onboarding.Wizard) error {
		return tui.Run(ctx, w)
	}

	runPrompt = func(ctx context.Context, w *onboarding.Wizard, accessible bool) error {
		asker := prompt.HuhAsker{Accessible: accessible}
		return prompt.NewRunner(asker, os.Stdout).Run(ctx, w)
	}
)

// Run starts a wizard in the front end that suits the terminal.
func Run(ctx context.Context, opts RunOptions) error {
	fullScreen := isTerminal() && !opts.Accessible

	// Prompts share the terminal with stderr logs; the full-screen
	// interface does not.
	env, err := setup(ctx, opts.ConfigPath, logTarget{toFile: fullScreen, file: opts.LogFile})
	if err != nil {
		return err
	}
	defer env.close()

	w := env.newWizard()
	env.log.Info("onboarding started", "fullScreen", fullScreen)

	if fullScreen {
		err = runTUI(ctx, w)
	} else {
		err = runPrompt(ctx, w, opts.Accessible)
	}

	switch {
	case errors.Is(err, tui.ErrAborted), errors.Is(err, prompt.ErrAborted):
		env.log.Info("onboarding aborted", "step", w.Step().String())
		return fmt.Errorf("aborted at step %s", w.Step().Title())
	case err != nil:
		return err
	}

	env.log.Info("onboarding finished", "business", w.Form().BusinessName)
	return nil
}
