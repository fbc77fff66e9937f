package handlers

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imamik/onboard/internal/onboarding"
)

// readAnswers can be replaced in tests.
var readAnswers = os.ReadFile

// Submit replays saved answers through the regular submission. Sink
// failures are logged, never returned.
func Submit(ctx context.Context, configPath, answersPath string) error {
	form, err := loadAnswers(answersPath)
	if err != nil {
		return err
	}

	env, err := setup(ctx, configPath, logTarget{})
	if err != nil {
		return err
	}
	defer env.close()

	w := env.newWizard(onboarding.WithInitialForm(form))
	w.Submit(ctx)

	fmt.Printf("Submitted %q (%s)\n", form.BusinessName, w.Step())
	return nil
}

// loadAnswers decodes a FormState from YAML or JSON.
func loadAnswers(path string) (onboarding.FormState, error) {
	var form onboarding.FormState

	data, err := readAnswers(path)
	if err != nil {
		return form, fmt.Errorf("failed to read answers: %w", err)
	}
	if err := yaml.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("failed to parse answers %s: %w", path, err)
	}
	return form, nil
}
