package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/onboard/internal/onboarding"
)

func TestEveryStepHasAPage(t *testing.T) {
	for _, step := range onboarding.Steps() {
		p := PageFor(step)
		assert.NotEmpty(t, p.Heading, step.String())
		assert.Len(t, p.Fields, len(step.Fields()), step.String())
		for _, f := range p.Fields {
			assert.NotEmpty(t, f.Label, "%s %s", step, f.Ref)
		}
	}
}

func TestFinanceActionIsFinish(t *testing.T) {
	assert.Equal(t, "Finish", PageFor(onboarding.StepFinance).Action)
	assert.Empty(t, PageFor(onboarding.StepSuccess).Action)
}

func TestImageField(t *testing.T) {
	p := PageFor(onboarding.StepProductBImage)
	if assert.Len(t, p.Fields, 1) {
		assert.True(t, p.Fields[0].Image)
		assert.Equal(t, onboarding.ProductB, p.Fields[0].Ref.Product)
	}
	assert.False(t, FieldFor(onboarding.FieldRef{Key: "email"}).Image)
	assert.True(t, FieldFor(onboarding.FieldRef{Key: "financeDetails"}).Multiline)
}
