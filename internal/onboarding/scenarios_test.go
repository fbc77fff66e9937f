package onboarding_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/onboard/internal/onboarding"
)

var _ = Describe("Onboarding wizard", func() {
	var (
		ctx       context.Context
		wizard    *onboarding.Wizard
		delivered []onboarding.FormState
		failWith  error
	)

	BeforeEach(func() {
		ctx = context.Background()
		delivered = nil
		failWith = nil
		d := onboarding.DelivererFunc(func(_ context.Context, f onboarding.FormState) error {
			delivered = append(delivered, f)
			return failWith
		})
		wizard = onboarding.NewWizard(d, onboarding.WithSleep(func(time.Duration) {}))
	})

	Context("filling the brand and first product", func() {
		It("lands on PROD_B_INFO with every value kept", func() {
			Expect(wizard.Step()).To(Equal(onboarding.StepIntro))

			wizard.Advance(ctx) // NAME
			Expect(wizard.SetField(onboarding.FieldBusinessName, "Acme")).To(Succeed())
			wizard.Advance(ctx) // DESC
			Expect(wizard.SetField(onboarding.FieldBusinessDescription, "Widgets")).To(Succeed())
			wizard.Advance(ctx) // LOCATION
			Expect(wizard.SetField(onboarding.FieldLocation, "NY")).To(Succeed())
			wizard.Advance(ctx) // PROD_A_INFO
			Expect(wizard.SetProductField(onboarding.ProductA, onboarding.ProductName, "Widget")).To(Succeed())
			wizard.Advance(ctx) // PROD_A_PRICE
			Expect(wizard.SetProductField(onboarding.ProductA, onboarding.ProductPrice, "10")).To(Succeed())
			Expect(wizard.SetProductField(onboarding.ProductA, onboarding.ProductStock, "5")).To(Succeed())
			wizard.Advance(ctx) // PROD_A_IMAGE
			wizard.Advance(ctx) // PROD_B_INFO

			form := wizard.Form()
			Expect(form.BusinessName).To(Equal("Acme"))
			Expect(form.BusinessDescription).To(Equal("Widgets"))
			Expect(form.Location).To(Equal("NY"))
			Expect(form.ProductA.Name).To(Equal("Widget"))
			Expect(form.ProductA.Price).To(Equal("10"))
			Expect(form.ProductA.Stock).To(Equal("5"))
			Expect(form.ProductB).To(Equal(onboarding.ProductState{}))
			Expect(wizard.Step()).To(Equal(onboarding.StepProductBInfo))
		})
	})

	Context("submitting from FINANCE", func() {
		BeforeEach(func() {
			for wizard.Step() != onboarding.StepFinance {
				wizard.Advance(ctx)
			}
		})

		It("reaches SUCCESS when the network call rejects", func() {
			failWith = errors.New("dial tcp: no route to host")
			wizard.Advance(ctx)

			Expect(wizard.Step()).To(Equal(onboarding.StepSuccess))
			Expect(wizard.Syncing()).To(BeFalse())
			Expect(delivered).To(HaveLen(1))
		})

		It("reaches SUCCESS when the network call resolves", func() {
			wizard.Advance(ctx)

			Expect(wizard.Step()).To(Equal(onboarding.StepSuccess))
			Expect(wizard.Syncing()).To(BeFalse())
		})
	})

	Context("at INTRO", func() {
		It("ignores retreat", func() {
			wizard.Retreat()
			Expect(wizard.State().Index).To(Equal(0))
		})
	})
})
