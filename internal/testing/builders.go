package testing

import "github.com/imamik/onboard/internal/onboarding"

// FormBuilder provides a fluent interface for constructing test forms.
// Each method returns a new builder (immutable) for chaining.
type FormBuilder struct {
	form onboarding.FormState
}

// NewFormBuilder creates a FormBuilder with every text field filled and
// no images.
func NewFormBuilder() *FormBuilder {
	return &FormBuilder{
		form: onboarding.FormState{
			BusinessName:        "Luna Coffee",
			BusinessDescription: "Specialty coffee, roasted weekly",
			Location:            "Lisbon, Portugal",
			ProductA: onboarding.ProductState{
				Name:        "House Blend",
				Description: "Chocolate and hazelnut",
				Price:       "12.50",
				Stock:       "40",
			},
			ProductB: onboarding.ProductState{
				Name:        "Decaf",
				Description: "Swiss water process",
				Price:       "11.00",
				Stock:       "15",
			},
			Telegram:       "@lunacoffee",
			Email:          "hello@luna.example",
			FinanceDetails: "IBAN PT50 0000 0000 0000 0000 0000 0",
		},
	}
}

// Empty starts from a blank form.
func Empty() *FormBuilder {
	return &FormBuilder{}
}

// WithBusinessName sets the business name.
func (b *FormBuilder) WithBusinessName(name string) *FormBuilder {
	next := b.clone()
	next.form.BusinessName = name
	return next
}

// WithLocation sets the location.
func (b *FormBuilder) WithLocation(location string) *FormBuilder {
	next := b.clone()
	next.form.Location = location
	return next
}

// WithProduct replaces the text fields of one product, keeping its image.
func (b *FormBuilder) WithProduct(which onboarding.ProductKey, name, price, stock string) *FormBuilder {
	next := b.clone()
	p := next.product(which)
	p.Name = name
	p.Price = price
	p.Stock = stock
	return next
}

// WithImage sets a product image payload.
func (b *FormBuilder) WithImage(which onboarding.ProductKey, payload string) *FormBuilder {
	next := b.clone()
	next.product(which).Image = &payload
	return next
}

// WithContact sets the Telegram handle and email.
func (b *FormBuilder) WithContact(telegram, email string) *FormBuilder {
	next := b.clone()
	next.form.Telegram = telegram
	next.form.Email = email
	return next
}

// WithFinanceDetails sets the payment details.
func (b *FormBuilder) WithFinanceDetails(details string) *FormBuilder {
	next := b.clone()
	next.form.FinanceDetails = details
	return next
}

// Build returns the constructed form.
func (b *FormBuilder) Build() onboarding.FormState {
	return b.clone().form
}

func (b *FormBuilder) product(which onboarding.ProductKey) *onboarding.ProductState {
	if which == onboarding.ProductB {
		return &b.form.ProductB
	}
	return &b.form.ProductA
}

// clone creates a deep copy of the builder for immutability.
func (b *FormBuilder) clone() *FormBuilder {
	next := b.form
	next.ProductA.Image = cloneString(b.form.ProductA.Image)
	next.ProductB.Image = cloneString(b.form.ProductB.Image)
	return &FormBuilder{form: next}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
