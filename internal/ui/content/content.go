// Package content holds the user-facing text for each onboarding step.
package content

import "github.com/imamik/onboard/internal/onboarding"

// Field describes one input on a page.
type Field struct {
	Ref         onboarding.FieldRef
	Label       string
	Placeholder string
	Multiline   bool
	// Image fields take a file path that is encoded before storing.
	Image bool
}

// Page is the text shown for one step.
type Page struct {
	Heading string
	Body    string
	Fields  []Field
	// Action labels the forward control.
	Action string
}

type label struct {
	text        string
	placeholder string
	multiline   bool
}

var topLevelLabels = map[onboarding.FieldKey]label{
	onboarding.FieldBusinessName:        {"Business name", "e.g. Luna Coffee Roasters", false},
	onboarding.FieldBusinessDescription: {"What do you sell?", "Specialty coffee, roasted weekly, shipped nationwide", true},
	onboarding.FieldLocation:            {"Where are you based?", "City, country", false},
	onboarding.FieldTelegram:            {"Telegram handle", "@yourshop", false},
	onboarding.FieldEmail:               {"Email", "you@example.com", false},
	onboarding.FieldFinanceDetails:      {"How should customers pay you?", "Bank transfer details, payment links, accepted methods", true},
}

var productLabels = map[onboarding.ProductFieldKey]label{
	onboarding.ProductName:        {"Product name", "e.g. House Blend 1kg", false},
	onboarding.ProductDescription: {"Short description", "What makes it worth buying", true},
	onboarding.ProductPrice:       {"Price", "0.00", false},
	onboarding.ProductStock:       {"Units in stock", "0", false},
	onboarding.ProductImage:       {"Image file", "path/to/photo.jpg (optional)", false},
}

var pages = map[onboarding.Step]Page{
	onboarding.StepIntro: {
		Heading: "Let's set up your store assistant",
		Body:    "A few minutes of questions connects your products to an assistant that can answer customers and close sales around the clock.",
		Action:  "Start",
	},
	onboarding.StepName:          {Heading: "What is your business called?", Action: "Next"},
	onboarding.StepDescription:   {Heading: "Describe your business", Action: "Next"},
	onboarding.StepLocation:      {Heading: "Where do you operate?", Action: "Next"},
	onboarding.StepProductAInfo:  {Heading: "Your first product", Action: "Next"},
	onboarding.StepProductAPrice: {Heading: "Price and stock for your first product", Action: "Next"},
	onboarding.StepProductAImage: {Heading: "A photo of your first product", Body: "Images help the assistant show what it is selling.", Action: "Next"},
	onboarding.StepProductBInfo:  {Heading: "Your second product", Action: "Next"},
	onboarding.StepProductBPrice: {Heading: "Price and stock for your second product", Action: "Next"},
	onboarding.StepProductBImage: {Heading: "A photo of your second product", Body: "Images help the assistant show what it is selling.", Action: "Next"},
	onboarding.StepContact:       {Heading: "How can we reach you?", Action: "Next"},
	onboarding.StepFinance: {
		Heading: "Getting paid",
		Body:    "When you finish, your answers are sent to our onboarding registry.",
		Action:  "Finish",
	},
	onboarding.StepSuccess: {
		Heading: "You're all set",
		Body:    "We received your details and will contact you shortly with your assistant.",
	},
}

// PageFor returns the text for step, with one Field per input.
func PageFor(step onboarding.Step) Page {
	p := pages[step]
	refs := step.Fields()
	p.Fields = make([]Field, 0, len(refs))
	for _, ref := range refs {
		p.Fields = append(p.Fields, FieldFor(ref))
	}
	return p
}

// FieldFor returns the label and placeholder for ref.
func FieldFor(ref onboarding.FieldRef) Field {
	var l label
	if ref.Product == "" {
		l = topLevelLabels[onboarding.FieldKey(ref.Key)]
	} else {
		l = productLabels[onboarding.ProductFieldKey(ref.Key)]
	}
	return Field{
		Ref:         ref,
		Label:       l.text,
		Placeholder: l.placeholder,
		Multiline:   l.multiline,
		Image:       ref.Product != "" && onboarding.ProductFieldKey(ref.Key) == onboarding.ProductImage,
	}
}
