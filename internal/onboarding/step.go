package onboarding

import "fmt"

// Step is one stage of the onboarding sequence.
type Step int

// The onboarding steps in presentation order.
const (
	StepIntro Step = iota
	StepName
	StepDescription
	StepLocation
	StepProductAInfo
	StepProductAPrice
	StepProductAImage
	StepProductBInfo
	StepProductBPrice
	StepProductBImage
	StepContact
	StepFinance
	StepSuccess
)

var stepOrder = []Step{
	StepIntro,
	StepName,
	StepDescription,
	StepLocation,
	StepProductAInfo,
	StepProductAPrice,
	StepProductAImage,
	StepProductBInfo,
	StepProductBPrice,
	StepProductBImage,
	StepContact,
	StepFinance,
	StepSuccess,
}

var stepNames = map[Step]string{
	StepIntro:         "INTRO",
	StepName:          "NAME",
	StepDescription:   "DESC",
	StepLocation:      "LOCATION",
	StepProductAInfo:  "PROD_A_INFO",
	StepProductAPrice: "PROD_A_PRICE",
	StepProductAImage: "PROD_A_IMAGE",
	StepProductBInfo:  "PROD_B_INFO",
	StepProductBPrice: "PROD_B_PRICE",
	StepProductBImage: "PROD_B_IMAGE",
	StepContact:       "CONTACT",
	StepFinance:       "FINANCE",
	StepSuccess:       "SUCCESS",
}

var stepTitles = map[Step]string{
	StepIntro:         "Welcome",
	StepName:          "Business name",
	StepDescription:   "What you sell",
	StepLocation:      "Location",
	StepProductAInfo:  "Product A",
	StepProductAPrice: "Product A pricing",
	StepProductAImage: "Product A image",
	StepProductBInfo:  "Product B",
	StepProductBPrice: "Product B pricing",
	StepProductBImage: "Product B image",
	StepContact:       "Contact",
	StepFinance:       "Payments",
	StepSuccess:       "Done",
}

// Steps returns the fixed step order. The slice is a copy.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// LastIndex is the index of the terminal step.
func LastIndex() int {
	return len(stepOrder) - 1
}

// StepAt returns the step at index i, clamped to the valid range.
func StepAt(i int) Step {
	return stepOrder[clampIndex(i)]
}

// IndexOf returns the position of s in the step order, or -1.
func IndexOf(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// ParseStep resolves a step by its wire name (e.g. "PROD_A_INFO").
func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", name)
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Title is the human readable heading for the step.
func (s Step) Title() string {
	return stepTitles[s]
}

// Terminal reports whether s is the final step.
func (s Step) Terminal() bool {
	return s == StepSuccess
}

// Product returns the product record a catalog step edits.
func (s Step) Product() (ProductKey, bool) {
	switch s {
	case StepProductAInfo, StepProductAPrice, StepProductAImage:
		return ProductA, true
	case StepProductBInfo, StepProductBPrice, StepProductBImage:
		return ProductB, true
	}
	return "", false
}

// Fields lists the form fields edited on step s, in display order.
func (s Step) Fields() []FieldRef {
	switch s {
	case StepName:
		return []FieldRef{{Key: string(FieldBusinessName)}}
	case StepDescription:
		return []FieldRef{{Key: string(FieldBusinessDescription)}}
	case StepLocation:
		return []FieldRef{{Key: string(FieldLocation)}}
	case StepContact:
		return []FieldRef{{Key: string(FieldTelegram)}, {Key: string(FieldEmail)}}
	case StepFinance:
		return []FieldRef{{Key: string(FieldFinanceDetails)}}
	}

	p, ok := s.Product()
	if !ok {
		return nil
	}
	switch s {
	case StepProductAInfo, StepProductBInfo:
		return []FieldRef{
			{Product: p, Key: string(ProductName)},
			{Product: p, Key: string(ProductDescription)},
		}
	case StepProductAPrice, StepProductBPrice:
		return []FieldRef{
			{Product: p, Key: string(ProductPrice)},
			{Product: p, Key: string(ProductStock)},
		}
	default:
		return []FieldRef{{Product: p, Key: string(ProductImage)}}
	}
}

// Section groups consecutive steps for navigation display.
type Section struct {
	Label string
	Steps []Step
}

var sections = []Section{
	{Label: "Welcome", Steps: []Step{StepIntro}},
	{Label: "Your brand", Steps: []Step{StepName, StepDescription, StepLocation}},
	{Label: "Catalog", Steps: []Step{
		StepProductAInfo, StepProductAPrice, StepProductAImage,
		StepProductBInfo, StepProductBPrice, StepProductBImage,
	}},
	{Label: "Connection", Steps: []Step{StepContact, StepFinance}},
}

// Sections returns the navigation groups. SUCCESS belongs to none.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, sec := range sections {
		out[i] = Section{Label: sec.Label, Steps: append([]Step(nil), sec.Steps...)}
	}
	return out
}

// SectionStatus is how a section relates to the current step.
type SectionStatus string

// Section states.
const (
	SectionPending SectionStatus = "pending"
	SectionActive  SectionStatus = "active"
	SectionPast    SectionStatus = "past"
)

// Status reports whether the section contains current, lies behind it, or
// is still ahead.
func (sec Section) Status(current Step) SectionStatus {
	for _, s := range sec.Steps {
		if s == current {
			return SectionActive
		}
	}
	if len(sec.Steps) > 0 && IndexOf(current) > IndexOf(sec.Steps[len(sec.Steps)-1]) {
		return SectionPast
	}
	return SectionPending
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > LastIndex() {
		return LastIndex()
	}
	return i
}
