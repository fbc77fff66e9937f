package onboarding

import (
	"encoding/json"
	"fmt"
)

// FieldKey names a top-level scalar field of FormState.
type FieldKey string

// Top-level form fields. Values match the JSON payload keys.
const (
	FieldBusinessName        FieldKey = "businessName"
	FieldBusinessDescription FieldKey = "businessDescription"
	FieldLocation            FieldKey = "location"
	FieldTelegram            FieldKey = "telegram"
	FieldEmail               FieldKey = "email"
	FieldFinanceDetails      FieldKey = "financeDetails"
)

// ProductKey selects one of the two product records.
type ProductKey string

// Product records.
const (
	ProductA ProductKey = "productA"
	ProductB ProductKey = "productB"
)

// ProductFieldKey names a field inside a ProductState.
type ProductFieldKey string

// Product fields.
const (
	ProductName        ProductFieldKey = "name"
	ProductDescription ProductFieldKey = "description"
	ProductPrice       ProductFieldKey = "price"
	ProductStock       ProductFieldKey = "stock"
	ProductImage       ProductFieldKey = "image"
)

// FieldRef addresses any form field. Product is empty for top-level fields.
type FieldRef struct {
	Product ProductKey
	Key     string
}

func (r FieldRef) String() string {
	if r.Product == "" {
		return r.Key
	}
	return string(r.Product) + "." + r.Key
}

// ProductState is one catalog entry. Price and stock are kept as typed text.
type ProductState struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       string  `json:"price" yaml:"price"`
	Stock       string  `json:"stock" yaml:"stock"`
	Image       *string `json:"image" yaml:"image"`
}

// FormState is everything collected by the wizard. Its JSON encoding is the
// submission payload.
type FormState struct {
	BusinessName        string       `json:"businessName" yaml:"businessName"`
	BusinessDescription string       `json:"businessDescription" yaml:"businessDescription"`
	Location            string       `json:"location" yaml:"location"`
	ProductA            ProductState `json:"productA" yaml:"productA"`
	ProductB            ProductState `json:"productB" yaml:"productB"`
	Telegram            string       `json:"telegram" yaml:"telegram"`
	Email               string       `json:"email" yaml:"email"`
	FinanceDetails      string       `json:"financeDetails" yaml:"financeDetails"`
}

// Payload serializes the form for delivery.
func (f FormState) Payload() ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return data, nil
}

// Product returns a copy of the selected product record.
func (f FormState) Product(which ProductKey) (ProductState, error) {
	switch which {
	case ProductA:
		return f.ProductA, nil
	case ProductB:
		return f.ProductB, nil
	}
	return ProductState{}, fmt.Errorf("%w: %q", ErrUnknownProduct, which)
}

// Get reads a field as text. An unset image reads as "".
func (f FormState) Get(ref FieldRef) (string, error) {
	if ref.Product == "" {
		p, err := f.fieldPtr(FieldKey(ref.Key))
		if err != nil {
			return "", err
		}
		return *p, nil
	}

	p, err := f.Product(ref.Product)
	if err != nil {
		return "", err
	}
	if ProductFieldKey(ref.Key) == ProductImage {
		if p.Image == nil {
			return "", nil
		}
		return *p.Image, nil
	}
	v, err := p.fieldPtr(ProductFieldKey(ref.Key))
	if err != nil {
		return "", err
	}
	return *v, nil
}

// withField returns a copy of f with one top-level field replaced.
func (f FormState) withField(key FieldKey, value string) (FormState, error) {
	p, err := f.fieldPtr(key)
	if err != nil {
		return f, err
	}
	*p = value
	return f, nil
}

// withProduct returns a copy of f whose selected product has been passed
// through edit. The sibling product is carried over untouched.
func (f FormState) withProduct(which ProductKey, edit func(ProductState) (ProductState, error)) (FormState, error) {
	switch which {
	case ProductA:
		p, err := edit(f.ProductA)
		if err != nil {
			return f, err
		}
		f.ProductA = p
	case ProductB:
		p, err := edit(f.ProductB)
		if err != nil {
			return f, err
		}
		f.ProductB = p
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownProduct, which)
	}
	return f, nil
}

// fieldPtr points into the receiver copy; callers use it on a value they own.
func (f *FormState) fieldPtr(key FieldKey) (*string, error) {
	switch key {
	case FieldBusinessName:
		return &f.BusinessName, nil
	case FieldBusinessDescription:
		return &f.BusinessDescription, nil
	case FieldLocation:
		return &f.Location, nil
	case FieldTelegram:
		return &f.Telegram, nil
	case FieldEmail:
		return &f.Email, nil
	case FieldFinanceDetails:
		return &f.FinanceDetails, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

func (p ProductState) withField(key ProductFieldKey, value string) (ProductState, error) {
	if key == ProductImage {
		p.Image = &value
		return p, nil
	}
	v, err := p.fieldPtr(key)
	if err != nil {
		return p, err
	}
	*v = value
	return p, nil
}

func (p *ProductState) fieldPtr(key ProductFieldKey) (*string, error) {
	switch key {
	case ProductName:
		return &p.Name, nil
	case ProductDescription:
		return &p.Description, nil
	case ProductPrice:
		return &p.Price, nil
	case ProductStock:
		return &p.Stock, nil
	}
	return nil, fmt.Errorf("%w: product field %q", ErrUnknownField, key)
}
