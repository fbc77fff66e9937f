package onboarding

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldLeavesProductsAlone(t *testing.T) {
	w := NewWizard(nil)
	require.NoError(t, w.SetProductField(ProductA, ProductName, "Widget"))
	require.NoError(t, w.SetProductField(ProductB, ProductName, "Gadget"))
	before := w.Form()

	require.NoError(t, w.SetField(FieldLocation, "NY"))

	after := w.Form()
	if diff := cmp.Diff(before.ProductA, after.ProductA); diff != "" {
		t.Errorf("productA changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.ProductB, after.ProductB); diff != "" {
		t.Errorf("productB changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, "NY", after.Location)
}

func TestSetProductFieldIsolatesSibling(t *testing.T) {
	for _, which := range []ProductKey{ProductA, ProductB} {
		t.Run(string(which), func(t *testing.T) {
			w := NewWizard(nil)
			require.NoError(t, w.SetField(FieldBusinessName, "Acme"))
			before := w.Form()

			require.NoError(t, w.SetProductField(which, ProductPrice, "10"))

			after := w.Form()
			edited, _ := after.Product(which)
			assert.Equal(t, "10", edited.Price)

			sibling := ProductB
			if which == ProductB {
				sibling = ProductA
			}
			was, _ := before.Product(sibling)
			is, _ := after.Product(sibling)
			assert.Equal(t, was, is)
			assert.Equal(t, "Acme", after.BusinessName)
		})
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	w := NewWizard(nil)
	require.NoError(t, w.SetProductField(ProductA, ProductImage, "data:image/png;base64,AAAA"))
	snap := w.Form()

	require.NoError(t, w.SetProductField(ProductA, ProductImage, "data:image/png;base64,BBBB"))

	require.NotNil(t, snap.ProductA.Image)
	assert.Equal(t, "data:image/png;base64,AAAA", *snap.ProductA.Image)
}

func TestSetProductImageClears(t *testing.T) {
	w := NewWizard(nil)
	img := "data:image/jpeg;base64,/9j/"
	require.NoError(t, w.SetProductImage(ProductB, &img))
	require.NoError(t, w.SetProductImage(ProductB, nil))
	assert.Nil(t, w.Form().ProductB.Image)
}

func TestUnknownKeysDoNotMutate(t *testing.T) {
	w := NewWizard(nil)
	require.NoError(t, w.SetField(FieldEmail, "a@b.c"))
	before := w.Form()

	err := w.SetField("favoriteColor", "blue")
	assert.True(t, errors.Is(err, ErrUnknownField))

	err = w.SetProductField("productC", ProductName, "x")
	assert.True(t, errors.Is(err, ErrUnknownProduct))

	err = w.SetProductField(ProductA, "weight", "3kg")
	assert.True(t, errors.Is(err, ErrUnknownField))

	assert.Equal(t, before, w.Form())
}

func TestFormGet(t *testing.T) {
	var f FormState
	f.Telegram = "@acme"
	f.ProductB.Stock = "7"

	v, err := f.Get(FieldRef{Key: "telegram"})
	require.NoError(t, err)
	assert.Equal(t, "@acme", v)

	v, err = f.Get(FieldRef{Product: ProductB, Key: "stock"})
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	v, err = f.Get(FieldRef{Product: ProductA, Key: "image"})
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = f.Get(FieldRef{Key: "nope"})
	assert.Error(t, err)
}

func TestPayloadShape(t *testing.T) {
	var f FormState
	f.BusinessName = "Acme"
	data, err := f.Payload()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"businessName", "businessDescription", "location", "productA", "productB", "telegram", "email", "financeDetails"} {
		assert.Contains(t, raw, key)
	}
	prod := raw["productA"].(map[string]any)
	assert.Nil(t, prod["image"])
	assert.Contains(t, prod, "image")
	assert.Equal(t, "Acme", raw["businessName"])
}
