package service

import (
	"fmt"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price}
}

func sampleCart() models.Cart {
	return models.Cart{
		{ProductID: "p1", Name: "Mouse", UnitPrice: 29.99, Quantity: 2},
		{ProductID: "p2", Name: "Keyboard", UnitPrice: 49.5, Quantity: 1},
	}
}

func TestAddDistinctProducts(t *testing.T) {
	cart := models.Cart{}
	for i := 0; i < 7; i++ {
		var err error
		cart, err = AddItem(cart, product(fmt.Sprintf("p%d", i), "Item", 1.25))
		require.NoError(t, err)
	}

	assert.Len(t, cart, 7)
	assert.Equal(t, 7, TotalItems(cart))
}

func TestAddSameProductTwice(t *testing.T) {
	mouse := product("p1", "Mouse", 29.99)

	cart, err := AddItem(nil, mouse)
	require.NoError(t, err)
	cart, err = AddItem(cart, mouse)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "Mouse", cart[0].Name)
}

func TestAddKeepsPriceFromFirstAdd(t *testing.T) {
	cart, err := AddItem(nil, product("p1", "Mouse", 29.99))
	require.NoError(t, err)
	cart, err = AddItem(cart, product("p1", "Mouse", 19.99))
	require.NoError(t, err)

	assert.Equal(t, 29.99, cart[0].UnitPrice)
}

func TestAddWithoutIdentity(t *testing.T) {
	cart := sampleCart()

	out, err := AddItem(cart, models.Product{Name: "Nameless key"})

	assert.ErrorIs(t, err, models.ErrMissingProductID)
	assert.Equal(t, sampleCart(), out)
}

func TestAddDoesNotMutateInput(t *testing.T) {
	cart := sampleCart()

	_, err := AddItem(cart, product("p1", "Mouse", 29.99))
	require.NoError(t, err)

	assert.Equal(t, sampleCart(), cart)
}

func TestSetQuantityClamps(t *testing.T) {
	for _, qty := range []int{0, -5} {
		cart := SetQuantity(sampleCart(), "p1", qty)
		assert.Equal(t, 1, cart[0].Quantity, "quantity %d", qty)
	}

	cart := SetQuantity(sampleCart(), "p2", 4)
	assert.Equal(t, 4, cart[1].Quantity)
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	assert.Equal(t, sampleCart(), SetQuantity(sampleCart(), "nope", 3))
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{
		"3":    3,
		" 12 ": 12,
		"0":    1,
		"-5":   1,
		"abc":  1,
		"":     1,
		"2.5":  1,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseQuantity(raw), "input %q", raw)
	}
}

func TestRemoveItem(t *testing.T) {
	cart := RemoveItem(sampleCart(), "p1")

	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)
}

func TestRemoveMissingItem(t *testing.T) {
	assert.Equal(t, sampleCart(), RemoveItem(sampleCart(), "nope"))
}

func TestClearCart(t *testing.T) {
	cart := ClearCart()

	assert.NotNil(t, cart)
	assert.Empty(t, cart)
}

func TestTotals(t *testing.T) {
	assert.Equal(t, 3, TotalItems(sampleCart()))
	assert.Equal(t, 109.48, TotalPrice(sampleCart()))
	assert.Zero(t, TotalItems(nil))
	assert.Zero(t, TotalPrice(nil))
}
