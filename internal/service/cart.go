package service

import (
	"strconv"
	"strings"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// AddItem puts one unit of product into the cart. An existing line is
// incremented; otherwise a new line is appended with the product's current price.
func AddItem(cart models.Cart, product models.Product) (models.Cart, error) {
	productID, err := product.Identity()
	if err != nil {
		return cart, err
	}

	out := cart.Clone()
	if i := out.Find(productID); i >= 0 {
		out[i].Quantity++
		return out, nil
	}

	return append(out, models.CartItem{
		ProductID: productID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
	}), nil
}

// SetQuantity changes the quantity of a line, never below 1.
// Unknown product ids leave the cart as it is.
func SetQuantity(cart models.Cart, productID string, quantity int) models.Cart {
	i := cart.Find(productID)
	if i < 0 {
		return cart
	}
	if quantity < 1 {
		quantity = 1
	}

	out := cart.Clone()
	out[i].Quantity = quantity
	return out
}

// ParseQuantity coerces user input to a valid quantity: anything that is not
// an integer of at least 1 becomes 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RemoveItem drops the line for productID if there is one
func RemoveItem(cart models.Cart, productID string) models.Cart {
	out := make(models.Cart, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// ClearCart returns an empty cart
func ClearCart() models.Cart {
	return models.Cart{}
}

// TotalItems is the sum of all quantities
func TotalItems(cart models.Cart) int {
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the unrounded sum of unit price times quantity
func TotalPrice(cart models.Cart) float64 {
	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(lineTotal(item))
	}
	return total.InexactFloat64()
}

func lineTotal(item models.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
}
