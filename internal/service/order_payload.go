package service

import (
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// BuildOrderPayload turns the cart into the order request body. now is the
// only input besides the cart.
func BuildOrderPayload(cart models.Cart, now time.Time) models.OrderPayload {
	items := make([]models.OrderLine, 0, len(cart))
	total := decimal.Zero

	for _, item := range cart {
		line := lineTotal(item)
		total = total.Add(line)

		items = append(items, models.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: line.InexactFloat64(),
		})
	}

	return models.OrderPayload{
		Items: items,
		// decimal.Round rounds half away from zero
		TotalAmount: total.Round(2).InexactFloat64(),
		Currency:    models.CurrencyCAD,
		CreatedAt:   now.UTC(),
	}
}
