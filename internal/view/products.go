package view

import (
	"fmt"
	"text/tabwriter"

	"storefront/internal/models"
)

// NoProductsMessage is shown when a listing or filter matches nothing
const NoProductsMessage = "No products available."

// RenderProducts writes a product listing. imageURL resolves the picture shown for each product.
func (r *Renderer) RenderProducts(products []models.Product, imageURL func(models.Product) string) {
	if len(products) == 0 {
		fmt.Fprintln(r.out, NoProductsMessage)
		return
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tCATEGORY\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, FormatMoney(p.Price), imageURL(p))
	}
	tw.Flush()
}
