package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"storefront/internal/models"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// EmptyCartMessage is shown instead of the table when the cart has no items
const EmptyCartMessage = "Your cart is empty."

var money = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: ".", Format: "%s%v"}

// FormatMoney renders an amount the way prices are shown to the shopper
func FormatMoney(amount float64) string {
	return money.FormatMoney(amount)
}

// CartRow is one rendered line of the cart table
type CartRow struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	LineTotal float64
}

// CartView is what the cart page displays
type CartView struct {
	Rows        []CartRow
	Empty       bool
	ShowTable   bool
	ShowSummary bool
	ItemCount   int
	Total       float64
}

// NewCartView derives the displayed state from the cart
func NewCartView(cart models.Cart) CartView {
	v := CartView{Empty: len(cart) == 0}
	v.ShowTable = !v.Empty
	v.ShowSummary = !v.Empty

	total := decimal.Zero
	for _, item := range cart {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		v.ItemCount += item.Quantity
		v.Rows = append(v.Rows, CartRow{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: line.InexactFloat64(),
		})
	}
	v.Total = total.Round(2).InexactFloat64()

	return v
}

// Badge is the cart link label, e.g. "Cart (3)"
func Badge(cart models.Cart) string {
	count := 0
	for _, item := range cart {
		count += item.Quantity
	}
	return fmt.Sprintf("Cart (%d)", count)
}

// Renderer writes cart and product views to a terminal
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render redraws the cart
func (r *Renderer) Render(cart models.Cart) {
	v := NewCartView(cart)

	fmt.Fprintln(r.out, Badge(cart))
	if v.Empty {
		fmt.Fprintln(r.out, EmptyCartMessage)
		return
	}

	if v.ShowTable {
		tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tQTY\tTOTAL")
		for _, row := range v.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				row.ProductID, row.Name, FormatMoney(row.UnitPrice), row.Quantity, FormatMoney(row.LineTotal))
		}
		tw.Flush()
	}

	if v.ShowSummary {
		fmt.Fprintf(r.out, "Total: %s\n", FormatMoney(v.Total))
	}
}
