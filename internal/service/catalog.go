package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// MaxListedProducts caps how many products the storefront shows
const MaxListedProducts = 100

const (
	categoryAll         = "ALL"
	defaultProductImage = "images/products/download.jpg"
)

// ErrProductNotFound is returned when a product id is not in the listing
var ErrProductNotFound = errors.New("product not found")

// ProductLister fetches products from the product service
type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

var categoryImages = map[string]string{
	"laptops":                                "images/category-laptops.jpg",
	"tv & home theatre":                      "images/category-tv.png",
	"headphones and portable speakers":       "images/cat-accessories.jpg",
	"video games, consoles, and accessories": "images/cat-games.jpg",
	"pc gaming":                              "images/cat-pc-gaming.jpg",
	"accessories":                            "images/cat-accessories.jpg",
}

// Catalog lists and filters products
type Catalog struct {
	products ProductLister
	logger   *zap.Logger
}

// NewCatalog creates a catalog backed by the product service
func NewCatalog(products ProductLister) *Catalog {
	return &Catalog{
		products: products,
		logger:   util.GetLogger(),
	}
}

// List returns at most MaxListedProducts products
func (c *Catalog) List(ctx context.Context) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "Catalog.List")
	defer span.End()

	products, err := c.products.ListProducts(ctx)
	if err != nil {
		c.logger.Error("Error loading products", zap.Error(err))
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	if len(products) > MaxListedProducts {
		products = products[:MaxListedProducts]
	}
	return products, nil
}

// Find returns the listed product with the given id
func (c *Catalog) Find(ctx context.Context, productID string) (models.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return models.Product{}, err
	}

	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
}

// FilterByCategory keeps products whose category equals category, ignoring case.
// An empty category or "ALL" keeps everything.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || category == categoryAll {
		return products
	}

	want := strings.ToLower(category)
	var out []models.Product
	for _, p := range products {
		if strings.ToLower(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps products whose name or category contains query, ignoring case
func Search(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// ImageURL picks the picture shown for a product
func ImageURL(p models.Product) string {
	if url := strings.TrimSpace(p.ImageURL); url != "" {
		return url
	}
	if img, ok := categoryImages[strings.ToLower(strings.TrimSpace(p.Category))]; ok {
		return img
	}
	return defaultProductImage
}
