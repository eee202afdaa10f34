package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"storefront/config"
	"storefront/internal/service"
	"storefront/internal/ui"
	"storefront/internal/view"

	"github.com/urfave/cli/v3"
)

const msgProductsUnavailable = "We're sorry, we couldn't load products at the moment. Please check your connection and try again."

var yesFlag = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "answer yes to confirmation prompts",
}

func productsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "List products",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "only show this category (ALL shows everything)"},
			&cli.StringFlag{Name: "search", Usage: "only show products whose name contains this text"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(cfg, false)
			if err != nil {
				return err
			}
			defer a.close()

			products, err := a.catalog.List(ctx)
			if err != nil {
				a.notifier.Notify(ui.LevelError, msgProductsUnavailable)
				return cli.Exit("", 1)
			}

			products = service.FilterByCategory(products, c.String("category"))
			products = service.Search(products, c.String("search"))
			a.renderer.RenderProducts(products, service.ImageURL)
			fmt.Fprintln(os.Stdout, view.Badge(a.session.Cart(ctx)))
			return nil
		},
	}
}

func cartCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "Show or change the cart",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(cfg, false, func(a *app) error {
				a.session.Show(ctx)
				return nil
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the cart",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(cfg, false, func(a *app) error {
						a.session.Show(ctx)
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "Add one unit of a product",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("a product id is required", 2)
					}
					return withApp(cfg, false, func(a *app) error {
						product, err := a.catalog.Find(ctx, id)
						if errors.Is(err, service.ErrProductNotFound) {
							a.notifier.Notify(ui.LevelWarning, fmt.Sprintf("No product with id %q.", id))
							return cli.Exit("", 1)
						}
						if err != nil {
							a.notifier.Notify(ui.LevelError, msgProductsUnavailable)
							return cli.Exit("", 1)
						}
						if _, err := a.session.Add(ctx, product); err != nil {
							return cli.Exit(err.Error(), 1)
						}
						return nil
					})
				},
			},
			{
				Name:      "set",
				Usage:     "Set the quantity of a cart line",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 2 {
						return cli.Exit("a product id and a quantity are required", 2)
					}
					return withApp(cfg, false, func(a *app) error {
						a.session.SetQuantity(ctx, c.Args().Get(0), c.Args().Get(1))
						return nil
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a line from the cart",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("a product id is required", 2)
					}
					return withApp(cfg, false, func(a *app) error {
						a.session.Remove(ctx, id)
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Empty the cart after confirmation",
				Flags: []cli.Flag{yesFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(cfg, c.Bool("yes"), func(a *app) error {
						a.session.ConfirmClear(ctx)
						return nil
					})
				},
			},
		},
	}
}

func checkoutCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Send the cart to the order service",
		Flags: []cli.Flag{yesFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(cfg, c.Bool("yes"), func(a *app) error {
				result, err := a.checkout.Run(ctx)
				switch {
				case errors.Is(err, service.ErrEmptyCart):
					return nil
				case err != nil:
					return cli.Exit("", 1)
				case result.Outcome == service.OutcomeSucceeded && len(result.Confirmation) > 0:
					fmt.Fprintf(os.Stdout, "Order service replied: %s\n", result.Confirmation)
				}
				return nil
			})
		},
	}
}

func withApp(cfg *config.Config, assumeYes bool, fn func(a *app) error) error {
	a, err := newApp(cfg, assumeYes)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
