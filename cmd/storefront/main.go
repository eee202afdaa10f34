package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"storefront/config"
	"storefront/internal/util"

	"github.com/urfave/cli/v3"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger("cli"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	cmd := &cli.Command{
		Name:  "storefront",
		Usage: "Browse products, manage the cart and place orders",
		Commands: []*cli.Command{
			productsCommand(cfg),
			cartCommand(cfg),
			checkoutCommand(cfg),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		util.SyncLogger()
		os.Exit(1)
	}
}
