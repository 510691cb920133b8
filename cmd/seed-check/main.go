// Command seed-check validates a product catalog and a sales history file
// before they are handed to the point of sale.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"

	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/domain/sales"
	"github.com/xenking/delicia-pos/internal/report"
	"github.com/xenking/delicia-pos/internal/seed"
)

func main() {
	var (
		productsFile string
		historyFile  string
		topN         int
	)

	flag.StringVar(&productsFile, "products-file", "", "path to products YAML file (embedded catalog when empty)")
	flag.StringVar(&historyFile, "history-file", "", "path to sales history file, .gz allowed (embedded history when empty)")
	flag.IntVar(&topN, "top-n", report.DefaultTopN, "number of most expensive products to print")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, seed.Sources{CatalogFile: productsFile, HistoryFile: historyFile}, topN); err != nil {
		slog.Error("seed check failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed check completed successfully")
}

func run(ctx context.Context, src seed.Sources, topN int) error {
	slog.Info("loading seed data",
		slog.String("products_file", src.CatalogFile),
		slog.String("history_file", src.HistoryFile),
	)

	data, err := seed.Load(ctx, src)
	if err != nil {
		return errors.Wrap(err, "load")
	}

	slog.Info("catalog is valid", slog.Int("products", data.Catalog.Len()))
	for _, p := range report.TopExpensive(data.Catalog.List(), topN) {
		slog.Info("top product",
			slog.Int("id", p.ID),
			slog.String("name", p.Name),
			slog.String("price", p.Price.StringFixed(2)),
		)
	}

	ledger := sales.NewLedger(data.History...)
	known := catalogNames(data.Catalog.List())
	unknown := 0
	for _, e := range report.MostSold(ledger.Entries()) {
		if _, ok := known[e.ProductName]; !ok {
			unknown++
			slog.Warn("history entry does not match any catalog product",
				slog.String("name", e.ProductName),
				slog.String("quantity", e.Quantity.String()),
			)
			continue
		}
		slog.Info("history entry",
			slog.String("name", e.ProductName),
			slog.String("quantity", e.Quantity.String()),
		)
	}
	slog.Info("history is valid",
		slog.Int("entries", ledger.Len()),
		slog.Int("unknown_products", unknown),
	)

	return nil
}

// catalogNames indexes products by exact name. The ledger is keyed by the
// product name copied into cart lines, so history must match it exactly.
func catalogNames(products []product.Product) map[string]product.Product {
	byName := make(map[string]product.Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}
	return byName
}
