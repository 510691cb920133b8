// Command delicia runs the interactive point of sale on the terminal: it
// loads the catalog and sales history, then serves the sales menu on
// stdin/stdout until the cashier exits.
package main

import (
	"context"
	"os"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/xenking/delicia-pos/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, m, cfg, appkg.IO{In: os.Stdin, Out: os.Stdout})
	})
}
