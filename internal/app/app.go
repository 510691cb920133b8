package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/delicia-pos/internal/console"
	"github.com/xenking/delicia-pos/internal/seed"
	"github.com/xenking/delicia-pos/internal/session"
)

// Telemetry is the subset of the sdk telemetry the point of sale uses.
type Telemetry interface {
	MeterProvider() metric.MeterProvider
	TracerProvider() trace.TracerProvider
}

// IO holds the terminal streams.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// Run loads seed data, creates the session and drives the console until the
// user exits or ctx is cancelled. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m Telemetry, cfg *Config, term IO) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("store", cfg.Store),
		zap.String("catalog_file", cfg.CatalogFile),
		zap.String("history_file", cfg.HistoryFile),
	)

	data, err := seed.Load(ctx, seed.Sources{
		CatalogFile: cfg.CatalogFile,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return errors.Wrap(err, "load seed data")
	}
	lg.Info("Seed data loaded",
		zap.Int("products", data.Catalog.Len()),
		zap.Int("history_entries", len(data.History)),
	)

	sess, err := session.New(data.Catalog, session.Options{
		History:       data.History,
		MeterProvider: m.MeterProvider(),
	})
	if err != nil {
		return errors.Wrap(err, "create session")
	}

	ui := console.New(sess, term.In, term.Out, cfg.consoleConfig(), m.TracerProvider())

	// The console blocks on terminal reads, so it runs aside and an interrupt
	// ends the program without waiting for the next line.
	done := make(chan error, 1)
	go func() {
		done <- ui.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "console")
		}
		lg.Info("Session finished")
		return nil
	case <-ctx.Done():
		lg.Info("Interrupted, closing session")
		return nil
	}
}
