package session

import (
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/xenking/delicia-pos/internal/session"

type metrics struct {
	itemsAdded    metric.Float64Counter
	linesRemoved  metric.Int64Counter
	cartsCleared  metric.Int64Counter
	ticketsIssued metric.Int64Counter
	rejected      metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	var (
		m   metrics
		err error
	)
	if m.itemsAdded, err = meter.Float64Counter("pos.cart.items_added",
		metric.WithDescription("Quantity of products added to the cart"),
	); err != nil {
		return nil, errors.Wrap(err, "items_added")
	}
	if m.linesRemoved, err = meter.Int64Counter("pos.cart.lines_removed",
		metric.WithDescription("Cart lines removed"),
	); err != nil {
		return nil, errors.Wrap(err, "lines_removed")
	}
	if m.cartsCleared, err = meter.Int64Counter("pos.cart.cleared",
		metric.WithDescription("Times the cart was emptied"),
	); err != nil {
		return nil, errors.Wrap(err, "cleared")
	}
	if m.ticketsIssued, err = meter.Int64Counter("pos.tickets.issued",
		metric.WithDescription("Tickets generated"),
	); err != nil {
		return nil, errors.Wrap(err, "tickets_issued")
	}
	if m.rejected, err = meter.Int64Counter("pos.requests.rejected",
		metric.WithDescription("Operations rejected with a user error"),
	); err != nil {
		return nil, errors.Wrap(err, "rejected")
	}

	return &m, nil
}
