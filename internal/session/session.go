// Package session owns the mutable state of one point-of-sale run: the cart
// and the sales ledger, next to the read-only catalog.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/xenking/delicia-pos/internal/domain/cart"
	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/domain/sales"
	"github.com/xenking/delicia-pos/internal/pricing"
	"github.com/xenking/delicia-pos/internal/report"
	"github.com/xenking/delicia-pos/internal/ticket"
)

// ErrEmptyCart is returned when a ticket is requested for an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Options configures a Session.
type Options struct {
	// History seeds the sales ledger.
	History []sales.Entry
	// MeterProvider defaults to no metrics when nil.
	MeterProvider metric.MeterProvider
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session serialises every cart and ledger mutation behind one lock so that
// a cart add and its ledger record are applied together.
type Session struct {
	catalog *product.Catalog
	metrics *metrics
	now     func() time.Time

	mu     sync.Mutex
	cart   *cart.Cart
	ledger *sales.Ledger
}

// New creates a Session with an empty cart over catalog.
func New(catalog *product.Catalog, opts Options) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	m, err := newMetrics(mp)
	if err != nil {
		return nil, errors.Wrap(err, "create metrics")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		catalog: catalog,
		metrics: m,
		now:     now,
		cart:    cart.New(),
		ledger:  sales.NewLedger(opts.History...),
	}, nil
}

// Catalog returns the read-only catalog.
func (s *Session) Catalog() *product.Catalog {
	return s.catalog
}

func (s *Session) reject(ctx context.Context, op string, err error) error {
	s.metrics.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	zctx.From(ctx).Debug("Operation rejected", zap.String("op", op), zap.Error(err))
	return err
}

// Find resolves raw user input against the catalog.
func (s *Session) Find(ctx context.Context, raw string) (product.Product, error) {
	q, err := product.ParseQuery(raw)
	if err != nil {
		return product.Product{}, s.reject(ctx, "find", err)
	}
	p, err := s.catalog.Find(q)
	if err != nil {
		return product.Product{}, s.reject(ctx, "find", err)
	}
	return p, nil
}

// Add puts qty units of p in the cart and records the sale in the ledger with
// the same quantity.
func (s *Session) Add(ctx context.Context, p product.Product, qty decimal.Decimal) (cart.Line, error) {
	s.mu.Lock()
	line, err := s.cart.Add(p, qty)
	if err == nil {
		s.ledger.Record(p.Name, qty)
	}
	s.mu.Unlock()

	if err != nil {
		return cart.Line{}, s.reject(ctx, "add", err)
	}

	s.metrics.itemsAdded.Add(ctx, qty.InexactFloat64(),
		metric.WithAttributes(attribute.Int("product.id", p.ID)),
	)
	zctx.From(ctx).Debug("Added to cart",
		zap.Int("product_id", p.ID),
		zap.String("product", p.Name),
		zap.Stringer("quantity", qty),
		zap.Stringer("line_quantity", line.Quantity),
	)
	return line, nil
}

// AddByQuery resolves rawProduct and parses rawQty before adding.
func (s *Session) AddByQuery(ctx context.Context, rawProduct, rawQty string) (cart.Line, error) {
	p, err := s.Find(ctx, rawProduct)
	if err != nil {
		return cart.Line{}, err
	}
	qty, err := cart.ParseQuantity(rawQty)
	if err != nil {
		return cart.Line{}, s.reject(ctx, "add", err)
	}
	return s.Add(ctx, p, qty)
}

// Remove deletes the first cart line matching raw by id or name substring and
// returns the removed product name. The ledger is left untouched.
func (s *Session) Remove(ctx context.Context, raw string) (string, error) {
	q, err := product.ParseQuery(raw)
	if err != nil {
		return "", s.reject(ctx, "remove", err)
	}

	s.mu.Lock()
	line, err := s.cart.Remove(q)
	s.mu.Unlock()
	if err != nil {
		return "", s.reject(ctx, "remove", err)
	}

	s.metrics.linesRemoved.Add(ctx, 1)
	zctx.From(ctx).Debug("Removed from cart",
		zap.Int("product_id", line.ProductID),
		zap.String("product", line.ProductName),
	)
	return line.ProductName, nil
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	n := s.cart.Len()
	s.cart.Clear()
	s.mu.Unlock()

	s.metrics.cartsCleared.Add(ctx, 1)
	zctx.From(ctx).Debug("Cart cleared", zap.Int("lines", n))
}

// Lines returns a snapshot of the cart.
func (s *Session) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Totals prices the current cart.
func (s *Session) Totals() pricing.Totals {
	return pricing.Compute(s.Lines())
}

// TopExpensive returns the n most expensive catalog products.
func (s *Session) TopExpensive(n int) []product.Product {
	return report.TopExpensive(s.catalog.List(), n)
}

// MostSold returns the ledger ordered by quantity sold.
func (s *Session) MostSold() []sales.Entry {
	s.mu.Lock()
	entries := s.ledger.Entries()
	s.mu.Unlock()
	return report.MostSold(entries)
}

// Checkout prices the cart and issues a ticket. The cart is kept as is.
func (s *Session) Checkout(ctx context.Context) (*ticket.Ticket, error) {
	lines := s.Lines()
	if len(lines) == 0 {
		return nil, s.reject(ctx, "checkout", ErrEmptyCart)
	}

	t := ticket.New(lines, pricing.Compute(lines), s.now())
	s.metrics.ticketsIssued.Add(ctx, 1)
	zctx.From(ctx).Info("Ticket issued",
		zap.Stringer("ticket_id", t.ID),
		zap.String("total", t.Totals.GrandTotal.StringFixed(2)),
	)
	return t, nil
}
