// Package ticket builds and renders purchase tickets.
package ticket

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/delicia-pos/internal/domain/cart"
	"github.com/xenking/delicia-pos/internal/pricing"
)

const (
	width       = 40
	nameColumn  = 18
	defaultName = "DELICIA"
)

// Ticket is an immutable receipt for the cart contents at checkout time.
type Ticket struct {
	ID       uuid.UUID
	IssuedAt time.Time
	Lines    []cart.Line
	Totals   pricing.Totals
}

// New creates a ticket for lines priced as totals.
func New(lines []cart.Line, totals pricing.Totals, now time.Time) *Ticket {
	return &Ticket{
		ID:       uuid.New(),
		IssuedAt: now,
		Lines:    lines,
		Totals:   totals,
	}
}

// Options controls text rendering.
type Options struct {
	// Store is printed in the header.
	Store string
	// Currency is printed before every amount.
	Currency string
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func center(s string) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// WriteText renders the ticket as a fixed-width receipt.
func (t *Ticket) WriteText(w io.Writer, opts Options) error {
	if opts.Store == "" {
		opts.Store = defaultName
	}
	var b strings.Builder
	rule := strings.Repeat("=", width)
	sep := strings.Repeat("-", width)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, center("PURCHASE SUMMARY - "+opts.Store))
	fmt.Fprintf(&b, "Ticket: %s\n", t.ID)
	fmt.Fprintf(&b, "Date:   %s\n", t.IssuedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, sep)
	fmt.Fprintf(&b, "%-20s%-7s%-7s%s\n", "Product", "Qty", "Price", "Subtotal")
	fmt.Fprintln(&b, sep)
	for _, l := range t.Lines {
		fmt.Fprintf(&b, "%-20s%-7s%-7s%s\n",
			truncate(l.ProductName, nameColumn),
			l.Quantity.String(),
			money(l.UnitPrice),
			money(l.Subtotal()),
		)
	}
	fmt.Fprintln(&b, sep)

	tot := t.Totals
	row := func(label, amount string) {
		fmt.Fprintf(&b, "%-22s%s%*s\n", label, opts.Currency, width-22-len(opts.Currency), amount)
	}
	row("Subtotal:", money(tot.Subtotal))
	row(fmt.Sprintf("Discount (%s%%):", tot.DiscountPercent.StringFixed(0)), money(tot.DiscountAmount))
	row("IGV (18%):", money(tot.Tax))
	row("TOTAL:", money(tot.GrandTotal))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "   Thank you for your purchase! Come back soon.")
	fmt.Fprintln(&b, rule)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write ticket")
	}
	return nil
}

// WriteJSON renders the ticket as JSON. Amounts are two-decimal strings.
func (t *Ticket) WriteJSON(w io.Writer) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(2)

	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(t.ID.String()) })
		e.Field("issued_at", func(e *jx.Encoder) { e.Str(t.IssuedAt.UTC().Format(time.RFC3339)) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range t.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product_id", func(e *jx.Encoder) { e.Int(l.ProductID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(l.ProductName) })
						e.Field("quantity", func(e *jx.Encoder) { e.Str(l.Quantity.String()) })
						e.Field("unit_price", func(e *jx.Encoder) { e.Str(money(l.UnitPrice)) })
						e.Field("subtotal", func(e *jx.Encoder) { e.Str(money(l.Subtotal())) })
					})
				}
			})
		})
		tot := t.Totals
		e.Field("totals", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("items", func(e *jx.Encoder) { e.Str(tot.ItemCount.String()) })
				e.Field("subtotal", func(e *jx.Encoder) { e.Str(money(tot.Subtotal)) })
				e.Field("discount_percent", func(e *jx.Encoder) { e.Str(tot.DiscountPercent.String()) })
				e.Field("discount", func(e *jx.Encoder) { e.Str(money(tot.DiscountAmount)) })
				e.Field("tax", func(e *jx.Encoder) { e.Str(money(tot.Tax)) })
				e.Field("total", func(e *jx.Encoder) { e.Str(money(tot.GrandTotal)) })
			})
		})
	})
	buf := append(e.Bytes(), '\n')

	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "write ticket json")
	}
	return nil
}
