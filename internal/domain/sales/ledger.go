// Package sales keeps the cumulative quantity sold per product during a run.
package sales

import (
	"github.com/shopspring/decimal"
)

// Entry is the running total for one product name.
type Entry struct {
	ProductName string
	Quantity    decimal.Decimal
}

// Ledger accumulates demand per product name. Entries are never decremented
// or removed: removing an item from the cart does not undo a recorded sale.
type Ledger struct {
	entries []Entry
	index   map[string]int
}

// NewLedger returns a ledger seeded with historical entries. Repeated names
// in seed are merged.
func NewLedger(seed ...Entry) *Ledger {
	l := &Ledger{index: make(map[string]int, len(seed))}
	for _, e := range seed {
		l.Record(e.ProductName, e.Quantity)
	}
	return l
}

// Record adds qty to the entry for name, creating it on first sale.
// Non-positive quantities are ignored so the totals never shrink.
func (l *Ledger) Record(name string, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	if i, ok := l.index[name]; ok {
		l.entries[i].Quantity = l.entries[i].Quantity.Add(qty)
		return
	}
	l.index[name] = len(l.entries)
	l.entries = append(l.entries, Entry{ProductName: name, Quantity: qty})
}

// Quantity returns the cumulative quantity recorded for name.
func (l *Ledger) Quantity(name string) decimal.Decimal {
	if i, ok := l.index[name]; ok {
		return l.entries[i].Quantity
	}
	return decimal.Zero
}

// Entries returns a copy of all entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of distinct products recorded.
func (l *Ledger) Len() int {
	return len(l.entries)
}
