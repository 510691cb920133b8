package cart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/delicia-pos/internal/domain/product"
)

var (
	// ErrInvalidQuantity is returned for non-numeric or non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be a number greater than 0")
	// ErrNotFound is returned when no cart line matches a removal query.
	ErrNotFound = errors.New("item not in cart")
)

// InvalidQuantityError carries the rejected user input.
type InvalidQuantityError struct {
	Input string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q: %s", e.Input, ErrInvalidQuantity)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// Line is a single cart entry. Name and price are copied from the product
// when the line is created and never follow later catalog changes.
type Line struct {
	ProductID   int
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart holds lines in insertion order with at most one line per product.
// A Cart is not safe for concurrent use; session.Session serialises access.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Quantity input limits.
const (
	// MaxQuantityScale is the number of fractional digits accepted.
	MaxQuantityScale = 6
	maxExponent      = 9
)

// MaxQuantity is the largest quantity accepted for a single add.
var MaxQuantity = decimal.NewFromInt(1_000_000)

// ParseQuantity parses user input into a strictly positive quantity of at
// most MaxQuantity with at most MaxQuantityScale fractional digits.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	qty, err := decimal.NewFromString(text)
	if err != nil || !qty.IsPositive() {
		return decimal.Zero, &InvalidQuantityError{Input: text}
	}
	// Exponent is checked before any comparison: rescaling a huge exponent
	// allocates the full digit string.
	if exp := qty.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, &InvalidQuantityError{Input: text}
	}
	if qty.GreaterThan(MaxQuantity) || !qty.Equal(qty.Truncate(MaxQuantityScale)) {
		return decimal.Zero, &InvalidQuantityError{Input: text}
	}
	return qty, nil
}

// Add puts qty units of p into the cart, merging with an existing line for
// the same product id. The cart is left untouched on error.
func (c *Cart) Add(p product.Product, qty decimal.Decimal) (Line, error) {
	if !qty.IsPositive() {
		return Line{}, ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity = c.lines[i].Quantity.Add(qty)
			return c.lines[i], nil
		}
	}

	line := Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    qty,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove deletes the first line, in cart order, matching q by id or by name
// substring and returns the removed line. Only lines already in the cart are
// considered.
func (c *Cart) Remove(q product.Query) (Line, error) {
	if q.Text == "" && q.Kind != product.ByID {
		return Line{}, product.ErrEmptyInput
	}
	for i, l := range c.lines {
		if q.Matches(l.ProductID, l.ProductName) {
			c.lines = slices.Delete(c.lines, i, i+1)
			return l, nil
		}
	}
	return Line{}, ErrNotFound
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
