package product

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no catalog product matches a query.
	ErrNotFound = errors.New("product not found")
	// ErrEmptyInput is returned when a search or removal query is blank.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Product represents a catalog item available for sale.
type Product struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Category string
}

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// New validates products and builds a Catalog preserving their order.
// IDs must be unique and positive; contiguity is not required.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range products {
		switch {
		case p.ID <= 0:
			return nil, errors.Wrapf(ErrInvalidCatalog, "product %q: id %d is not positive", p.Name, p.ID)
		case strings.TrimSpace(p.Name) == "":
			return nil, errors.Wrapf(ErrInvalidCatalog, "product %d: empty name", p.ID)
		case p.Price.IsNegative():
			return nil, errors.Wrapf(ErrInvalidCatalog, "product %d: negative price %s", p.ID, p.Price)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidCatalog, "duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
		c.products[i] = p
	}
	return c, nil
}

// List returns a copy of all products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// FindByID returns the product with the given id.
func (c *Catalog) FindByID(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// FindByName returns the first product, in catalog order, whose name contains
// text case-insensitively.
func (c *Catalog) FindByName(text string) (Product, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return Product{}, ErrEmptyInput
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Find resolves a query: an id match wins, otherwise the name fallback applies.
func (c *Catalog) Find(q Query) (Product, error) {
	if q.Kind == ByID {
		if p, err := c.FindByID(q.ID); err == nil {
			return p, nil
		}
	}
	return c.FindByName(q.Text)
}
