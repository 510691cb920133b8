// Package seed loads the product catalog and the historical sales used to
// start a session, from embedded defaults or user supplied files.
package seed

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/xenking/delicia-pos/db"
	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/domain/sales"
)

type productYAML struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
}

type catalogYAML struct {
	Products []productYAML `yaml:"products"`
}

// Sources names the files to load. Empty paths select the embedded data.
type Sources struct {
	CatalogFile string
	HistoryFile string
}

// Data is the loaded seed.
type Data struct {
	Catalog *product.Catalog
	History []sales.Entry
}

// Load reads catalog and history concurrently.
func Load(ctx context.Context, src Sources) (*Data, error) {
	var data Data

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := loadCatalog(src.CatalogFile)
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		data.Catalog = c
		return nil
	})
	g.Go(func() error {
		h, err := loadHistory(ctx, src.HistoryFile)
		if err != nil {
			return errors.Wrap(err, "load history")
		}
		data.History = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &data, nil
}

// DefaultCatalog returns the embedded reference catalog.
func DefaultCatalog() (*product.Catalog, error) {
	return ParseCatalog(bytes.NewReader(db.Products))
}

// DefaultHistory returns the embedded sales history.
func DefaultHistory() ([]sales.Entry, error) {
	return ParseHistory(context.Background(), bytes.NewReader(db.History))
}

func loadCatalog(path string) (*product.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	return ParseCatalog(f)
}

func loadHistory(ctx context.Context, path string) ([]sales.Entry, error) {
	if path == "" {
		return ParseHistory(ctx, bytes.NewReader(db.History))
	}
	r, err := OpenHistory(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return ParseHistory(ctx, r)
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(r io.Reader) (*product.Catalog, error) {
	var doc catalogYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog yaml")
	}

	products := make([]product.Product, len(doc.Products))
	for i, p := range doc.Products {
		price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
		if err != nil {
			return nil, errors.Wrapf(err, "parse price of product %d", p.ID)
		}
		products[i] = product.Product{
			ID:       p.ID,
			Name:     strings.TrimSpace(p.Name),
			Price:    price,
			Category: strings.TrimSpace(p.Category),
		}
	}

	return product.New(products)
}

type gzFile struct {
	*pgzip.Reader
	f *os.File
}

func (g gzFile) Close() error {
	_ = g.Reader.Close()
	return g.f.Close()
}

// OpenHistory opens a history file, transparently decompressing ".gz" files.
func OpenHistory(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "create gzip reader for %s", path)
	}
	return gzFile{Reader: gz, f: f}, nil
}

// ParseHistory reads "name,quantity" lines. Blank lines and lines starting
// with '#' are skipped. The last comma separates the quantity, so names may
// contain commas.
func ParseHistory(ctx context.Context, r io.Reader) ([]sales.Entry, error) {
	var entries []sales.Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := strings.LastIndexByte(line, ',')
		if sep <= 0 {
			return nil, errors.Errorf("line %d: expected name,quantity", lineNo)
		}
		name := strings.TrimSpace(line[:sep])
		qty, err := decimal.NewFromString(strings.TrimSpace(line[sep+1:]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: parse quantity", lineNo)
		}
		if name == "" || qty.IsNegative() {
			return nil, errors.Errorf("line %d: invalid entry %q", lineNo, line)
		}

		entries = append(entries, sales.Entry{ProductName: name, Quantity: qty})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan history")
	}

	return entries, nil
}
