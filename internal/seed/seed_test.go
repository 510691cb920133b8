package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/delicia-pos/internal/domain/product"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, 10, c.Len())

	p, err := c.FindByID(5)
	require.NoError(t, err)
	assert.Equal(t, "Torta de Chocolate", p.Name)
	assert.Equal(t, "45.00", p.Price.StringFixed(2))
}

func TestDefaultHistory(t *testing.T) {
	h, err := DefaultHistory()
	require.NoError(t, err)
	require.Len(t, h, 3)
	assert.Equal(t, "Pan Baguette", h[0].ProductName)
	assert.Equal(t, "10", h[0].Quantity.String())

	c, err := DefaultCatalog()
	require.NoError(t, err)
	for _, e := range h {
		_, err := c.FindByName(e.ProductName)
		assert.NoError(t, err, "history product %q must exist in catalog", e.ProductName)
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed yaml", input: "products: [\n"},
		{name: "bad price", input: "products:\n  - id: 1\n    name: A\n    price: abc\n"},
		{name: "duplicate id", input: "products:\n  - id: 1\n    name: A\n    price: \"1\"\n  - id: 1\n    name: B\n    price: \"2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}

	_, err := ParseCatalog(strings.NewReader(tests[2].input))
	require.ErrorIs(t, err, product.ErrInvalidCatalog)
}

func TestParseHistory(t *testing.T) {
	input := `
# comment
Pan Baguette, 10

Pie de Limón,2.5
Queso, fresco,3
Zero,0
`
	entries, err := ParseHistory(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "Pan Baguette", entries[0].ProductName)
	assert.Equal(t, "10", entries[0].Quantity.String())
	assert.Equal(t, "Pie de Limón", entries[1].ProductName)
	assert.Equal(t, "2.5", entries[1].Quantity.String())
	assert.Equal(t, "Queso, fresco", entries[2].ProductName)
	assert.True(t, entries[3].Quantity.IsZero())
}

func TestParseHistory_Errors(t *testing.T) {
	for _, input := range []string{
		"no separator",
		",5",
		"Pan,abc",
		"Pan,-1",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseHistory(context.Background(), strings.NewReader(input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestParseHistory_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseHistory(ctx, strings.NewReader("Pan,1\n"))
	require.ErrorIs(t, err, context.Canceled)
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	historyPath := filepath.Join(dir, "history.csv.gz")

	require.NoError(t, os.WriteFile(catalogPath, []byte(`products:
  - id: 4
    name: Alfajor
    price: "1.80"
  - id: 9
    name: Café
    price: "6"
`), 0o600))
	writeGzip(t, historyPath, "Alfajor,7\nCafé,2\n")

	data, err := Load(context.Background(), Sources{CatalogFile: catalogPath, HistoryFile: historyPath})
	require.NoError(t, err)

	assert.Equal(t, 2, data.Catalog.Len())
	require.Len(t, data.History, 2)
	assert.Equal(t, "Alfajor", data.History[0].ProductName)
	assert.Equal(t, "7", data.History[0].Quantity.String())
}

func TestLoad_Defaults(t *testing.T) {
	data, err := Load(context.Background(), Sources{})
	require.NoError(t, err)
	assert.Equal(t, 10, data.Catalog.Len())
	assert.Len(t, data.History, 3)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), Sources{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestOpenHistory_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte("Pan,1\n"), 0o600))

	r, err := OpenHistory(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	entries, err := ParseHistory(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
