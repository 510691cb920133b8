package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/domain/sales"
	"github.com/xenking/delicia-pos/internal/session"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func run(t *testing.T, cfg Config, input ...string) (string, *session.Session) {
	t.Helper()
	catalog, err := product.New([]product.Product{
		{ID: 1, Name: "Pan Baguette", Price: d("2.50"), Category: "Panadería"},
		{ID: 3, Name: "Queso Fresco", Price: d("12.00"), Category: "Lácteos"},
		{ID: 5, Name: "Torta de Chocolate", Price: d("45.00"), Category: "Pastelería"},
	})
	require.NoError(t, err)
	sess, err := session.New(catalog, session.Options{
		History: []sales.Entry{{ProductName: "Queso Fresco", Quantity: d("5")}},
	})
	require.NoError(t, err)

	cfg.NoColor = true
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	c := New(sess, in, &out, cfg, noop.NewTracerProvider())

	require.NoError(t, c.Run(context.Background()))
	return out.String(), sess
}

func TestRun_Exit(t *testing.T) {
	out, _ := run(t, Config{}, "8")
	assert.Contains(t, out, "WELCOME TO DELICIA")
	assert.Contains(t, out, "Thank you for using DELICIA")
}

func TestRun_InputClosed(t *testing.T) {
	out, _ := run(t, Config{})
	assert.Contains(t, out, "Select an option")
}

func TestRun_InvalidOption(t *testing.T) {
	out, _ := run(t, Config{}, "9", "8")
	assert.Contains(t, out, "Invalid option, please try again.")
}

func TestRegisterSaleAndTotals(t *testing.T) {
	out, sess := run(t, Config{},
		"1", "croissant", "pan", "abc", "pan", "40", "maybe", "n",
		"5", "8",
	)

	assert.Contains(t, out, "Product not found in the catalog.")
	assert.Contains(t, out, "Invalid quantity. It must be a number greater than 0.")
	assert.Contains(t, out, `Please answer "y" (yes) or "n" (no).`)
	assert.Contains(t, out, "Pan Baguette added (40 x S/2.50 = S/100.00)")
	assert.Contains(t, out, "Discount applied (15%): S/15.00")
	assert.Contains(t, out, "IGV (18%):              S/15.30")
	assert.Contains(t, out, "TOTAL TO PAY:           S/100.30")

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.True(t, d("40").Equal(lines[0].Quantity))
}

func TestRegisterSale_Done(t *testing.T) {
	out, sess := run(t, Config{}, "1", "DONE", "8")
	assert.Contains(t, out, "END OF REGISTRATION")
	assert.Empty(t, sess.Lines())
}

func TestShowTotals_EmptyCart(t *testing.T) {
	out, _ := run(t, Config{}, "5", "8")
	assert.Contains(t, out, "The cart is empty. There are no totals to calculate.")
}

func TestManageCart(t *testing.T) {
	out, sess := run(t, Config{},
		"1", "pan", "2", "y", "queso", "1", "n",
		"4", "E", "croissant", "E", "queso", "R",
		"8",
	)

	assert.Contains(t, out, "=== CURRENT SHOPPING CART ===")
	assert.Contains(t, out, "Product not found in the cart.")
	assert.Contains(t, out, "Product Queso Fresco removed from the cart.")

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Pan Baguette", lines[0].ProductName)

	sold := sess.MostSold()
	require.Len(t, sold, 2)
	assert.Equal(t, "Queso Fresco", sold[0].ProductName)
	assert.True(t, d("6").Equal(sold[0].Quantity))
}

func TestManageCart_Empty(t *testing.T) {
	out, sess := run(t, Config{},
		"1", "torta", "1", "n",
		"4", "V",
		"4", "R",
		"8",
	)
	assert.Contains(t, out, "Cart emptied.")
	assert.Contains(t, out, " The cart is empty.")
	assert.Empty(t, sess.Lines())
}

func TestPrintTicket(t *testing.T) {
	out, _ := run(t, Config{Store: "PANADERIA"}, "6", "1", "queso", "1", "n", "6", "8")

	assert.Contains(t, out, "There are no products in the cart to print a ticket.")
	assert.Contains(t, out, "PURCHASE SUMMARY - PANADERIA")
	assert.Contains(t, out, "14.16")
}

func TestPrintTicket_JSON(t *testing.T) {
	out, _ := run(t, Config{TicketFormat: FormatJSON}, "1", "queso", "2", "n", "6", "8")

	assert.Contains(t, out, `"Queso Fresco"`)
	assert.Contains(t, out, `"26.90"`)
	assert.NotContains(t, out, "PURCHASE SUMMARY")
}

func TestReports(t *testing.T) {
	out, _ := run(t, Config{TopN: 2},
		"7", "1", "2", "3", "x", "4",
		"8",
	)

	assert.Contains(t, out, "=== TOP 2 MOST EXPENSIVE PRODUCTS ===")
	assert.Contains(t, out, "Torta de Chocolate")
	assert.Regexp(t, `Queso Fresco\s+: 5 units`, out)
	assert.Contains(t, out, "Invalid option. Enter 1 to 4.")

	top := out[strings.Index(out, "=== TOP 2"):]
	top = top[:strings.Index(top, "BEST-SELLING")]
	assert.NotContains(t, top, "Pan Baguette")
}

func TestReports_NoSales(t *testing.T) {
	catalog, err := product.New([]product.Product{{ID: 1, Name: "Pan", Price: d("1")}})
	require.NoError(t, err)
	sess, err := session.New(catalog, session.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	c := New(sess, strings.NewReader("7\n2\n4\n8\n"), &out, Config{NoColor: true}, noop.NewTracerProvider())
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "No sales recorded yet.")
}

func TestRun_Canceled(t *testing.T) {
	catalog, err := product.New([]product.Product{{ID: 1, Name: "Pan", Price: d("1")}})
	require.NoError(t, err)
	sess, err := session.New(catalog, session.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(sess, strings.NewReader("8\n"), &bytes.Buffer{}, Config{NoColor: true}, noop.NewTracerProvider())
	require.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestRun_OversizedLine(t *testing.T) {
	long := strings.Repeat("x", 70000)
	out, _ := run(t, Config{}, "3", long, "8")

	assert.Contains(t, out, "Input too long, it was ignored.")
	assert.Contains(t, out, "Input cannot be empty.")
	assert.Contains(t, out, "Thank you for using DELICIA")
	assert.NotContains(t, out, long[:maxInputLen])
}

func TestRun_HugeQuantityRejected(t *testing.T) {
	out, sess := run(t, Config{}, "1", "pan", "1e300000000", "done", "8")

	assert.Contains(t, out, "Invalid quantity. It must be a number greater than 0.")
	assert.Empty(t, sess.Lines())
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	catalog, err := product.New([]product.Product{{ID: 1, Name: "Pan", Price: d("1")}})
	require.NoError(t, err)
	sess, err := session.New(catalog, session.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	c := New(sess, strings.NewReader("8"), &out, Config{NoColor: true}, noop.NewTracerProvider())
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Thank you for using DELICIA")
}
