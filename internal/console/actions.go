package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/delicia-pos/internal/domain/cart"
	"github.com/xenking/delicia-pos/internal/ticket"
)

func (c *Console) money(d decimal.Decimal) string {
	return c.cfg.Currency + d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (c *Console) registerSale(ctx context.Context) error {
	c.colors.accent.Fprintln(c.out, "\n--- SALE REGISTRATION ---")
	defer c.colors.accent.Fprintln(c.out, "\n--- END OF REGISTRATION ---")

	for {
		raw, err := c.ask(` Enter product id or name ("done" to finish): `)
		if err != nil {
			return err
		}
		if strings.EqualFold(raw, "done") {
			return nil
		}

		p, err := c.sess.Find(ctx, raw)
		if err != nil {
			c.failf("%s", explain(err))
			continue
		}

		rawQty, err := c.ask(fmt.Sprintf("\n Quantity of %s: ", p.Name))
		if err != nil {
			return err
		}
		qty, err := cart.ParseQuantity(rawQty)
		if err != nil {
			c.failf("%s", explain(err))
			continue
		}
		if _, err := c.sess.Add(ctx, p, qty); err != nil {
			c.failf("%s", explain(err))
			continue
		}
		c.okf("%s added (%s x %s = %s)", p.Name, qty, c.money(p.Price), c.money(p.Price.Mul(qty)))

		more, err := c.confirm("\nAdd another product? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (c *Console) confirm(prompt string) (bool, error) {
	for {
		answer, err := c.ask(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			c.failf(`Please answer "y" (yes) or "n" (no).`)
		}
	}
}

func (c *Console) listCatalog() {
	c.colors.section.Fprintln(c.out, "\n=== PRODUCT CATALOG ===")
	for _, p := range c.sess.Catalog().List() {
		fmt.Fprintf(c.out, "ID: %-3d | %-25s | Price: %-8s | Category: %s\n",
			p.ID, p.Name, c.money(p.Price), p.Category)
	}
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
}

func (c *Console) search(ctx context.Context) error {
	raw, err := c.ask("\n Enter product id or name to search: ")
	if err != nil {
		return err
	}
	p, err := c.sess.Find(ctx, raw)
	if err != nil {
		c.failf("%s", explain(err))
		return nil
	}

	c.okf("\n Product found:")
	fmt.Fprintf(c.out, "   Name:     %s\n", c.colors.strong.Sprint(p.Name))
	fmt.Fprintf(c.out, "   Price:    %s\n", c.colors.strong.Sprint(c.money(p.Price)))
	fmt.Fprintf(c.out, "   Category: %s\n", c.colors.strong.Sprint(p.Category))
	return nil
}

func (c *Console) viewCart() {
	lines := c.sess.Lines()
	if len(lines) == 0 {
		c.colors.note.Fprintln(c.out, " The cart is empty.")
		return
	}
	totals := c.sess.Totals()

	c.colors.accent.Fprintln(c.out, "\n=== CURRENT SHOPPING CART ===")
	c.colors.note.Fprintf(c.out, "%-4s%-20s%-7s%s\n", "#", "Product", "Qty", "Subtotal")
	c.colors.accent.Fprintln(c.out, strings.Repeat("-", 40))
	for i, l := range lines {
		fmt.Fprintf(c.out, "%-4d%-20s%-7s%s\n",
			i+1, truncate(l.ProductName, 18), l.Quantity, l.Subtotal().StringFixed(2))
	}
	c.colors.accent.Fprintln(c.out, strings.Repeat("-", 40))
	c.colors.note.Fprintf(c.out, "Total items: %s\n", totals.ItemCount)
	c.colors.note.Fprintf(c.out, "Accumulated amount: %s\n", c.money(totals.Subtotal))
	c.colors.accent.Fprintln(c.out, strings.Repeat("=", 35))
}

func (c *Console) manageCart(ctx context.Context) error {
	for {
		choice, err := c.ask(`
    --- CART MANAGEMENT ---
    A. Add product (register sale)
    E. Remove an item
    V. Empty cart
    R. Back to main menu

    Select an option: `)
		if err != nil {
			return err
		}

		switch strings.ToUpper(choice) {
		case "A":
			return c.registerSale(ctx)
		case "E":
			raw, err := c.ask("\n Enter id or name of the product to REMOVE from the cart: ")
			if err != nil {
				return err
			}
			name, err := c.sess.Remove(ctx, raw)
			if err != nil {
				c.failf("%s", explain(err))
			} else {
				c.okf("Product %s removed from the cart.", name)
			}
			c.viewCart()
		case "V":
			c.sess.Clear(ctx)
			c.okf("Cart emptied.")
			return nil
		case "R":
			return nil
		default:
			c.failf("Invalid option. Enter A, E, V or R.")
		}
	}
}

func (c *Console) showTotals() {
	t := c.sess.Totals()
	if t.IsZero() {
		c.colors.note.Fprintln(c.out, "\nThe cart is empty. There are no totals to calculate.")
		return
	}

	w := c.out
	c.colors.note.Fprintln(w, "\n--- TOTALS BREAKDOWN ---")
	fmt.Fprintf(w, "Items in cart:          %s\n", c.colors.option.Sprint(t.ItemCount))
	fmt.Fprintf(w, "Subtotal (gross):       %s\n", c.colors.note.Sprint(c.money(t.Subtotal)))
	fmt.Fprintf(w, "Discount applied (%s%%): %s\n", t.DiscountPercent.StringFixed(0), c.colors.note.Sprint(c.money(t.DiscountAmount)))
	fmt.Fprintf(w, "Subtotal after discount: %s\n", c.colors.note.Sprint(c.money(t.Taxable())))
	fmt.Fprintf(w, "IGV (18%%):              %s\n", c.colors.note.Sprint(c.money(t.Tax)))
	fmt.Fprintf(w, "TOTAL TO PAY:           %s\n", c.colors.fail.Sprint(c.money(t.GrandTotal)))
	fmt.Fprintln(w, strings.Repeat("=", 40))
}

func (c *Console) printTicket(ctx context.Context) error {
	t, err := c.sess.Checkout(ctx)
	if err != nil {
		c.failf("%s", explain(err))
		return nil
	}

	if c.cfg.TicketFormat == FormatJSON {
		return errors.Wrap(t.WriteJSON(c.out), "print ticket")
	}
	return errors.Wrap(t.WriteText(c.out, ticket.Options{
		Store:    c.cfg.Store,
		Currency: c.cfg.Currency,
	}), "print ticket")
}

func (c *Console) reports(ctx context.Context) error {
	for {
		choice, err := c.ask(fmt.Sprintf(`
    --- REPORTS ---
    1. Top %d most expensive products (catalog)
    2. Best-selling products (session)
    3. Current cart summary
    4. Back to main menu

    Select an option: `, c.cfg.TopN))
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.topExpensive()
		case "2":
			c.mostSold()
		case "3":
			c.viewCart()
		case "4":
			return nil
		default:
			c.failf("Invalid option. Enter 1 to 4.")
		}
	}
}

func (c *Console) topExpensive() {
	c.colors.option.Fprintf(c.out, "\n=== TOP %d MOST EXPENSIVE PRODUCTS ===\n", c.cfg.TopN)
	for _, p := range c.sess.TopExpensive(c.cfg.TopN) {
		fmt.Fprintf(c.out, "- %-25s %s (%s)\n", p.Name, c.money(p.Price), p.Category)
	}
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
}

func (c *Console) mostSold() {
	c.colors.option.Fprintln(c.out, "\n=== BEST-SELLING PRODUCTS (session) ===")
	entries := c.sess.MostSold()
	if len(entries) == 0 {
		c.colors.note.Fprintln(c.out, "No sales recorded yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "- %-25s: %s units\n", e.ProductName, e.Quantity)
	}
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
}
