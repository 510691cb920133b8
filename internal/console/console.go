// Package console implements the interactive menu of the point of sale.
//
// The console only parses input and renders results; every rule lives in
// the session and the packages below it.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xenking/delicia-pos/internal/domain/cart"
	"github.com/xenking/delicia-pos/internal/domain/product"
	"github.com/xenking/delicia-pos/internal/session"
)

const tracerName = "github.com/xenking/delicia-pos/internal/console"

// errInputClosed ends the loop when the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// maxInputLen bounds a single input line. Longer lines are discarded.
const maxInputLen = 4 << 10

// Ticket output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config controls presentation only.
type Config struct {
	Store        string
	Currency     string
	TopN         int
	TicketFormat string
	NoColor      bool
}

type palette struct {
	title   *color.Color
	border  *color.Color
	option  *color.Color
	prompt  *color.Color
	ok      *color.Color
	fail    *color.Color
	note    *color.Color
	accent  *color.Color
	section *color.Color
	strong  *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:   color.New(color.FgGreen, color.Bold),
		border:  color.New(color.FgYellow),
		option:  color.New(color.FgCyan),
		prompt:  color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		note:    color.New(color.FgYellow),
		accent:  color.New(color.FgMagenta),
		section: color.New(color.FgBlue),
		strong:  color.New(color.FgWhite, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{
			p.title, p.border, p.option, p.prompt, p.ok,
			p.fail, p.note, p.accent, p.section, p.strong,
		} {
			c.DisableColor()
		}
	}
	return p
}

// Console drives a session from line-oriented input.
type Console struct {
	sess   *session.Session
	in     *bufio.Reader
	out    io.Writer
	cfg    Config
	colors palette
	tracer trace.Tracer
}

// New creates a Console reading from in and writing to out.
func New(sess *session.Session, in io.Reader, out io.Writer, cfg Config, tp trace.TracerProvider) *Console {
	if cfg.Currency == "" {
		cfg.Currency = "S/"
	}
	if cfg.Store == "" {
		cfg.Store = "DELICIA"
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if cfg.TicketFormat == "" {
		cfg.TicketFormat = FormatText
	}
	return &Console{
		sess:   sess,
		in:     bufio.NewReader(in),
		out:    out,
		cfg:    cfg,
		colors: newPalette(cfg.NoColor),
		tracer: tp.Tracer(tracerName),
	}
}

// Run shows the main menu until the user exits, the input ends or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu()

		choice, err := c.ask(" Select an option: ")
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := c.dispatch(ctx, choice)
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (c *Console) dispatch(ctx context.Context, choice string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "console.menu")
	defer span.End()
	span.SetAttributes(attribute.String("pos.choice", choice))

	switch choice {
	case "1":
		return false, c.registerSale(ctx)
	case "2":
		c.listCatalog()
	case "3":
		return false, c.search(ctx)
	case "4":
		c.viewCart()
		return false, c.manageCart(ctx)
	case "5":
		c.showTotals()
	case "6":
		return false, c.printTicket(ctx)
	case "7":
		return false, c.reports(ctx)
	case "8":
		c.colors.fail.Fprintf(c.out, "\n Thank you for using %s. See you soon!\n", c.cfg.Store)
		return true, nil
	default:
		c.failf("Invalid option, please try again.")
	}
	return false, nil
}

func (c *Console) printMenu() {
	rule := strings.Repeat("=", 43)
	w := c.out
	fmt.Fprintln(w)
	c.colors.border.Fprintln(w, rule)
	c.colors.title.Fprintf(w, "     WELCOME TO %s\n", c.cfg.Store)
	c.colors.border.Fprintln(w, rule)
	for i, label := range []string{
		"Register sale (add)",
		"List products (catalog)",
		"Search product",
		"View cart",
		"Calculate total",
		"Print ticket",
		"Reports",
		"Exit",
	} {
		c.colors.option.Fprintf(w, "%d. ", i+1)
		fmt.Fprintln(w, label)
	}
	c.colors.border.Fprintln(w, rule)
}

// ask prints a prompt and returns the next trimmed input line.
func (c *Console) ask(prompt string) (string, error) {
	c.colors.prompt.Fprint(c.out, prompt)
	line, tooLong, err := c.readLine()
	if err != nil {
		return "", err
	}
	if tooLong {
		c.failf("Input too long, it was ignored.")
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// readLine reads up to the next newline. Bytes past maxInputLen are dropped
// and reported through tooLong so one oversized line never ends the session.
func (c *Console) readLine() (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := c.in.ReadSlice('\n')
		if len(buf)+len(chunk) > maxInputLen {
			tooLong = true
		} else {
			buf = append(buf, chunk...)
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 && !tooLong {
				return "", false, errInputClosed
			}
			return string(buf), tooLong, nil
		case err != nil:
			return "", false, errors.Wrap(err, "read input")
		default:
			return string(buf), tooLong, nil
		}
	}
}

func (c *Console) failf(format string, args ...any) {
	c.colors.fail.Fprintf(c.out, " "+format+"\n", args...)
}

func (c *Console) okf(format string, args ...any) {
	c.colors.ok.Fprintf(c.out, " "+format+"\n", args...)
}

// explain maps domain errors to user messages.
func explain(err error) string {
	switch {
	case errors.Is(err, product.ErrEmptyInput):
		return "Input cannot be empty."
	case errors.Is(err, product.ErrNotFound):
		return "Product not found in the catalog."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Invalid quantity. It must be a number greater than 0."
	case errors.Is(err, cart.ErrNotFound):
		return "Product not found in the cart."
	case errors.Is(err, session.ErrEmptyCart):
		return "There are no products in the cart to print a ticket."
	default:
		return err.Error()
	}
}
