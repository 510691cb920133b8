package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/delicia-pos/internal/console"
)

// Config holds the complete application configuration, loadable from
// environment variables (DELICIA_ prefix), flags, or YAML config files.
// None of these settings change pricing rules.
type Config struct {
	Store        string `default:"DELICIA" usage:"Store name shown in menus and tickets"`
	CatalogFile  string `default:"" usage:"YAML product catalog (embedded catalog when empty)" flag:"catalog-file"`
	HistoryFile  string `default:"" usage:"Historical sales as name,quantity lines, optionally .gz (embedded history when empty)" flag:"history-file"`
	Currency     string `default:"S/" usage:"Currency symbol printed before amounts"`
	TopN         int    `default:"3" usage:"Size of the most expensive products report" flag:"top-n"`
	NoColor      bool   `default:"false" usage:"Disable ANSI colors" flag:"no-color"`
	TicketFormat string `default:"text" usage:"Ticket output format: text or json" flag:"ticket-format"`
}

// LoadConfig loads configuration from environment variables, flags and YAML
// config files, then validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "DELICIA",
		Files:     []string{"delicia.yaml", "/etc/delicia/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that aconfig cannot express.
func (c *Config) Validate() error {
	switch c.TicketFormat {
	case console.FormatText, console.FormatJSON:
	default:
		return errors.Errorf("unknown ticket format %q: use %q or %q",
			c.TicketFormat, console.FormatText, console.FormatJSON)
	}
	if c.TopN < 1 {
		return errors.Errorf("top-n must be at least 1, got %d", c.TopN)
	}
	return nil
}

func (c *Config) consoleConfig() console.Config {
	return console.Config{
		Store:        c.Store,
		Currency:     c.Currency,
		TopN:         c.TopN,
		TicketFormat: c.TicketFormat,
		NoColor:      c.NoColor,
	}
}
