// Package db provides the embedded reference catalog and sales history.
package db

import _ "embed"

// Products is the reference product catalog in YAML.
//
//go:embed seed/products.yaml
var Products []byte

// History holds the pre-existing sales history as name,quantity lines.
//
//go:embed seed/history.csv
var History []byte
