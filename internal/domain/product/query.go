package product

import (
	"strconv"
	"strings"
)

// QueryKind tells how a query was written by the user.
type QueryKind int

const (
	// ByName matches a case-insensitive substring of the product name.
	ByName QueryKind = iota
	// ByID matches the product id first and falls back to the name.
	ByID
)

func (k QueryKind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByName:
		return "name"
	default:
		return "unknown"
	}
}

// Query is a resolved user lookup. Text always holds the trimmed lowercase
// input so that id queries can fall back to a name match.
type Query struct {
	Kind QueryKind
	ID   int
	Text string
}

// ParseQuery turns raw user input into a Query.
func ParseQuery(raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, ErrEmptyInput
	}
	q := Query{Kind: ByName, Text: strings.ToLower(text)}
	if id, err := strconv.Atoi(text); err == nil {
		q.Kind = ByID
		q.ID = id
	}
	return q, nil
}

// IDQuery builds a query for an exact product id.
func IDQuery(id int) Query {
	return Query{Kind: ByID, ID: id, Text: strconv.Itoa(id)}
}

// Matches reports whether a product with the given id and name satisfies
// the query. Either an id or a name match is enough.
func (q Query) Matches(id int, name string) bool {
	if q.Kind == ByID && id == q.ID {
		return true
	}
	return q.Text != "" && strings.Contains(strings.ToLower(name), q.Text)
}
