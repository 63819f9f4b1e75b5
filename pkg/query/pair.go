package query

import (
	"net/url"
	"strings"
)

// Pair is one key/value entry of a query string, an active filter or a
// sort selection.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (p Pair) Label() string {
	return p.Key + ": " + p.Value
}

func (p Pair) encode() string {
	return url.QueryEscape(p.Key) + "=" + url.QueryEscape(p.Value)
}

// Queries keeps the pairs in query-string order. Keys may repeat.
type Queries []Pair

func (q Queries) Has(p Pair) bool {
	for _, existing := range q {
		if existing == p {
			return true
		}
	}
	return false
}

// Without returns a copy with every occurrence of p removed and whether
// anything was removed.
func (q Queries) Without(p Pair) (Queries, bool) {
	result := make(Queries, 0, len(q))
	removed := false
	for _, existing := range q {
		if existing == p {
			removed = true
			continue
		}
		result = append(result, existing)
	}
	return result, removed
}

// Values returns the values of key in order of appearance.
func (q Queries) Values(key string) []string {
	values := make([]string, 0)
	for _, p := range q {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Last returns the value of the last occurrence of key.
func (q Queries) Last(key string) (string, bool) {
	for i := len(q) - 1; i >= 0; i-- {
		if q[i].Key == key {
			return q[i].Value, true
		}
	}
	return "", false
}

func (q Queries) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, p.encode())
	}
	return strings.Join(parts, "&")
}
