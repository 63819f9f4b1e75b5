package query

import (
	"errors"
	"net/url"
	"strings"
)

var ErrEmptyKey = errors.New("query key is empty")

// State is the query-string part of a page URL. It carries nothing but the
// raw query, so everything derived from it (chips, menus, listings) always
// matches the URL the page was requested with.
type State struct {
	raw string
}

// Parse accepts a raw query with or without the leading '?'. Anything after
// a '#' is ignored.
func Parse(rawQuery string) State {
	raw, _, _ := strings.Cut(rawQuery, "#")
	return State{raw: strings.TrimPrefix(raw, "?")}
}

func FromURL(u *url.URL) State {
	if u == nil {
		return State{}
	}
	return Parse(u.RawQuery)
}

func FromQueries(q Queries) State {
	return State{raw: q.Encode()}
}

func (s State) Raw() string {
	return s.raw
}

// Encode returns the canonical form of the query, every pair escaped the
// same way regardless of how the incoming URL spelled it.
func (s State) Encode() string {
	return s.Queries().Encode()
}

func (s State) IsEmpty() bool {
	return len(s.Queries()) == 0
}

// Queries decodes every key/value pair of the query in order. Segments
// that fail to unescape or have a blank key are skipped, so a malformed
// query degrades to fewer pairs instead of an error, and every decoded
// pair can be toggled off again.
func (s State) Queries() Queries {
	result := make(Queries, 0)
	for segment := range strings.SplitSeq(s.raw, "&") {
		if segment == "" || strings.Contains(segment, ";") {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || blankKey(key) {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		result = append(result, Pair{Key: key, Value: value})
	}
	return result
}

func blankKey(key string) bool {
	return strings.TrimSpace(key) == ""
}

func (s State) Has(key, value string) bool {
	return s.Queries().Has(Pair{Key: key, Value: value})
}

func (s State) Values(key string) []string {
	return s.Queries().Values(key)
}

// Toggle removes the exact (key, value) pair when present, every
// occurrence of it, and appends it otherwise. All other pairs keep their
// value and relative order.
func (s State) Toggle(key, value string) (State, error) {
	if blankKey(key) {
		return s, ErrEmptyKey
	}
	pair := Pair{Key: key, Value: value}
	next, removed := s.Queries().Without(pair)
	if !removed {
		next = append(next, pair)
	}
	return FromQueries(next), nil
}

// Href joins path with the encoded state.
func (s State) Href(path string) string {
	encoded := s.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
