package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestQueriesPreserveOrder(t *testing.T) {
	state := Parse("attr=color:blue&sort=price")
	want := Queries{
		{Key: "attr", Value: "color:blue"},
		{Key: "sort", Value: "price"},
	}
	if diff := cmp.Diff(want, state.Queries()); diff != "" {
		t.Errorf("Queries() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueriesIsIdempotent(t *testing.T) {
	state := Parse("?Background=Red&Background=Blue&page=2")
	first := state.Queries()
	second := state.Queries()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second read differs (-first +second):\n%s", diff)
	}
	assert.Len(t, first, 3)
}

func TestQueriesEmpty(t *testing.T) {
	for _, raw := range []string{"", "?", "&&", "#frag"} {
		assert.Empty(t, Parse(raw).Queries(), "raw %q", raw)
	}
	assert.Empty(t, FromURL(nil).Queries())
}

func TestQueriesSkipMalformedSegments(t *testing.T) {
	state := Parse("a=%zz&=orphan&b=ok&c;d=1&flag")
	want := Queries{
		{Key: "b", Value: "ok"},
		{Key: "flag", Value: ""},
	}
	if diff := cmp.Diff(want, state.Queries()); diff != "" {
		t.Errorf("Queries() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueriesSkipBlankKeys(t *testing.T) {
	state := Parse("%20=x&a=1&+=y&%09=z")
	assert.Equal(t, Queries{{Key: "a", Value: "1"}}, state.Queries())
	assert.Equal(t, "a=1", state.Encode())

	// every pair that decodes can be toggled off
	for _, p := range state.Queries() {
		next, err := state.Toggle(p.Key, p.Value)
		assert.NoError(t, err)
		assert.False(t, next.Has(p.Key, p.Value))
	}
}

func TestQueriesDecodeEscapes(t *testing.T) {
	u, err := url.Parse("https://realms.world/collection/0xabc?Eyes=Laser+Eyes&Trait=a%26b")
	assert.NoError(t, err)
	want := Queries{
		{Key: "Eyes", Value: "Laser Eyes"},
		{Key: "Trait", Value: "a&b"},
	}
	if diff := cmp.Diff(want, FromURL(u).Queries()); diff != "" {
		t.Errorf("Queries() mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleAddsAbsentPair(t *testing.T) {
	state := Parse("attr=color:blue&sort=price")
	next, err := state.Toggle("Background", "Red")
	assert.NoError(t, err)
	want := Queries{
		{Key: "attr", Value: "color:blue"},
		{Key: "sort", Value: "price"},
		{Key: "Background", Value: "Red"},
	}
	if diff := cmp.Diff(want, next.Queries()); diff != "" {
		t.Errorf("Toggle() mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleRemovesPresentPair(t *testing.T) {
	state := Parse("attr=color:blue&sort=price&direction=desc")
	next, err := state.Toggle("sort", "price")
	assert.NoError(t, err)
	assert.Empty(t, next.Values("sort"))
	want := Queries{
		{Key: "attr", Value: "color:blue"},
		{Key: "direction", Value: "desc"},
	}
	if diff := cmp.Diff(want, next.Queries()); diff != "" {
		t.Errorf("Toggle() mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	cases := []struct {
		raw        string
		key, value string
	}{
		{"", "direction", "desc"},
		{"attr=color:blue&sort=price", "sort", "tokenId"},
		{"attr=color:blue", "price", "0.5-2"},
		{"a=1&b=2&c=3", "b", "2"},
	}
	for _, c := range cases {
		start := Parse(c.raw)
		once, err := start.Toggle(c.key, c.value)
		assert.NoError(t, err)
		twice, err := once.Toggle(c.key, c.value)
		assert.NoError(t, err)
		if c.raw == "a=1&b=2&c=3" {
			// b=2 was present, so the round trip appends it at the end
			assert.Equal(t, Queries{{"a", "1"}, {"c", "3"}, {"b", "2"}}, twice.Queries())
			continue
		}
		if diff := cmp.Diff(start.Queries(), twice.Queries()); diff != "" {
			t.Errorf("%q toggled twice (-start +end):\n%s", c.raw, diff)
		}
	}
}

func TestToggleOnEmptyQuery(t *testing.T) {
	next, err := Parse("").Toggle("direction", "desc")
	assert.NoError(t, err)
	assert.Equal(t, "direction=desc", next.Encode())
}

func TestToggleKeepsSameKeyOtherValues(t *testing.T) {
	state := Parse("Eyes=Laser&Eyes=Closed")
	next, err := state.Toggle("Eyes", "Laser")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Closed"}, next.Values("Eyes"))
}

func TestToggleRemovesDuplicates(t *testing.T) {
	state := Parse("sort=price&page=1&sort=price")
	next, err := state.Toggle("sort", "price")
	assert.NoError(t, err)
	assert.Equal(t, "page=1", next.Encode())
}

func TestToggleRejectsEmptyKey(t *testing.T) {
	state := Parse("sort=price")
	for _, key := range []string{"", " ", "\t"} {
		next, err := state.Toggle(key, "x")
		assert.True(t, errors.Is(err, ErrEmptyKey))
		assert.Equal(t, state, next)
	}
}

func TestHref(t *testing.T) {
	assert.Equal(t, "/collections/0xabc", Parse("").Href("/collections/0xabc"))
	next, _ := Parse("").Toggle("Eyes", "Laser Eyes")
	assert.Equal(t, "/collections/0xabc?Eyes=Laser+Eyes", next.Href("/collections/0xabc"))
}

func TestPairLabel(t *testing.T) {
	assert.Equal(t, "attr: color:blue", Pair{Key: "attr", Value: "color:blue"}.Label())
}
