package view

import (
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/types"
)

// Chip is a removable active filter. Href is the page with the pair
// toggled off.
type Chip struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

type MenuItem struct {
	Title  string `json:"title"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
	Href   string `json:"href"`
}

type Menu struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

type AttributeValue struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	Href     string `json:"href"`
}

type Attribute struct {
	Key    string              `json:"key"`
	Kind   types.AttributeKind `json:"kind"`
	Values []AttributeValue    `json:"values"`
	Min    *float64            `json:"minRange,omitempty"`
	Max    *float64            `json:"maxRange,omitempty"`
}

// toggleHref returns path unchanged when the pair cannot be toggled.
func toggleHref(path string, state query.State, key, value string) string {
	next, err := state.Toggle(key, value)
	if err != nil {
		return state.Href(path)
	}
	return next.Href(path)
}

// Chips renders one chip per pair of the query, in query order.
func Chips(path string, state query.State) []Chip {
	queries := state.Queries()
	chips := make([]Chip, 0, len(queries))
	for _, p := range queries {
		chips = append(chips, Chip{
			Key:   p.Key,
			Value: p.Value,
			Label: p.Label(),
			Href:  toggleHref(path, state, p.Key, p.Value),
		})
	}
	return chips
}

func BuildMenu(title, path string, state query.State, options []query.Option) Menu {
	queries := state.Queries()
	items := make([]MenuItem, 0, len(options))
	for _, opt := range options {
		items = append(items, MenuItem{
			Title:  opt.Title,
			Key:    opt.Key,
			Value:  opt.Value,
			Active: queries.Has(opt.Pair()),
			Href:   toggleHref(path, state, opt.Key, opt.Value),
		})
	}
	return Menu{Title: title, Items: items}
}

// Attributes marks every trait value present in the query as selected.
func Attributes(path string, state query.State, summaries []types.AttributeSummary) []Attribute {
	queries := state.Queries()
	result := make([]Attribute, 0, len(summaries))
	for _, s := range summaries {
		values := make([]AttributeValue, 0, len(s.Values))
		for _, v := range s.Values {
			values = append(values, AttributeValue{
				Value:    v.Value,
				Count:    v.Count,
				Selected: queries.Has(query.Pair{Key: s.Key, Value: v.Value}),
				Href:     toggleHref(path, state, s.Key, v.Value),
			})
		}
		result = append(result, Attribute{
			Key:    s.Key,
			Kind:   s.Kind,
			Values: values,
			Min:    s.Min,
			Max:    s.Max,
		})
	}
	return result
}
