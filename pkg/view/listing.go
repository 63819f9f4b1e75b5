package view

import (
	"cmp"
	"math/big"
	"slices"
	"strconv"

	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/types"
)

const (
	SortPrice   = "price"
	SortTokenId = "tokenId"
	SortRarity  = "rarity"

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// keys that never filter tokens
var reservedKeys = map[string]struct{}{
	query.SortKey:      {},
	query.DirectionKey: {},
	"page":             {},
	"size":             {},
}

type Listing struct {
	Tokens    []types.Token `json:"tokens"`
	TotalHits int           `json:"totalHits"`
	Page      int           `json:"page"`
	PageSize  int           `json:"pageSize"`
	Start     int           `json:"start"`
	End       int           `json:"end"`
	Sort      string        `json:"sort,omitempty"`
	Direction string        `json:"direction"`
}

type attributeFilter struct {
	key    string
	values []string
}

// attributeFilters groups the non reserved pairs by key, keys in order of
// first appearance.
func attributeFilters(queries query.Queries) []attributeFilter {
	filters := make([]attributeFilter, 0)
	positions := make(map[string]int)
	for _, p := range queries {
		if _, reserved := reservedKeys[p.Key]; reserved {
			continue
		}
		i, ok := positions[p.Key]
		if !ok {
			i = len(filters)
			positions[p.Key] = i
			filters = append(filters, attributeFilter{key: p.Key})
		}
		filters[i].values = append(filters[i].values, p.Value)
	}
	return filters
}

func valueMatches(filterValue, tokenValue string) bool {
	if filterValue == tokenValue {
		return true
	}
	low, high, ok := query.ParseRange(filterValue)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(tokenValue, 64)
	return err == nil && f >= low && f <= high
}

func (f attributeFilter) matches(t *types.Token) bool {
	for _, tokenValue := range t.AttributeValues(f.key) {
		for _, v := range f.values {
			if valueMatches(v, tokenValue) {
				return true
			}
		}
	}
	return false
}

// FilterTokens keeps tokens matching any value of every filtered key.
func FilterTokens(tokens []types.Token, queries query.Queries) []types.Token {
	filters := attributeFilters(queries)
	result := make([]types.Token, 0, len(tokens))
	for i := range tokens {
		matching := true
		for _, f := range filters {
			if !f.matches(&tokens[i]) {
				matching = false
				break
			}
		}
		if matching {
			result = append(result, tokens[i])
		}
	}
	return result
}

func compareTokenIds(a, b string) int {
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if okA && okB {
		return x.Cmp(y)
	}
	return cmp.Compare(a, b)
}

// SortTokens sorts in place. Unlisted tokens stay last in both directions
// when sorting by price.
func SortTokens(tokens []types.Token, sortBy, direction string) {
	sign := 1
	if direction == DirectionDesc {
		sign = -1
	}
	switch sortBy {
	case SortPrice:
		slices.SortStableFunc(tokens, func(a, b types.Token) int {
			pa, okA := a.Price()
			pb, okB := b.Price()
			switch {
			case okA && !okB:
				return -1
			case !okA && okB:
				return 1
			case !okA && !okB:
				return 0
			}
			return sign * cmp.Compare(pa, pb)
		})
	case SortTokenId:
		slices.SortStableFunc(tokens, func(a, b types.Token) int {
			return sign * compareTokenIds(a.TokenId, b.TokenId)
		})
	case SortRarity:
		slices.SortStableFunc(tokens, func(a, b types.Token) int {
			return sign * cmp.Compare(a.Rarity, b.Rarity)
		})
	}
}

// BuildListing filters, sorts and pages the tokens for the query. The last
// sort and direction pair wins when the query repeats them.
func BuildListing(tokens []types.Token, queries query.Queries, page *types.PageRequest) Listing {
	matching := FilterTokens(tokens, queries)
	sortBy, _ := queries.Last(query.SortKey)
	direction, ok := queries.Last(query.DirectionKey)
	if !ok || direction != DirectionDesc {
		direction = DirectionAsc
	}
	SortTokens(matching, sortBy, direction)

	total := len(matching)
	start := min(page.Start(), total)
	end := min(start+page.PageSize, total)
	return Listing{
		Tokens:    matching[start:end],
		TotalHits: total,
		Page:      page.Page,
		PageSize:  page.PageSize,
		Start:     start,
		End:       end,
		Sort:      sortBy,
		Direction: direction,
	}
}
