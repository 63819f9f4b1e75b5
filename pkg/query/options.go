package query

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

const (
	SortKey      = "sort"
	DirectionKey = "direction"
)

// Option maps a menu label to the pair it toggles when chosen.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Title string `json:"title"`
}

func (o Option) Pair() Pair {
	return Pair{Key: o.Key, Value: o.Value}
}

type Options struct {
	Sort      []Option `json:"sort"`
	Direction []Option `json:"direction"`
}

func DefaultOptions() Options {
	return Options{
		Sort: []Option{
			{Key: SortKey, Value: "price", Title: "Price"},
			{Key: SortKey, Value: "tokenId", Title: "Token ID"},
			{Key: SortKey, Value: "rarity", Title: "Rarity"},
		},
		Direction: []Option{
			{Key: DirectionKey, Value: "asc", Title: "Ascending"},
			{Key: DirectionKey, Value: "desc", Title: "Descending"},
		},
	}
}

func (o Options) Validate() error {
	for _, table := range [][]Option{o.Sort, o.Direction} {
		for i, opt := range table {
			if opt.Key == "" {
				return fmt.Errorf("option %d (%q): %w", i, opt.Title, ErrEmptyKey)
			}
		}
	}
	return nil
}

// LoadOptions reads option tables from a JSONC file. A table missing from
// the file keeps its default.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return parseOptions(data)
}

func parseOptions(data []byte) (Options, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Options{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var loaded Options
	if err := json.Unmarshal(standardized, &loaded); err != nil {
		return Options{}, fmt.Errorf("invalid JSON: %w", err)
	}
	defaults := DefaultOptions()
	if len(loaded.Sort) == 0 {
		loaded.Sort = defaults.Sort
	}
	if len(loaded.Direction) == 0 {
		loaded.Direction = defaults.Direction
	}
	return loaded, loaded.Validate()
}
