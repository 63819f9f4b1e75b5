package view

import (
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/types"
)

const (
	TradeTab     = "Trade"
	AnalyticsTab = "Analytics"
	ActivityTab  = "Activity"
)

type Header struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
	Details     []Entry `json:"details"`
	Stats       []Entry `json:"stats"`
	Links       []Entry `json:"links"`
}

type Trade struct {
	Chips      []Chip      `json:"chips"`
	Direction  Menu        `json:"direction"`
	SortBy     Menu        `json:"sortBy"`
	Attributes []Attribute `json:"attributes"`
	Listing    Listing     `json:"listing"`
}

type Activity struct {
	Address string           `json:"address"`
	Events  []types.Activity `json:"events"`
}

// Tab carries exactly one of Trade, Activity or Placeholder.
type Tab struct {
	Name        string    `json:"name"`
	Trade       *Trade    `json:"trade,omitempty"`
	Activity    *Activity `json:"activity,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type Page struct {
	Path    string        `json:"path"`
	Query   string        `json:"query"`
	Queries query.Queries `json:"queries"`
	Header  Header        `json:"header"`
	Tabs    []Tab         `json:"tabs"`
}

func BuildHeader(c *types.Collection) Header {
	return Header{
		Id:          c.Id,
		Name:        c.Name,
		Image:       c.Image,
		Description: c.Description,
		Details:     Details(c),
		Stats:       Stats(c),
		Links:       Links(c),
	}
}

// BuildPage derives the whole page from the snapshot and the query state.
// Nothing is kept between calls.
func BuildPage(path string, snapshot *types.CollectionSnapshot, state query.State, options query.Options, page *types.PageRequest) *Page {
	queries := state.Queries()
	activity := snapshot.Activity
	if activity == nil {
		activity = []types.Activity{}
	}
	return &Page{
		Path:    path,
		Query:   state.Encode(),
		Queries: queries,
		Header:  BuildHeader(&snapshot.Collection),
		Tabs: []Tab{
			{
				Name: TradeTab,
				Trade: &Trade{
					Chips:      Chips(path, state),
					Direction:  BuildMenu("Direction", path, state, options.Direction),
					SortBy:     BuildMenu("Sort By", path, state, options.Sort),
					Attributes: Attributes(path, state, snapshot.Attributes),
					Listing:    BuildListing(snapshot.Tokens, queries, page),
				},
			},
			{Name: AnalyticsTab, Placeholder: "coming soon"},
			{
				Name:     ActivityTab,
				Activity: &Activity{Address: snapshot.Collection.Id, Events: activity},
			},
		},
	}
}
