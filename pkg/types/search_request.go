package types

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// PageRequest is the paging part of a collection page query.
type PageRequest struct {
	Page     int `json:"page" schema:"page"`
	PageSize int `json:"pageSize" schema:"size,default:40"`
}

// ToggleRequest asks for the pair (Key, Value) to be toggled in State, the
// raw query of the page the user is on.
type ToggleRequest struct {
	State string `json:"query" schema:"state"`
	Key   string `json:"key" schema:"key"`
	Value string `json:"value" schema:"value"`
}

// RangeRequest toggles a "lo-hi" value for Key, bounded by Min and Max.
type RangeRequest struct {
	State string  `json:"query" schema:"state"`
	Key   string  `json:"key" schema:"key"`
	Min   float64 `json:"min" schema:"min"`
	Max   float64 `json:"max" schema:"max"`
	Lo    string  `json:"lo" schema:"lo"`
	Hi    string  `json:"hi" schema:"hi"`
}

const (
	DefaultPageSize = 40
	MaxPage         = 100
	MaxPageSize     = 200
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (p *PageRequest) Sanitize() {
	p.Page = clamp(p.Page, 0, MaxPage)
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = clamp(p.PageSize, 1, MaxPageSize)
}

func (p *PageRequest) Start() int {
	return p.Page * p.PageSize
}

// PageRequestFromQuery always returns a usable request; a decode error is
// returned alongside the sanitized defaults.
func PageRequestFromQuery(query url.Values) (*PageRequest, error) {
	pr := &PageRequest{PageSize: DefaultPageSize}
	err := decoder.Decode(pr, query)
	pr.Sanitize()
	return pr, err
}

func GetToggleFromRequest(r *http.Request) (*ToggleRequest, error) {
	tr := &ToggleRequest{}
	var err error
	if r.Method == http.MethodGet {
		err = decoder.Decode(tr, r.URL.Query())
	} else {
		err = json.NewDecoder(r.Body).Decode(tr)
	}
	return tr, err
}

func GetRangeFromRequest(r *http.Request) (*RangeRequest, error) {
	rr := &RangeRequest{}
	var err error
	if r.Method == http.MethodGet {
		err = decoder.Decode(rr, r.URL.Query())
	} else {
		err = json.NewDecoder(r.Body).Decode(rr)
	}
	return rr, err
}
