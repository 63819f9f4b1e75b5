package server

import (
	"encoding/json"
	"time"

	"github.com/Await-0x/RealmsWorld/pkg/cache"
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/storage"
	"github.com/Await-0x/RealmsWorld/pkg/types"
)

type CollectionPublisher interface {
	PublishCollections(snapshots []types.CollectionSnapshot) error
}

type WebServer struct {
	Store     *storage.Store
	Cache     *cache.Cache
	Options   query.Options
	Tracking  types.Tracking
	Publisher CollectionPublisher
	// PagePath is the public path collection pages live under, chip and
	// menu links point there.
	PagePath  string
	CacheTime time.Duration
}

type ToggleResponse struct {
	Query   string        `json:"query"`
	Href    string        `json:"href"`
	Added   bool          `json:"added"`
	Queries query.Queries `json:"queries"`
}

type UpsertResponse struct {
	Ids []string `json:"ids"`
}

type cachedPage struct {
	Body      json.RawMessage `json:"body"`
	TotalHits int             `json:"totalHits"`
}
