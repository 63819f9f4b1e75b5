package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Await-0x/RealmsWorld/pkg/common"
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/types"
)

func (ws *WebServer) pagePath(id string) string {
	return strings.TrimSuffix(ws.PagePath, "/") + "/" + id
}

func pageCachePrefix(id string) string {
	return "page:" + id + "@"
}

// pageCacheKey carries the snapshot generation, a render of a replaced
// snapshot lands under a key no later request asks for.
func pageCacheKey(id string, generation uint64, state query.State) string {
	return pageCachePrefix(id) + strconv.FormatUint(generation, 10) + "?" + state.Encode()
}

func (ws *WebServer) getSnapshot(id string) (*types.CollectionSnapshot, uint64, error) {
	snapshot, generation, ok := ws.Store.Lookup(id)
	if !ok {
		return nil, 0, common.NotFound(fmt.Errorf("collection %s not found", id))
	}
	return snapshot, generation, nil
}

// ApplyCollections stores the snapshots and drops their cached pages.
func (ws *WebServer) ApplyCollections(ctx context.Context, snapshots []types.CollectionSnapshot) []string {
	ids := ws.Store.Upsert(snapshots...)
	totalCollections.Set(float64(ws.Store.Len()))
	if ws.Cache != nil {
		for _, id := range ids {
			if err := ws.Cache.Invalidate(ctx, pageCachePrefix(id)); err != nil {
				log.Printf("failed to invalidate cache for %s: %v", id, err)
			}
		}
	}
	return ids
}

// HandleCollectionChange applies a change message from the feed.
func (ws *WebServer) HandleCollectionChange(ctx context.Context, body []byte) error {
	var snapshots []types.CollectionSnapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return fmt.Errorf("decode collection change: %w", err)
	}
	ids := ws.ApplyCollections(ctx, snapshots)
	log.Printf("got collection changes %d, applied %d", len(snapshots), len(ids))
	return nil
}

func (ws *WebServer) ClientHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("OPTIONS /", common.RespondToOptions)
	mux.HandleFunc("GET /collections/{id}", common.JsonHandler(ws.Tracking, ws.GetPage))
	mux.HandleFunc("GET /collections/{id}/queries", common.JsonHandler(ws.Tracking, ws.GetQueries))
	mux.HandleFunc("GET /collections/{id}/toggle", common.JsonHandler(ws.Tracking, ws.Toggle))
	mux.HandleFunc("POST /collections/{id}/toggle", common.JsonHandler(ws.Tracking, ws.Toggle))
	mux.HandleFunc("GET /collections/{id}/range", common.JsonHandler(ws.Tracking, ws.ToggleRange))
	mux.HandleFunc("POST /collections/{id}/range", common.JsonHandler(ws.Tracking, ws.ToggleRange))
	mux.HandleFunc("GET /options", common.JsonHandler(ws.Tracking, ws.GetOptions))
	return mux
}

func (ws *WebServer) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections", common.JsonHandler(nil, ws.ListCollections))
	mux.HandleFunc("POST /collections", common.JsonHandler(nil, ws.UpsertCollections))
	return mux
}
