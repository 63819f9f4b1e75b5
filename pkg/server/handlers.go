package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Await-0x/RealmsWorld/pkg/cache"
	"github.com/Await-0x/RealmsWorld/pkg/common"
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/types"
	"github.com/Await-0x/RealmsWorld/pkg/view"
)

func (ws *WebServer) GetPage(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := time.Now()
	snapshot, generation, err := ws.getSnapshot(r.PathValue("id"))
	if err != nil {
		return err
	}
	state := query.FromURL(r.URL)
	pr, err := types.PageRequestFromQuery(r.URL.Query())
	if err != nil {
		log.Printf("using default paging for %q: %v", state.Raw(), err)
	}
	id := snapshot.Id()

	cached, hit, err := ws.renderPage(r.Context(), snapshot, generation, state, pr)
	if err != nil {
		return err
	}
	go pageViews.Inc()
	if hit {
		go pageCacheHits.Inc()
	}
	if ws.Tracking != nil {
		go ws.Tracking.TrackPage(sessionId, id, state.Encode(), cached.TotalHits, r.Clone(r.Context()))
	}

	common.JsonHeaders(w, r, "private, stale-while-revalidate=10")
	w.Header().Set("x-duration", fmt.Sprintf("%v", time.Since(s)))
	if hit {
		w.Header().Set("x-cache", "hit")
	} else {
		w.Header().Set("x-cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(cached.Body)
	return err
}

func (ws *WebServer) renderPage(ctx context.Context, snapshot *types.CollectionSnapshot, generation uint64, state query.State, pr *types.PageRequest) (cachedPage, bool, error) {
	id := snapshot.Id()
	return cache.Handle(ctx, ws.Cache, pageCacheKey(id, generation, state), ws.CacheTime, func() (cachedPage, error) {
		page := view.BuildPage(ws.pagePath(id), snapshot, state, ws.Options, pr)
		body, err := json.Marshal(page)
		return cachedPage{Body: body, TotalHits: page.Tabs[0].Trade.Listing.TotalHits}, err
	})
}

func (ws *WebServer) GetQueries(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	if _, _, err := ws.getSnapshot(r.PathValue("id")); err != nil {
		return err
	}
	common.JsonHeaders(w, r, "")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(query.FromURL(r.URL).Queries())
}

// respondToggle navigates a GET to the toggled page and answers anything
// else with the new state.
func (ws *WebServer) respondToggle(w http.ResponseWriter, r *http.Request, sessionId, id string, state query.State, key, value string, enc *json.Encoder) error {
	next, err := state.Toggle(key, value)
	if err != nil {
		return common.BadRequest(err)
	}
	added := next.Has(key, value)
	go countToggle(added)
	if ws.Tracking != nil {
		go ws.Tracking.TrackToggle(sessionId, types.ToggleEvent{
			CollectionId: id,
			Key:          key,
			Value:        value,
			Added:        added,
		})
	}

	href := next.Href(ws.pagePath(id))
	if r.Method == http.MethodGet {
		http.Redirect(w, r, href, http.StatusSeeOther)
		return nil
	}
	common.JsonHeaders(w, r, "no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ToggleResponse{
		Query:   next.Encode(),
		Href:    href,
		Added:   added,
		Queries: next.Queries(),
	})
}

func (ws *WebServer) Toggle(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	snapshot, _, err := ws.getSnapshot(r.PathValue("id"))
	if err != nil {
		return err
	}
	tr, err := types.GetToggleFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	return ws.respondToggle(w, r, sessionId, snapshot.Id(), query.Parse(tr.State), tr.Key, tr.Value, enc)
}

func (ws *WebServer) ToggleRange(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	snapshot, _, err := ws.getSnapshot(r.PathValue("id"))
	if err != nil {
		return err
	}
	rr, err := types.GetRangeFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	lo := query.NewNumberInput(rr.Min, rr.Max, nil)
	hi := query.NewNumberInput(rr.Min, rr.Max, nil)
	lo.Change(rr.Lo)
	hi.Change(rr.Hi)
	value, err := query.RangeValue(lo, hi)
	if err != nil {
		return common.BadRequest(err)
	}
	return ws.respondToggle(w, r, sessionId, snapshot.Id(), query.Parse(rr.State), rr.Key, value, enc)
}

func (ws *WebServer) GetOptions(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	common.JsonHeaders(w, r, "public, max-age=600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ws.Options)
}

func (ws *WebServer) ListCollections(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	all := ws.Store.All()
	result := make([]types.Collection, 0, len(all))
	for _, snapshot := range all {
		result = append(result, snapshot.Collection)
	}
	common.JsonHeaders(w, r, "no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(result)
}

func (ws *WebServer) UpsertCollections(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	var snapshots []types.CollectionSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshots); err != nil {
		return common.BadRequest(err)
	}
	ids := ws.ApplyCollections(r.Context(), snapshots)
	if ws.Publisher != nil && len(ids) > 0 {
		if err := ws.Publisher.PublishCollections(snapshots); err != nil {
			log.Printf("failed to publish collection change: %v", err)
		}
	}
	common.JsonHeaders(w, r, "no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(UpsertResponse{Ids: ids})
}
