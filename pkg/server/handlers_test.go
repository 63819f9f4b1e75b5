package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Await-0x/RealmsWorld/pkg/cache"
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/storage"
	"github.com/Await-0x/RealmsWorld/pkg/types"
	"github.com/stretchr/testify/assert"
)

type recordingTracker struct {
	mu      sync.Mutex
	toggles []types.ToggleEvent
	done    chan struct{}
}

func (rt *recordingTracker) TrackSession(sessionId string, r *http.Request) {}

func (rt *recordingTracker) TrackPage(sessionId string, collectionId string, query string, totalHits int, r *http.Request) {
}

func (rt *recordingTracker) TrackToggle(sessionId string, event types.ToggleEvent) {
	rt.mu.Lock()
	rt.toggles = append(rt.toggles, event)
	rt.mu.Unlock()
	rt.done <- struct{}{}
}

func (rt *recordingTracker) Close() error { return nil }

type recordingPublisher struct {
	published [][]types.CollectionSnapshot
}

func (p *recordingPublisher) PublishCollections(snapshots []types.CollectionSnapshot) error {
	p.published = append(p.published, snapshots)
	return nil
}

func testServer() *WebServer {
	store := storage.NewStore()
	store.Upsert(types.CollectionSnapshot{
		Collection: types.Collection{Id: "0xABC", Name: "Realms", ContractKind: "erc721", TokenCount: "3"},
		Tokens: []types.Token{
			{TokenId: "1", Attributes: []types.TokenAttribute{{Key: "Background", Value: "Red"}}},
			{TokenId: "2", Attributes: []types.TokenAttribute{{Key: "Background", Value: "Blue"}}},
			{TokenId: "3", Attributes: []types.TokenAttribute{{Key: "Background", Value: "Red"}}},
		},
	})
	return &WebServer{
		Store:     store,
		Cache:     cache.NewLocalCache(time.Minute),
		Options:   query.DefaultOptions(),
		PagePath:  "/collections/",
		CacheTime: time.Minute,
	}
}

func serve(ws *WebServer, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ws.ClientHandler().ServeHTTP(w, r)
	return w
}

func TestGetPage(t *testing.T) {
	ws := testServer()
	w := serve(ws, httptest.NewRequest("GET", "/collections/0xabc?Background=Red&sort=tokenId&direction=desc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "miss", w.Header().Get("x-cache"))

	var page struct {
		Query   string        `json:"query"`
		Queries query.Queries `json:"queries"`
		Tabs    []struct {
			Name  string `json:"name"`
			Trade *struct {
				Chips []struct {
					Label string `json:"label"`
					Href  string `json:"href"`
				} `json:"chips"`
				Listing struct {
					TotalHits int           `json:"totalHits"`
					Tokens    []types.Token `json:"tokens"`
				} `json:"listing"`
			} `json:"trade"`
		} `json:"tabs"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Queries, 3)
	assert.Equal(t, "Background: Red", page.Tabs[0].Trade.Chips[0].Label)
	assert.Equal(t, "/collections/0xabc?sort=tokenId&direction=desc", page.Tabs[0].Trade.Chips[0].Href)
	assert.Equal(t, 2, page.Tabs[0].Trade.Listing.TotalHits)
	assert.Equal(t, "3", page.Tabs[0].Trade.Listing.Tokens[0].TokenId)

	w = serve(ws, httptest.NewRequest("GET", "/collections/0xabc?Background=Red&sort=tokenId&direction=desc", nil))
	assert.Equal(t, "hit", w.Header().Get("x-cache"))
}

func TestGetPageNotFound(t *testing.T) {
	w := serve(testServer(), httptest.NewRequest("GET", "/collections/0xdef", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQueries(t *testing.T) {
	w := serve(testServer(), httptest.NewRequest("GET", "/collections/0xabc/queries?attr=color:blue&sort=price", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var queries query.Queries
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &queries))
	assert.Equal(t, query.Queries{{Key: "attr", Value: "color:blue"}, {Key: "sort", Value: "price"}}, queries)
}

func TestToggleRedirects(t *testing.T) {
	ws := testServer()
	target := "/collections/0xabc/toggle?" + url.Values{
		"state": []string{"sort=price&Background=Red"},
		"key":   []string{"sort"},
		"value": []string{"price"},
	}.Encode()
	w := serve(ws, httptest.NewRequest("GET", target, nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/collections/0xabc?Background=Red", w.Header().Get("Location"))
}

func TestToggleJson(t *testing.T) {
	ws := testServer()
	tracker := &recordingTracker{done: make(chan struct{}, 1)}
	ws.Tracking = tracker
	body := strings.NewReader(`{"query":"","key":"direction","value":"desc"}`)
	r := httptest.NewRequest("POST", "/collections/0xabc/toggle", body)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "2f1c4ad6-4a4c-4b8e-9a55-6d0c3c8f5f10"})
	w := serve(ws, r)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ToggleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "direction=desc", resp.Query)
	assert.True(t, resp.Added)
	assert.Equal(t, "/collections/0xabc?direction=desc", resp.Href)

	<-tracker.done
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	assert.Equal(t, []types.ToggleEvent{{CollectionId: "0xabc", Key: "direction", Value: "desc", Added: true}}, tracker.toggles)
}

func TestToggleEmptyKey(t *testing.T) {
	w := serve(testServer(), httptest.NewRequest("GET", "/collections/0xabc/toggle?state=sort%3Dprice&key=+&value=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleRange(t *testing.T) {
	ws := testServer()
	w := serve(ws, httptest.NewRequest("GET", "/collections/0xabc/range?key=Level&min=1&max=10&lo=2&hi=4", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/collections/0xabc?Level=2-4", w.Header().Get("Location"))

	w = serve(ws, httptest.NewRequest("GET", "/collections/0xabc/range?key=Level&min=1&max=10&lo=2&hi=40", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOptions(t *testing.T) {
	w := serve(testServer(), httptest.NewRequest("GET", "/options", nil))
	var opts query.Options
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, query.DefaultOptions(), opts)
}

func TestUpsertCollectionsInvalidatesCache(t *testing.T) {
	ws := testServer()
	publisher := &recordingPublisher{}
	ws.Publisher = publisher

	serve(ws, httptest.NewRequest("GET", "/collections/0xabc", nil))
	w := serve(ws, httptest.NewRequest("GET", "/collections/0xabc", nil))
	assert.Equal(t, "hit", w.Header().Get("x-cache"))

	body := `[{"collection":{"id":"0xabc","name":"Realms v2"},"tokens":[]}]`
	aw := httptest.NewRecorder()
	ws.AdminHandler().ServeHTTP(aw, httptest.NewRequest("POST", "/collections", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, aw.Code)
	assert.Len(t, publisher.published, 1)

	w = serve(ws, httptest.NewRequest("GET", "/collections/0xabc", nil))
	assert.Equal(t, "miss", w.Header().Get("x-cache"))
	assert.Contains(t, w.Body.String(), "Realms v2")
}

func TestHandleCollectionChange(t *testing.T) {
	ws := testServer()
	err := ws.HandleCollectionChange(t.Context(), []byte(`[{"collection":{"id":"0xdef","name":"Loot"}}]`))
	assert.NoError(t, err)
	_, ok := ws.Store.Get("0xdef")
	assert.True(t, ok)
	assert.Error(t, ws.HandleCollectionChange(t.Context(), []byte(`{`)))
}

func TestRenderOfReplacedSnapshotIsNotServed(t *testing.T) {
	ws := testServer()
	old, generation, err := ws.getSnapshot("0xabc")
	assert.NoError(t, err)

	ws.ApplyCollections(t.Context(), []types.CollectionSnapshot{
		{Collection: types.Collection{Id: "0xabc", Name: "Realms v2"}},
	})

	// a render that read the old snapshot before the upsert finishes now
	pr := &types.PageRequest{PageSize: types.DefaultPageSize}
	_, hit, err := ws.renderPage(t.Context(), old, generation, query.Parse(""), pr)
	assert.NoError(t, err)
	assert.False(t, hit)

	w := serve(ws, httptest.NewRequest("GET", "/collections/0xabc", nil))
	assert.Equal(t, "miss", w.Header().Get("x-cache"))
	assert.Contains(t, w.Body.String(), "Realms v2")
	assert.NotContains(t, w.Body.String(), `"name":"Realms"`)
}
