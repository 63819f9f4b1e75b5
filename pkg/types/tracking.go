package types

import (
	"net/http"
)

type ToggleEvent struct {
	CollectionId string `json:"collection"`
	Key          string `json:"key"`
	Value        string `json:"value"`
	Added        bool   `json:"added"`
}

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackPage(sessionId string, collectionId string, query string, totalHits int, r *http.Request)
	TrackToggle(sessionId string, event ToggleEvent)
	Close() error
}
