package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Await-0x/RealmsWorld/pkg/types"
)

// StatusError is returned by handlers that have not written anything yet
// and want the request answered with Code.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &StatusError{Code: http.StatusBadRequest, Err: err}
}

func NotFound(err error) error {
	return &StatusError{Code: http.StatusNotFound, Err: err}
}

// responseTracker remembers whether the handler started the response.
type responseTracker struct {
	http.ResponseWriter
	started bool
}

func (rt *responseTracker) WriteHeader(code int) {
	rt.started = true
	rt.ResponseWriter.WriteHeader(code)
}

func (rt *responseTracker) Write(b []byte) (int, error) {
	rt.started = true
	return rt.ResponseWriter.Write(b)
}

func (rt *responseTracker) Unwrap() http.ResponseWriter {
	return rt.ResponseWriter
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error

func JsonHandler(trk types.Tracking, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		rt := &responseTracker{ResponseWriter: w}
		err := fn(rt, r, sessionId, json.NewEncoder(rt))
		if err == nil {
			return
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			http.Error(w, statusErr.Error(), statusErr.Code)
			return
		}
		log.Printf("Error handling request: %v", err)
		if !rt.started {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

func JsonHeaders(w http.ResponseWriter, r *http.Request, cacheControl string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}
