package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rshade/trustboard/internal/cache"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/logging"
)

// Response headers describing where the served data came from.
const (
	OriginHeader   = "X-Trustboard-Origin"
	DegradedHeader = "X-Trustboard-Degraded"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	res := s.leaderboards.Resolve(r.Context(), fetch.LeaderboardKey)
	writeResult(w, r, res)
}

func (s *Server) handleInfluencer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	res := s.influencers.Resolve(r.Context(), username)
	writeResult(w, r, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeError(w, r, http.StatusNotFound, "the requested endpoint does not exist")
}

// writeResult writes a resolved document, or the error mapped to a status.
func writeResult[T any](w http.ResponseWriter, r *http.Request, res fetch.Result[T]) {
	if res.Err != nil {
		logging.FromContext(r.Context()).Warn().
			Str("component", "server").
			Str("key", res.Key).
			Err(res.Err).
			Msg("resolve failed")
		writeError(w, r, statusFor(res.Err), res.Message())
		return
	}
	if res.Data == nil {
		writeError(w, r, http.StatusBadGateway, "empty response")
		return
	}
	w.Header().Set(OriginHeader, string(res.Origin))
	w.Header().Set(DegradedHeader, strconv.FormatBool(res.Degraded()))
	writeJSON(w, http.StatusOK, res.Data)
}

// statusFor maps a resolve error to the HTTP status returned to clients.
func statusFor(err error) int {
	var statusErr *fetch.StatusError
	switch {
	case errors.Is(err, cache.ErrInvalidCacheKey):
		return http.StatusBadRequest
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, fetch.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
