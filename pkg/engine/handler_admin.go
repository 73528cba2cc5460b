// Admin, health and metrics endpoints for the mock gateway.

package engine

import (
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/mockigd/pkg/httputil"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
)

// Admin paths. They live under a prefix no UPnP client uses.
const (
	PathAdminPrefix   = "/__mockigd"
	PathAdminRequests = PathAdminPrefix + "/requests"
	PathAdminMocks    = PathAdminPrefix + "/mocks"
	PathAdminHealth   = PathAdminPrefix + "/health"
	PathMetrics       = "/metrics"
)

// RequestsResponse is the body of GET /__mockigd/requests.
type RequestsResponse struct {
	Requests []requestlog.Entry `json:"requests" yaml:"requests"`
	Count    int                `json:"count" yaml:"count"`
	Total    int                `json:"total" yaml:"total"`
}

// MocksResponse is the body of GET /__mockigd/mocks.
type MocksResponse struct {
	Mocks []mock.Info `json:"mocks" yaml:"mocks"`
	Count int         `json:"count" yaml:"count"`
}

// parseRequestFilter reads a requestlog.Filter from query parameters:
// kind, operation, mockId, outcome, limit and offset.
func parseRequestFilter(r *http.Request) (*requestlog.Filter, error) {
	q := r.URL.Query()
	filter := &requestlog.Filter{
		Kind:      requestlog.Kind(q.Get("kind")),
		Operation: q.Get("operation"),
		MockID:    q.Get("mockId"),
		Outcome:   q.Get("outcome"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, &queryError{param: "limit", value: v}
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, &queryError{param: "offset", value: v}
		}
		filter.Offset = n
	}
	return filter, nil
}

type queryError struct {
	param string
	value string
}

func (e *queryError) Error() string {
	return "invalid " + e.param + ": " + strconv.Quote(e.value)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRequestFilter(r)
	if err != nil {
		httputil.WriteBadRequest(w, r, "invalid_query", err.Error())
		return
	}
	entries := h.requests.List(filter)
	httputil.WriteOK(w, r, RequestsResponse{
		Requests: entries,
		Count:    len(entries),
		Total:    h.requests.Count(),
	})
}

func (h *Handler) handleClearRequests(w http.ResponseWriter, r *http.Request) {
	cleared := h.requests.Count()
	h.requests.Clear()
	h.log.Debug("request log cleared", "entries", cleared)
	httputil.WriteOK(w, r, map[string]int{"cleared": cleared})
}

func (h *Handler) handleListMocks(w http.ResponseWriter, r *http.Request) {
	mocks := h.registry.Mocks()
	infos := make([]mock.Info, 0, len(mocks))
	for _, m := range mocks {
		infos = append(infos, m.Info())
	}
	httputil.WriteOK(w, r, MocksResponse{Mocks: infos, Count: len(infos)})
}

// handleHealth handles the liveness probe endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, r, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"mocks":     h.registry.Len(),
	})
}
