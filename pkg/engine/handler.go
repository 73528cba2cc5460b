// Core HTTP request handler for the mock gateway.

package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/metrics"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
	"github.com/getmockd/mockigd/pkg/responder"
	"github.com/getmockd/mockigd/pkg/soap"
	"github.com/getmockd/mockigd/pkg/util"
)

// Faults the transport sends on its own account.
var (
	// FaultInvalidAction answers payloads that are not a control call and
	// actions outside the catalog.
	FaultInvalidAction = soap.Fault{Code: 401, Description: "Invalid Action"}

	// FaultActionFailed answers calls whose custom responder failed.
	FaultActionFailed = soap.Fault{Code: 501, Description: "Action Failed"}
)

// Outcome labels for control calls that never reached the registry.
const (
	outcomeParseError = "parse_error"
	outcomeTooLarge   = "too_large"
	outcomeAbandoned  = "abandoned"
)

// maxLoggedPayload caps the rejected payload echoed into debug logs.
const maxLoggedPayload = 512

var errResponderPanic = errors.New("responder panicked")

// Handler serves description documents, control endpoints and the admin
// endpoints of one gateway.
type Handler struct {
	cfg        *config.ServerConfiguration
	registry   *mock.Registry
	requests   requestlog.Store
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	log        *slog.Logger

	// docs maps description paths to their rendered documents.
	docs map[string][]byte

	mux *http.ServeMux
}

// NewHandler creates a Handler. Description documents are rendered once,
// here, from info and the operation catalog.
func NewHandler(cfg *config.ServerConfiguration, registry *mock.Registry, requests requestlog.Store, m *metrics.Metrics, info DeviceInfo) (*Handler, error) {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.New()
	}

	rootDesc, err := BuildRootDescription(info)
	if err != nil {
		return nil, fmt.Errorf("rendering root description: %w", err)
	}
	ipConnSCPD, err := BuildSCPD(action.ServiceWANIPConnection)
	if err != nil {
		return nil, fmt.Errorf("rendering WANIPConnection SCPD: %w", err)
	}
	commonSCPD, err := BuildSCPD(action.ServiceWANCommonInterfaceConfig)
	if err != nil {
		return nil, fmt.Errorf("rendering WANCommonInterfaceConfig SCPD: %w", err)
	}

	h := &Handler{
		cfg:        cfg,
		registry:   registry,
		requests:   requests,
		dispatcher: NewDispatcher(registry, requests),
		metrics:    m,
		log:        logging.Nop(),
		docs: map[string][]byte{
			PathRootDescription:     rootDesc,
			PathWANIPConnectionSCPD: ipConnSCPD,
			PathWANCommonIFCSCPD:    commonSCPD,
		},
		mux: http.NewServeMux(),
	}
	h.routes()
	return h, nil
}

// SetLogger sets the operational logger for the handler.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

func (h *Handler) routes() {
	for path := range h.docs {
		h.mux.HandleFunc("GET "+path, h.handleDocument)
	}
	h.mux.HandleFunc("POST "+PathWANIPConnectionControl, h.handleControl)
	h.mux.HandleFunc("POST "+PathWANCommonIFCControl, h.handleControl)

	h.mux.HandleFunc("GET "+PathAdminRequests, h.handleListRequests)
	h.mux.HandleFunc("DELETE "+PathAdminRequests, h.handleClearRequests)
	h.mux.HandleFunc("GET "+PathAdminMocks, h.handleListMocks)
	h.mux.HandleFunc("GET "+PathAdminHealth, h.handleHealth)
	h.mux.Handle("GET "+PathMetrics, h.metrics.Handler())
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ServerHeader != "" {
		w.Header().Set("Server", h.cfg.ServerHeader)
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.docs[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", soap.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleControl runs one control call: parse, dispatch, render.
func (h *Handler) handleControl(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, h.cfg.MaxBodySize+1))
	if err != nil {
		h.log.Debug("failed to read control body", "path", r.URL.Path, "error", err)
		h.metrics.ObserveCall(metrics.ActionInvalid, outcomeParseError, "", time.Since(start))
		h.writeFault(w, http.StatusBadRequest, FaultInvalidAction)
		return
	}
	if int64(len(body)) > h.cfg.MaxBodySize {
		h.log.Debug("control body too large", "path", r.URL.Path, "limit", h.cfg.MaxBodySize)
		h.metrics.ObserveCall(metrics.ActionInvalid, outcomeTooLarge, "", time.Since(start))
		h.writeFault(w, http.StatusRequestEntityTooLarge, FaultInvalidAction)
		return
	}

	call, err := soap.ParseCall(body)
	if err != nil {
		h.log.Debug("rejected control payload", "path", r.URL.Path, "error", err,
			"payload", util.TruncateBody(string(body), maxLoggedPayload))
		h.metrics.ObserveCall(metrics.ActionInvalid, outcomeParseError, "", time.Since(start))
		h.writeFault(w, http.StatusBadRequest, FaultInvalidAction)
		return
	}
	if header := r.Header.Get("SOAPAction"); header != "" {
		call.SOAPAction = strings.Trim(strings.TrimSpace(header), `"`)
		if serviceType, _, ok := soap.ParseSOAPAction(header); ok && call.ServiceType == "" {
			call.ServiceType = serviceType
		}
	}

	label := call.Action
	if _, known := action.Lookup(call.Action); !known {
		label = metrics.ActionUnknown
	}

	res, err := h.dispatcher.Dispatch(r.Context(), call, CallSource{Path: r.URL.Path, RemoteAddr: r.RemoteAddr})
	if err != nil {
		h.log.Debug("control call abandoned", "action", call.Action, "error", err)
		h.metrics.ObserveCall(label, outcomeAbandoned, "", time.Since(start))
		return
	}

	var (
		resp   *responder.Response
		mockID string
	)
	switch res.Outcome {
	case mock.Matched:
		mockID = res.Mock.ID
		resp, err = h.render(call, res.Mock)
		if err != nil {
			h.metrics.ResponderFailuresTotal.Inc()
			h.log.Error("responder failed", "action", call.Action, "mockId", mockID, "error", err)
			resp, err = responder.FaultResponse(http.StatusInternalServerError, FaultActionFailed)
		}
	case mock.NoRule:
		resp, err = responder.FaultResponse(http.StatusNotImplemented, soap.Fault{
			Code:        h.cfg.DefaultFaultCode,
			Description: h.cfg.DefaultFaultDescription,
		})
	default:
		resp, err = responder.FaultResponse(http.StatusNotFound, FaultInvalidAction)
	}
	if err != nil {
		h.log.Error("failed to render control response", "action", call.Action, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Debug("control call",
		"action", call.Action,
		"outcome", res.Outcome.String(),
		"mockId", mockID,
		"status", resp.Status)
	h.metrics.ObserveCall(label, res.Outcome.String(), mockID, time.Since(start))
	writeResponse(w, resp)
}

// render runs the matched mock's responder. A panicking custom responder
// is reported as an error.
func (h *Handler) render(call *soap.Call, m *mock.Mock) (resp *responder.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, fmt.Errorf("%w: %v", errResponderPanic, p)
		}
	}()
	return m.Responder.Render(call, m.Operation())
}

func (h *Handler) writeFault(w http.ResponseWriter, status int, f soap.Fault) {
	resp, err := responder.FaultResponse(status, f)
	if err != nil {
		h.log.Error("failed to render fault", "error", err)
		http.Error(w, f.Description, status)
		return
	}
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp *responder.Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(resp.Body)
}
