package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/getmockd/mockigd/internal/id"
	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/metrics"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
	"github.com/getmockd/mockigd/pkg/responder"
	"github.com/getmockd/mockigd/pkg/ssdp"
)

// Lifecycle errors.
var (
	ErrAlreadyRunning       = errors.New("server is already running")
	ErrSubscribeUnsupported = errors.New("request log does not support subscriptions")
)

// shutdownTimeout bounds Stop when the caller's context has no deadline.
const shutdownTimeout = 5 * time.Second

// Server is a mock Internet Gateway Device. Each Server owns its mock
// registry, request log and metrics, so several can run in one process.
type Server struct {
	cfg      *config.ServerConfiguration
	registry *mock.Registry
	requests requestlog.Store
	metrics  *metrics.Metrics
	handler  *Handler
	log      *slog.Logger // For operational logging (developer-facing)
	info     DeviceInfo

	mu         sync.RWMutex
	running    bool
	startTime  time.Time
	listener   net.Listener
	httpServer *http.Server
	discovery  *ssdp.Responder
	cancel     context.CancelFunc
	group      *errgroup.Group
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRequestLog replaces the default in-memory request log.
func WithRequestLog(store requestlog.Store) ServerOption {
	return func(s *Server) {
		if store != nil {
			s.requests = store
		}
	}
}

// WithMetrics sets the metrics the server reports to.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithUDN sets the root device's unique device name. By default a fresh
// one is generated per server.
func WithUDN(udn string) ServerOption {
	return func(s *Server) {
		if udn != "" {
			s.info.UDN = udn
		}
	}
}

// NewServer creates a Server with the given configuration. A nil cfg
// uses config.DefaultServerConfiguration.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}

	s := &Server{
		cfg:      cfg,
		registry: mock.NewRegistry(),
		log:      logging.Nop(),
		info: DeviceInfo{
			FriendlyName: cfg.FriendlyName,
			Manufacturer: cfg.Manufacturer,
			ModelName:    cfg.ModelName,
			UDN:          id.UDN(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.requests == nil {
		s.requests = requestlog.NewMemoryStore(cfg.MaxLogEntries)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.registry.SetLogger(logging.Component(s.log, "registry"))

	h, err := NewHandler(cfg, s.registry, s.requests, s.metrics, s.info)
	if err != nil {
		return nil, err
	}
	h.SetLogger(logging.Component(s.log, "handler"))
	s.handler = h
	return s, nil
}

// Start binds the HTTP listener and, when enabled, the SSDP responder,
// then serves in the background until Stop. ctx bounds binding only.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	var lc net.ListenConfig
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.HTTPPort))
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      MetricsMiddleware(s.metrics, s.handler),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	runCtx, cancel := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(runCtx)
	s.cancel = cancel
	s.group = group

	// SSDP failures are not fatal; the gateway stays usable by URL.
	if s.cfg.SSDPEnabled {
		disc, err := ssdp.Listen(ctx, s.ssdpConfig(),
			ssdp.WithLogger(logging.Component(s.log, "ssdp")),
			ssdp.WithRequestLog(s.requests),
			ssdp.WithMetrics(s.metrics))
		if err != nil {
			s.log.Warn("failed to start SSDP responder", "port", s.cfg.SSDPPort, "error", err)
		} else {
			s.discovery = disc
			group.Go(func() error { return disc.Serve(groupCtx) })
		}
	}

	httpServer := s.httpServer
	group.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
			return err
		}
		return nil
	})

	s.running = true
	s.startTime = time.Now()
	s.log.Info("gateway started", "url", s.urlLocked(), "udn", s.info.UDN, "ssdp", s.discovery != nil)
	return nil
}

func (s *Server) ssdpConfig() ssdp.Config {
	host := s.cfg.Host
	if s.cfg.SSDPMulticast {
		host = "0.0.0.0"
	}
	return ssdp.Config{
		Addr:      net.JoinHostPort(host, strconv.Itoa(s.cfg.SSDPPort)),
		Multicast: s.cfg.SSDPMulticast,
		Location:  "http://" + s.listener.Addr().String() + PathRootDescription,
		UDN:       s.info.UDN,
		Server:    s.cfg.ServerHeader,
	}
}

// Stop gracefully shuts down the server. Stopping a stopped server is a
// no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
	}

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	s.cancel()
	if s.discovery != nil {
		if err := s.discovery.Close(); err != nil {
			errs = append(errs, fmt.Errorf("SSDP close: %w", err))
		}
	}
	if err := s.group.Wait(); err != nil {
		errs = append(errs, err)
	}

	s.running = false
	s.discovery = nil
	s.log.Info("gateway stopped")
	return errors.Join(errs...)
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startTime)
}

// Addr returns the bound HTTP address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// URL returns the base URL, e.g. http://127.0.0.1:49152, or "" before
// Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.urlLocked()
}

func (s *Server) urlLocked() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// ControlURL returns the WANIPConnection control URL.
func (s *Server) ControlURL() string {
	return s.URL() + PathWANIPConnectionControl
}

// CommonInterfaceControlURL returns the WANCommonInterfaceConfig control URL.
func (s *Server) CommonInterfaceControlURL() string {
	return s.URL() + PathWANCommonIFCControl
}

// DescriptionURL returns the root device description URL.
func (s *Server) DescriptionURL() string {
	return s.URL() + PathRootDescription
}

// SSDPAddr returns the discovery responder's address, or nil when
// discovery is not running.
func (s *Server) SSDPAddr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.discovery == nil {
		return nil
	}
	return s.discovery.Addr()
}

// UDN returns the root device's unique device name.
func (s *Server) UDN() string {
	return s.info.UDN
}

// Handler returns the HTTP handler, for embedding in another server or in
// httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Mock registers a behavior: calls matching a are answered by resp.
// Mocks may be added while the server is running.
func (s *Server) Mock(a action.Action, resp responder.Responder, opts ...mock.Option) (*mock.Mock, error) {
	m, err := s.registry.Register(a, resp, opts...)
	if err != nil {
		return nil, err
	}
	s.metrics.MocksRegistered.Set(float64(s.registry.Len()))
	return m, nil
}

// DefaultsPriority ranks the baseline mocks below anything registered with
// the default priority.
const DefaultsPriority = -1

// MockDefaults registers a baseline success mock for every supported
// operation so a client sees a working gateway. externalIP, when set,
// answers GetExternalIPAddress.
func (s *Server) MockDefaults(externalIP string) ([]*mock.Mock, error) {
	var out []*mock.Mock
	for _, op := range action.Operations() {
		resp := responder.Defaults(op)
		if op.Name == action.OpGetExternalIPAddress && externalIP != "" {
			resp = resp.WithExternalIP(externalIP)
		}
		m, err := s.Mock(action.For(op.Name), resp, mock.WithPriority(DefaultsPriority))
		if err != nil {
			return out, fmt.Errorf("default mock for %s: %w", op.Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Mocks returns the registered mocks in registration order.
func (s *Server) Mocks() []*mock.Mock {
	return s.registry.Mocks()
}

// Requests returns a snapshot of the request log in order. A nil filter
// returns everything.
func (s *Server) Requests(filter *requestlog.Filter) []requestlog.Entry {
	return s.requests.List(filter)
}

// ClearRequests empties the request log.
func (s *Server) ClearRequests() {
	s.requests.Clear()
}

// Subscribe streams new request log entries. The returned function
// unsubscribes.
func (s *Server) Subscribe() (requestlog.Subscriber, func(), error) {
	sub, ok := s.requests.(requestlog.SubscribableStore)
	if !ok {
		return nil, nil, ErrSubscribeUnsupported
	}
	ch, unsubscribe := sub.Subscribe()
	return ch, unsubscribe, nil
}
