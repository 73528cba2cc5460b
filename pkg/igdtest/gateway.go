package igdtest

import (
	"context"
	"net"
	"testing"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/engine"
	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/requestlog"
)

// Gateway is a running mock gateway bound to a test. It is stopped
// automatically when the test completes.
type Gateway struct {
	t      testing.TB
	server *engine.Server
}

type options struct {
	configure  []func(*config.ServerConfiguration)
	defaults   bool
	externalIP string
	serverOpts []engine.ServerOption
}

// Option configures New.
type Option func(*options)

// WithConfig adjusts the server configuration before the gateway starts.
func WithConfig(fn func(cfg *config.ServerConfiguration)) Option {
	return func(o *options) {
		o.configure = append(o.configure, fn)
	}
}

// WithDiscovery starts the SSDP responder on a random unicast port.
func WithDiscovery() Option {
	return WithConfig(func(cfg *config.ServerConfiguration) {
		cfg.SSDPEnabled = true
		cfg.SSDPPort = 0
		cfg.SSDPMulticast = false
	})
}

// WithDefaults registers a low-priority working mock for every operation,
// answering GetExternalIPAddress with externalIP. Mocks added later
// override them.
func WithDefaults(externalIP string) Option {
	return func(o *options) {
		o.defaults = true
		o.externalIP = externalIP
	}
}

// WithServerOptions passes options through to engine.NewServer.
func WithServerOptions(opts ...engine.ServerOption) Option {
	return func(o *options) {
		o.serverOpts = append(o.serverOpts, opts...)
	}
}

// New starts a gateway on a random loopback port.
//
// Example:
//
//	gw := igdtest.New(t)
//	gw.On(action.GetExternalIPAddress()).ReplyExternalIP("203.0.113.1")
//	// point the client under test at gw.DescriptionURL()
//	gw.AssertCalled(t, action.OpGetExternalIPAddress)
func New(t testing.TB, opts ...Option) *Gateway {
	t.Helper()

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := config.DefaultServerConfiguration()
	cfg.HTTPPort = 0
	cfg.MaxLogEntries = 1000
	for _, fn := range o.configure {
		fn(cfg)
	}

	serverOpts := append([]engine.ServerOption{engine.WithLogger(logging.Nop())}, o.serverOpts...)
	srv, err := engine.NewServer(cfg, serverOpts...)
	if err != nil {
		t.Fatalf("failed to create gateway: %v", err)
	}
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("failed to start gateway: %v", err)
	}
	t.Cleanup(func() {
		if err := srv.Stop(context.Background()); err != nil {
			t.Errorf("failed to stop gateway: %v", err)
		}
	})

	g := &Gateway{t: t, server: srv}
	if o.defaults {
		if _, err := srv.MockDefaults(o.externalIP); err != nil {
			t.Fatalf("failed to register default mocks: %v", err)
		}
	}
	return g
}

// URL returns the gateway's base URL.
func (g *Gateway) URL() string {
	return g.server.URL()
}

// DescriptionURL returns the root device description URL, the address a
// UPnP client would learn from discovery.
func (g *Gateway) DescriptionURL() string {
	return g.server.DescriptionURL()
}

// ControlURL returns the WANIPConnection control URL.
func (g *Gateway) ControlURL() string {
	return g.server.ControlURL()
}

// SSDPAddr returns the discovery address, nil unless WithDiscovery was
// given.
func (g *Gateway) SSDPAddr() net.Addr {
	return g.server.SSDPAddr()
}

// Server returns the underlying engine.Server for advanced use cases.
// Most tests should not need this.
func (g *Gateway) Server() *engine.Server {
	return g.server
}

// On starts configuring a mock for calls matching a. Finish with one of
// the builder's Reply methods.
func (g *Gateway) On(a action.Action) *Builder {
	return &Builder{gateway: g, action: a}
}

// Requests returns the request log, oldest first.
func (g *Gateway) Requests() []requestlog.Entry {
	return g.server.Requests(nil)
}

// Calls returns the control calls to op, oldest first.
func (g *Gateway) Calls(op string) []requestlog.Entry {
	return g.server.Requests(&requestlog.Filter{Kind: requestlog.KindControl, Operation: op})
}

// Reset clears the request log. Registered mocks stay in place.
func (g *Gateway) Reset() {
	g.server.ClearRequests()
}
