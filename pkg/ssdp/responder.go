package ssdp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/ipv4"

	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/metrics"
	"github.com/getmockd/mockigd/pkg/requestlog"
)

// Multicast group and port of SSDP.
const (
	MulticastAddr = "239.255.255.250:1900"
	DefaultPort   = 1900
	DefaultMaxAge = 1800
)

// Search targets.
const (
	TargetAll        = "ssdp:all"
	TargetRootDevice = "upnp:rootdevice"

	// DeviceInternetGateway is the device type announced in responses to
	// ssdp:all.
	DeviceInternetGateway = "urn:schemas-upnp-org:device:InternetGatewayDevice:1"
)

// maxPacketSize bounds a single datagram read.
const maxPacketSize = 2048

var multicastGroup = net.IPv4(239, 255, 255, 250)

// answeredTargets are matched against the ST header by substring, so any
// version of the device or service type is answered.
var answeredTargets = []string{
	TargetAll,
	TargetRootDevice,
	"urn:schemas-upnp-org:device:InternetGatewayDevice",
	"urn:schemas-upnp-org:service:WANIPConnection",
}

// Config describes what the responder advertises.
type Config struct {
	// Addr is the UDP listen address, e.g. "0.0.0.0:1900" or "127.0.0.1:0".
	Addr string

	// Multicast joins 239.255.255.250 on every multicast-capable
	// interface. Failure to join is logged, not fatal.
	Multicast bool

	// Location is the URL of the root device description.
	Location string

	// UDN is the root device's unique device name ("uuid:...").
	UDN string

	// Server is the SERVER header value.
	Server string

	// MaxAge is the CACHE-CONTROL max-age in seconds. 0 means DefaultMaxAge.
	MaxAge int
}

// Responder answers M-SEARCH requests for the gateway.
type Responder struct {
	cfg      Config
	conn     net.PacketConn
	log      *slog.Logger
	requests requestlog.Logger
	metrics  *metrics.Metrics

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Responder.
type Option func(*Responder)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Responder) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRequestLog records every answered search in log.
func WithRequestLog(log requestlog.Logger) Option {
	return func(r *Responder) {
		r.requests = log
	}
}

// WithMetrics counts answered searches.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Responder) {
		r.metrics = m
	}
}

// Listen binds the responder's socket. Call Serve to start answering.
func Listen(ctx context.Context, cfg Config, opts ...Option) (*Responder, error) {
	if cfg.Location == "" {
		return nil, errors.New("ssdp: location is required")
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}

	lc := net.ListenConfig{Control: reuseControl}
	conn, err := lc.ListenPacket(ctx, "udp4", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("ssdp: listen on %s: %w", cfg.Addr, err)
	}

	r := &Responder{
		cfg:  cfg,
		conn: conn,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if cfg.Multicast {
		r.joinGroup()
	}
	return r, nil
}

// joinGroup joins the SSDP group on every up, multicast-capable interface.
func (r *Responder) joinGroup() {
	pc := ipv4.NewPacketConn(r.conn)
	group := &net.UDPAddr{IP: multicastGroup}

	ifaces, err := net.Interfaces()
	if err != nil {
		r.log.Warn("failed to list interfaces", "error", err)
		return
	}
	joined := 0
	for i := range ifaces {
		ifi := &ifaces[i]
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		if err := pc.JoinGroup(ifi, group); err != nil {
			r.log.Debug("failed to join multicast group", "interface", ifi.Name, "error", err)
			continue
		}
		joined++
	}
	if joined == 0 {
		r.log.Warn("not joined to the SSDP multicast group on any interface; only unicast searches will be answered")
	}
}

// Addr returns the bound UDP address.
func (r *Responder) Addr() net.Addr {
	return r.conn.LocalAddr()
}

// Serve answers searches until ctx is done or Close is called. It returns
// nil after a Close.
func (r *Responder) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = r.Close() })
	defer stop()

	r.log.Info("SSDP responder listening", "addr", r.Addr().String(), "location", r.cfg.Location)

	buf := make([]byte, maxPacketSize)
	for {
		n, src, err := r.conn.ReadFrom(buf)
		if err != nil {
			if r.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("ssdp: read: %w", err)
		}
		r.handle(buf[:n], src)
	}
}

func (r *Responder) handle(data []byte, src net.Addr) {
	req, err := ParseRequest(data)
	if err != nil {
		r.log.Debug("ignoring datagram", "from", src.String(), "error", err)
		return
	}
	if !req.IsSearch() || !Answers(req.ST) {
		return
	}

	st := responseTarget(req.ST)
	if _, err := r.conn.WriteTo(r.response(st), src); err != nil {
		r.log.Warn("failed to send M-SEARCH response", "to", src.String(), "error", err)
		return
	}

	r.log.Debug("answered M-SEARCH", "st", req.ST, "from", src.String())
	if r.metrics != nil {
		r.metrics.ObserveDiscovery(st)
	}
	if r.requests != nil {
		r.requests.Log(&requestlog.Entry{
			Kind:       requestlog.KindDiscovery,
			Operation:  req.ST,
			Outcome:    requestlog.OutcomeAnswered,
			RemoteAddr: src.String(),
		})
	}
}

// Answers reports whether a search for st gets a response.
func Answers(st string) bool {
	for _, target := range answeredTargets {
		if strings.Contains(st, target) {
			return true
		}
	}
	return false
}

// responseTarget is the ST echoed back: the requested target, except that
// ssdp:all is answered as the gateway device type.
func responseTarget(st string) string {
	if strings.Contains(st, TargetAll) {
		return DeviceInternetGateway
	}
	return st
}

func (r *Responder) response(st string) []byte {
	var b strings.Builder
	b.WriteString("HTTP/1.1 200 OK\r\n")
	fmt.Fprintf(&b, "CACHE-CONTROL: max-age=%d\r\n", r.cfg.MaxAge)
	fmt.Fprintf(&b, "ST: %s\r\n", st)
	fmt.Fprintf(&b, "USN: %s::%s\r\n", r.cfg.UDN, st)
	b.WriteString("EXT:\r\n")
	fmt.Fprintf(&b, "SERVER: %s\r\n", r.cfg.Server)
	fmt.Fprintf(&b, "LOCATION: %s\r\n", r.cfg.Location)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// Close stops the responder. It is safe to call more than once.
func (r *Responder) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		r.closeErr = r.conn.Close()
	})
	return r.closeErr
}
