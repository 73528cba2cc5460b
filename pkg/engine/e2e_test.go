package engine

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/huin/goupnp/dcps/internetgateway1"
	"github.com/huin/goupnp/httpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
	"github.com/getmockd/mockigd/pkg/responder"
)

func ipConnClient(t *testing.T, srv *Server) *internetgateway1.WANIPConnection1 {
	t.Helper()
	loc, err := url.Parse(srv.DescriptionURL())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clients, err := internetgateway1.NewWANIPConnection1ClientsByURLCtx(ctx, loc)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	return clients[0]
}

func commonIFCClient(t *testing.T, srv *Server) *internetgateway1.WANCommonInterfaceConfig1 {
	t.Helper()
	loc, err := url.Parse(srv.DescriptionURL())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clients, err := internetgateway1.NewWANCommonInterfaceConfig1ClientsByURLCtx(ctx, loc)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	return clients[0]
}

func mustMock(t *testing.T, srv *Server, a action.Action, r responder.Responder, opts ...mock.Option) *mock.Mock {
	t.Helper()
	m, err := srv.Mock(a, r, opts...)
	require.NoError(t, err)
	return m
}

func TestE2E_GetExternalIPAddress(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("203.0.113.1"))

	ip, err := ipConnClient(t, srv).GetExternalIPAddress()

	require.NoError(t, err)
	assert.Equal(t, "203.0.113.1", ip)
}

func TestE2E_GetStatusInfo(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.GetStatusInfo(), responder.Success().WithStatusInfo("Connected", "ERROR_NONE", 3600))

	status, lastErr, uptime, err := ipConnClient(t, srv).GetStatusInfo()

	require.NoError(t, err)
	assert.Equal(t, "Connected", status)
	assert.Equal(t, "ERROR_NONE", lastErr)
	assert.EqualValues(t, 3600, uptime)
}

func TestE2E_AddPortMappingConditions(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.AddPortMapping().WithExternalPort(8080).WithProtocol("TCP"), responder.Success())
	mustMock(t, srv, action.AddPortMapping().WithExternalPort(80), responder.Error(718, "ConflictInMappingEntry"))
	client := ipConnClient(t, srv)

	require.NoError(t, client.AddPortMapping("", 8080, "TCP", 8080, "192.168.1.10", true, "web", 0))

	err := client.AddPortMapping("", 80, "TCP", 80, "192.168.1.10", true, "web", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "718")

	err = client.AddPortMapping("", 8080, "UDP", 8080, "192.168.1.10", true, "web", 0)
	require.Error(t, err, "protocol condition does not hold")

	entries := srv.Requests(nil)
	require.Len(t, entries, 3)
	assert.Equal(t, requestlog.OutcomeMatched, entries[0].Outcome)
	assert.Equal(t, "8080", entries[0].Args.Value(action.ArgExternalPort))
	assert.Equal(t, "192.168.1.10", entries[0].Args.Value(action.ArgInternalClient))
	assert.Equal(t, requestlog.OutcomeMatched, entries[1].Outcome)
	assert.Equal(t, requestlog.OutcomeNoRule, entries[2].Outcome)
}

func TestE2E_PortMappingEntries(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	entry := responder.PortMapping{
		ExternalPort:   8080,
		Protocol:       "TCP",
		InternalPort:   80,
		InternalClient: "192.168.1.20",
		Enabled:        true,
		Description:    "mapped",
		LeaseDuration:  600,
	}
	mustMock(t, srv, action.GetGenericPortMappingEntry().WithIndex(0), responder.Success().WithPortMapping(entry))
	mustMock(t, srv, action.GetGenericPortMappingEntry().WithIndex(1), responder.Error(713, "SpecifiedArrayIndexInvalid"))
	mustMock(t, srv, action.GetSpecificPortMappingEntry().WithExternalPort(8080), responder.Success().WithPortMapping(entry))
	mustMock(t, srv, action.DeletePortMapping(), responder.Success())
	client := ipConnClient(t, srv)

	remote, extPort, proto, intPort, intClient, enabled, desc, lease, err := client.GetGenericPortMappingEntry(0)
	require.NoError(t, err)
	assert.Equal(t, "", remote)
	assert.EqualValues(t, 8080, extPort)
	assert.Equal(t, "TCP", proto)
	assert.EqualValues(t, 80, intPort)
	assert.Equal(t, "192.168.1.20", intClient)
	assert.True(t, enabled)
	assert.Equal(t, "mapped", desc)
	assert.EqualValues(t, 600, lease)

	_, _, _, _, _, _, _, _, err = client.GetGenericPortMappingEntry(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "713")

	intPort, intClient, enabled, desc, lease, err = client.GetSpecificPortMappingEntry("", 8080, "TCP")
	require.NoError(t, err)
	assert.EqualValues(t, 80, intPort)
	assert.Equal(t, "192.168.1.20", intClient)
	assert.True(t, enabled)
	assert.Equal(t, "mapped", desc)
	assert.EqualValues(t, 600, lease)

	require.NoError(t, client.DeletePortMapping("", 8080, "TCP"))
}

func TestE2E_CommonInterfaceConfig(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.GetCommonLinkProperties(), responder.Defaults(action.GetCommonLinkProperties().Operation()))
	mustMock(t, srv, action.GetTotalBytesReceived(), responder.Success().WithTotalBytesReceived(1024))
	mustMock(t, srv, action.GetTotalBytesSent(), responder.Success().WithTotalBytesSent(2048))
	client := commonIFCClient(t, srv)

	accessType, up, down, linkStatus, err := client.GetCommonLinkProperties()
	require.NoError(t, err)
	assert.Equal(t, "Cable", accessType)
	assert.EqualValues(t, 10000000, up)
	assert.EqualValues(t, 100000000, down)
	assert.Equal(t, "Up", linkStatus)

	received, err := client.GetTotalBytesReceived()
	require.NoError(t, err)
	assert.EqualValues(t, 1024, received)

	sent, err := client.GetTotalBytesSent()
	require.NoError(t, err)
	assert.EqualValues(t, 2048, sent)

	for _, e := range srv.Requests(nil) {
		assert.Equal(t, PathWANCommonIFCControl, e.Path)
		assert.Equal(t, action.ServiceWANCommonInterfaceConfig, e.ServiceType)
	}
}

func TestE2E_PriorityAndRecency(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("10.0.0.1"), mock.WithPriority(10))
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("10.0.0.2"))
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("10.0.0.3"), mock.WithPriority(10))
	client := ipConnClient(t, srv)

	ip, err := client.GetExternalIPAddress()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.3", ip, "highest priority, then most recent")
}

func TestE2E_UnmatchedCallFails(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)

	_, err := ipConnClient(t, srv).GetExternalIPAddress()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	entries := srv.Requests(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, requestlog.OutcomeNoRule, entries[0].Outcome)
}

func TestE2E_ConcurrentSingleUseMock(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, nil)
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("10.0.0.1"))
	once := mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("10.0.0.2"), mock.Once())
	client := ipConnClient(t, srv)

	results := make([]string, 8)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			ip, err := client.GetExternalIPAddress()
			results[i] = ip
			return err
		})
	}
	require.NoError(t, g.Wait())

	onceHits := 0
	for _, ip := range results {
		if ip == "10.0.0.2" {
			onceHits++
		} else {
			assert.Equal(t, "10.0.0.1", ip)
		}
	}
	assert.Equal(t, 1, onceHits)
	assert.Equal(t, 1, once.Calls())
	assert.True(t, once.Exhausted())
	assert.Len(t, srv.Requests(nil), len(results))
}

func TestE2E_DiscoveryThenControl(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultServerConfiguration()
	cfg.SSDPEnabled = true
	cfg.SSDPPort = 0
	cfg.SSDPMulticast = false
	srv := startTestServer(t, cfg)
	mustMock(t, srv, action.GetExternalIPAddress(), responder.Success().WithExternalIP("198.51.100.4"))

	client, err := httpu.NewHTTPUClient()
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	target := srv.SSDPAddr().String()
	req := &http.Request{
		Method: "M-SEARCH",
		Host:   target,
		URL:    &url.URL{Opaque: "*"},
		Header: http.Header{
			"HOST": []string{target},
			"MX":   []string{"1"},
			"MAN":  []string{`"ssdp:discover"`},
			"ST":   []string{"urn:schemas-upnp-org:device:InternetGatewayDevice:1"},
		},
	}
	responses, err := client.Do(req, 500*time.Millisecond, 1)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	loc, err := responses[0].Location()
	require.NoError(t, err)
	assert.Equal(t, srv.DescriptionURL(), loc.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clients, err := internetgateway1.NewWANIPConnection1ClientsByURLCtx(ctx, loc)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	ip, err := clients[0].GetExternalIPAddress()
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.4", ip)

	assert.Len(t, srv.Requests(&requestlog.Filter{Kind: requestlog.KindDiscovery}), 1)
	assert.Len(t, srv.Requests(&requestlog.Filter{Kind: requestlog.KindControl}), 1)
}
