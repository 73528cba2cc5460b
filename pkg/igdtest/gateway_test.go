package igdtest

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/huin/goupnp/dcps/internetgateway1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/responder"
)

// recordingTB captures assertion failures instead of failing the test.
type recordingTB struct {
	testing.TB
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func ipConn(t *testing.T, gw *Gateway) *internetgateway1.WANIPConnection1 {
	t.Helper()
	loc, err := url.Parse(gw.DescriptionURL())
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clients, err := internetgateway1.NewWANIPConnection1ClientsByURLCtx(ctx, loc)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	return clients[0]
}

func TestNew(t *testing.T) {
	gw := New(t)

	assert.NotEmpty(t, gw.URL())
	assert.Equal(t, gw.URL()+"/rootDesc.xml", gw.DescriptionURL())
	assert.Equal(t, gw.URL()+"/ctl/IPConn", gw.ControlURL())
	assert.Nil(t, gw.SSDPAddr())
	assert.True(t, gw.Server().IsRunning())
	assert.Empty(t, gw.Requests())
}

func TestNew_WithConfig(t *testing.T) {
	gw := New(t, WithConfig(func(cfg *config.ServerConfiguration) {
		cfg.DefaultFaultCode = 606
		cfg.DefaultFaultDescription = "Action not authorized"
	}))

	_, err := ipConn(t, gw).GetExternalIPAddress()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "606")
}

func TestNew_WithDiscovery(t *testing.T) {
	gw := New(t, WithDiscovery())
	assert.NotNil(t, gw.SSDPAddr())
}

func TestOn_Replies(t *testing.T) {
	gw := New(t)
	gw.On(action.GetExternalIPAddress()).ReplyExternalIP("203.0.113.1")
	gw.On(action.GetSpecificPortMappingEntry().WithExternalPort(8080)).ReplyPortMapping(responder.PortMapping{
		ExternalPort:   8080,
		Protocol:       "TCP",
		InternalPort:   80,
		InternalClient: "192.168.1.2",
		Enabled:        true,
		Description:    "web",
	})
	gw.On(action.DeletePortMapping()).ReplyFault(714, "NoSuchEntryInArray")
	gw.On(action.GetStatusInfo()).ReplyDefaults()
	client := ipConn(t, gw)

	ip, err := client.GetExternalIPAddress()
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.1", ip)

	intPort, intClient, _, desc, _, err := client.GetSpecificPortMappingEntry("", 8080, "TCP")
	require.NoError(t, err)
	assert.EqualValues(t, 80, intPort)
	assert.Equal(t, "192.168.1.2", intClient)
	assert.Equal(t, "web", desc)

	err = client.DeletePortMapping("", 8080, "TCP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "714")

	status, _, _, err := client.GetStatusInfo()
	require.NoError(t, err)
	assert.Equal(t, responder.DefaultConnectionStatus, status)

	gw.AssertNoUnmatched(t)
}

func TestOn_OnceAndPriority(t *testing.T) {
	gw := New(t)
	fallback := gw.On(action.GetExternalIPAddress()).ReplyExternalIP("10.0.0.1")
	first := gw.On(action.GetExternalIPAddress()).Priority(5).Once().ReplyExternalIP("10.0.0.2")
	client := ipConn(t, gw)

	for _, want := range []string{"10.0.0.2", "10.0.0.1", "10.0.0.1"} {
		ip, err := client.GetExternalIPAddress()
		require.NoError(t, err)
		assert.Equal(t, want, ip)
	}

	AssertMockUsed(t, first, 1)
	AssertMockUsed(t, fallback, 2)
	gw.AssertCalledTimes(t, action.OpGetExternalIPAddress, 3)
}

func TestWithDefaults(t *testing.T) {
	gw := New(t, WithDefaults("198.51.100.7"))
	gw.On(action.GetExternalIPAddress()).Once().ReplyFault(501, "Action Failed")
	client := ipConn(t, gw)

	_, err := client.GetExternalIPAddress()
	require.Error(t, err)

	ip, err := client.GetExternalIPAddress()
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.7", ip)

	require.NoError(t, client.AddPortMapping("", 8080, "TCP", 8080, "192.168.1.2", true, "web", 0))
	gw.AssertNoUnmatched(t)
}

func TestAssertions(t *testing.T) {
	gw := New(t)
	gw.On(action.AddPortMapping()).Reply(responder.Success())
	client := ipConn(t, gw)
	require.NoError(t, client.AddPortMapping("", 8080, "TCP", 80, "192.168.1.2", true, "web", 0))

	t.Run("passing assertions record nothing", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		gw.AssertCalled(rec, action.OpAddPortMapping)
		gw.AssertCalledTimes(rec, action.OpAddPortMapping, 1)
		gw.AssertNotCalled(rec, action.OpDeletePortMapping)
		gw.AssertCalledWith(rec, action.OpAddPortMapping, action.ArgExternalPort, "08080")
		gw.AssertCalledWith(rec, action.OpAddPortMapping, action.ArgEnabled, "true")
		gw.AssertNoUnmatched(rec)
		assert.Empty(t, rec.errors)
	})

	t.Run("failing assertions report", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		gw.AssertCalled(rec, action.OpDeletePortMapping)
		gw.AssertCalledTimes(rec, action.OpAddPortMapping, 2)
		gw.AssertNotCalled(rec, action.OpAddPortMapping)
		gw.AssertCalledWith(rec, action.OpAddPortMapping, action.ArgExternalPort, "9090")
		gw.AssertCalledWith(rec, action.OpDeletePortMapping, action.ArgExternalPort, "9090")
		require.Len(t, rec.errors, 5)
		assert.Contains(t, rec.errors[3], `values seen: ["8080"]`)
		assert.Contains(t, rec.errors[4], "it was not called")
	})

	t.Run("unmatched calls are reported", func(t *testing.T) {
		_, err := client.GetExternalIPAddress()
		require.Error(t, err)

		rec := &recordingTB{TB: t}
		gw.AssertNoUnmatched(rec)
		require.Len(t, rec.errors, 1)
		assert.Contains(t, rec.errors[0], action.OpGetExternalIPAddress)
	})

	t.Run("reset clears the log", func(t *testing.T) {
		gw.Reset()
		assert.Empty(t, gw.Requests())
		gw.AssertNotCalled(t, action.OpAddPortMapping)
	})
}
