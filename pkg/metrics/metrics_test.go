package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	m := New()

	m.ObserveCall("GetExternalIPAddress", "matched", "mock-1", 2*time.Millisecond)
	m.ObserveCall("GetExternalIPAddress", "matched", "mock-1", time.Millisecond)
	m.ObserveCall("AddPortMapping", "no_rule", "", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ControlCallsTotal.WithLabelValues("GetExternalIPAddress", "matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ControlCallsTotal.WithLabelValues("AddPortMapping", "no_rule")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MockHitsTotal.WithLabelValues("mock-1")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.MockHitsTotal), "unmatched calls must not create a mock series")
}

func TestInstancesAreIsolated(t *testing.T) {
	a, b := New(), New()

	a.ObserveDiscovery("ssdp:all")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.DiscoveryResponsesTotal.WithLabelValues("ssdp:all")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.DiscoveryResponsesTotal))
}

func TestHandler(t *testing.T) {
	m := New()
	m.MocksRegistered.Set(3)
	m.ResponderFailuresTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(text, "mockigd_mocks_registered 3"))
	assert.True(t, strings.Contains(text, "mockigd_responder_failures_total 1"))
	assert.True(t, strings.Contains(text, "mockigd_uptime_seconds"))
	assert.True(t, strings.Contains(text, "go_goroutines"))
}

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP("POST", "POST /ctl/IPConn", 200)
	m.ObserveHTTP("POST", "POST /ctl/IPConn", 200)
	m.ObserveHTTP("GET", "unmatched", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "POST /ctl/IPConn", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
