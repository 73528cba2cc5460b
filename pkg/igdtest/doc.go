// Package igdtest runs a mock Internet Gateway Device inside Go tests.
//
// # Basic Usage
//
// Start a gateway, configure the calls it should answer, point the code
// under test at it and check what it was asked:
//
//	func TestPortForwarding(t *testing.T) {
//	    gw := igdtest.New(t)
//
//	    gw.On(action.GetExternalIPAddress()).ReplyExternalIP("203.0.113.1")
//	    gw.On(action.AddPortMapping().WithExternalPort(8080)).Reply(responder.Success())
//	    gw.On(action.AddPortMapping()).ReplyFault(718, "ConflictInMappingEntry")
//
//	    forwarder := NewForwarder(gw.DescriptionURL())
//	    if err := forwarder.Open(8080); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    gw.AssertCalledWith(t, action.OpAddPortMapping, action.ArgExternalPort, "8080")
//	    gw.AssertNotCalled(t, action.OpDeletePortMapping)
//	}
//
// The gateway stops when the test completes; there is nothing to defer.
//
// # Baseline Behavior
//
// WithDefaults registers a low-priority mock for every operation so the
// gateway behaves like a healthy router. Mocks added with On take
// precedence:
//
//	gw := igdtest.New(t, igdtest.WithDefaults("198.51.100.7"))
//	gw.On(action.GetStatusInfo()).Once().ReplyFault(501, "Action Failed")
//
// # Discovery
//
// WithDiscovery starts the SSDP responder on a random unicast port,
// available from SSDPAddr, so discovery code can be tested without
// multicast.
package igdtest
