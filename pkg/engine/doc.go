// Package engine serves a mock UPnP Internet Gateway Device over HTTP.
//
// A Server binds the description documents (rootDesc.xml, WANIPCn.xml,
// WANCommonIFC1.xml), the WANIPConnection and WANCommonInterfaceConfig
// control endpoints, a small admin API under /__mockigd and Prometheus
// metrics. With discovery enabled it also runs an SSDP responder.
//
// # Control calls
//
// Each POST to a control endpoint is parsed into a soap.Call, resolved
// against the mock registry and recorded in the request log by the
// Dispatcher, then answered:
//
//	parse failure              400, fault 401 Invalid Action
//	unknown action             404, fault 401 Invalid Action
//	known action, no mock      501, configurable default fault
//	matched                    the mock's responder output
//	custom responder failure   500, fault 501 Action Failed
//
// # Basic Usage
//
//	srv, err := engine.NewServer(nil)
//	if err != nil {
//	    return err
//	}
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//	defer srv.Stop(context.Background())
//
//	srv.Mock(action.GetExternalIPAddress(),
//	    responder.Success().WithExternalIP("203.0.113.1"))
//
//	// point the client under test at srv.DescriptionURL()
package engine
