package responder

import "github.com/getmockd/mockigd/pkg/action"

// Values a freshly booted gateway reports when nothing else is configured.
const (
	DefaultConnectionStatus     = "Connected"
	DefaultLastConnectionError  = "ERROR_NONE"
	DefaultWANAccessType        = "Cable"
	DefaultUpstreamMaxBitRate   = 10000000
	DefaultDownstreamMaxBitRate = 100000000
	DefaultPhysicalLinkStatus   = "Up"
	DefaultProtocol             = "TCP"
)

// Defaults returns a success responder that fills every output of op with
// a plausible gateway value. Callers typically override a few fields:
//
//	responder.Defaults(op).WithExternalIP("203.0.113.1")
func Defaults(op *action.Operation) Responder {
	r := Success()
	if op == nil {
		return r
	}
	switch op.Name {
	case action.OpGetExternalIPAddress:
		r = r.WithExternalIP("")
	case action.OpGetStatusInfo:
		r = r.WithStatusInfo(DefaultConnectionStatus, DefaultLastConnectionError, 0)
	case action.OpGetGenericPortMappingEntry, action.OpGetSpecificPortMappingEntry:
		r = r.WithPortMapping(PortMapping{Protocol: DefaultProtocol, Enabled: true})
	case action.OpGetCommonLinkProperties:
		r = r.WithLinkProperties(LinkProperties{
			AccessType:           DefaultWANAccessType,
			UpstreamMaxBitRate:   DefaultUpstreamMaxBitRate,
			DownstreamMaxBitRate: DefaultDownstreamMaxBitRate,
			PhysicalLinkStatus:   DefaultPhysicalLinkStatus,
		})
	case action.OpGetTotalBytesReceived:
		r = r.WithTotalBytesReceived(0)
	case action.OpGetTotalBytesSent:
		r = r.WithTotalBytesSent(0)
	}
	for _, out := range op.Out {
		if _, ok := r.values[out.Name]; !ok {
			r = r.With(out.Name, "")
		}
	}
	return r
}
