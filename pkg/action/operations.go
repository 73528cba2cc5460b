package action

// Service types served by the mock gateway.
const (
	ServiceWANIPConnection          = "urn:schemas-upnp-org:service:WANIPConnection:1"
	ServiceWANCommonInterfaceConfig = "urn:schemas-upnp-org:service:WANCommonInterfaceConfig:1"
)

// DataType is a UPnP state variable data type.
type DataType string

// Data types used by the supported actions.
const (
	TypeString  DataType = "string"
	TypeUI2     DataType = "ui2"
	TypeUI4     DataType = "ui4"
	TypeBoolean DataType = "boolean"
)

// Argument names.
const (
	ArgRemoteHost             = "NewRemoteHost"
	ArgExternalPort           = "NewExternalPort"
	ArgProtocol               = "NewProtocol"
	ArgInternalPort           = "NewInternalPort"
	ArgInternalClient         = "NewInternalClient"
	ArgEnabled                = "NewEnabled"
	ArgPortMappingDescription = "NewPortMappingDescription"
	ArgLeaseDuration          = "NewLeaseDuration"
	ArgPortMappingIndex       = "NewPortMappingIndex"

	ArgExternalIPAddress = "NewExternalIPAddress"

	ArgConnectionStatus    = "NewConnectionStatus"
	ArgLastConnectionError = "NewLastConnectionError"
	ArgUptime              = "NewUptime"

	ArgWANAccessType              = "NewWANAccessType"
	ArgLayer1UpstreamMaxBitRate   = "NewLayer1UpstreamMaxBitRate"
	ArgLayer1DownstreamMaxBitRate = "NewLayer1DownstreamMaxBitRate"
	ArgPhysicalLinkStatus         = "NewPhysicalLinkStatus"

	ArgTotalBytesReceived = "NewTotalBytesReceived"
	ArgTotalBytesSent     = "NewTotalBytesSent"
)

// Argument is one formal argument of an operation.
type Argument struct {
	Name          string
	StateVariable string
	Type          DataType
}

// Operation describes a supported action: where it lives and the
// arguments it takes and returns, in schema order.
type Operation struct {
	Name    string
	Service string
	In      []Argument
	Out     []Argument
}

// Input returns the named input argument.
func (o *Operation) Input(name string) (Argument, bool) {
	for _, a := range o.In {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// OutputNames returns the names of the output arguments in schema order.
func (o *Operation) OutputNames() []string {
	names := make([]string, len(o.Out))
	for i, a := range o.Out {
		names[i] = a.Name
	}
	return names
}

var (
	remoteHost     = Argument{ArgRemoteHost, "RemoteHost", TypeString}
	externalPort   = Argument{ArgExternalPort, "ExternalPort", TypeUI2}
	protocol       = Argument{ArgProtocol, "PortMappingProtocol", TypeString}
	internalPort   = Argument{ArgInternalPort, "InternalPort", TypeUI2}
	internalClient = Argument{ArgInternalClient, "InternalClient", TypeString}
	enabled        = Argument{ArgEnabled, "PortMappingEnabled", TypeBoolean}
	description    = Argument{ArgPortMappingDescription, "PortMappingDescription", TypeString}
	leaseDuration  = Argument{ArgLeaseDuration, "PortMappingLeaseDuration", TypeUI4}
)

// Operation names.
const (
	OpGetExternalIPAddress        = "GetExternalIPAddress"
	OpGetStatusInfo               = "GetStatusInfo"
	OpAddPortMapping              = "AddPortMapping"
	OpDeletePortMapping           = "DeletePortMapping"
	OpGetGenericPortMappingEntry  = "GetGenericPortMappingEntry"
	OpGetSpecificPortMappingEntry = "GetSpecificPortMappingEntry"
	OpGetCommonLinkProperties     = "GetCommonLinkProperties"
	OpGetTotalBytesReceived       = "GetTotalBytesReceived"
	OpGetTotalBytesSent           = "GetTotalBytesSent"
)

var catalog = []*Operation{
	{
		Name:    OpGetExternalIPAddress,
		Service: ServiceWANIPConnection,
		Out:     []Argument{{ArgExternalIPAddress, "ExternalIPAddress", TypeString}},
	},
	{
		Name:    OpGetStatusInfo,
		Service: ServiceWANIPConnection,
		Out: []Argument{
			{ArgConnectionStatus, "ConnectionStatus", TypeString},
			{ArgLastConnectionError, "LastConnectionError", TypeString},
			{ArgUptime, "Uptime", TypeUI4},
		},
	},
	{
		Name:    OpAddPortMapping,
		Service: ServiceWANIPConnection,
		In: []Argument{
			remoteHost, externalPort, protocol, internalPort,
			internalClient, enabled, description, leaseDuration,
		},
	},
	{
		Name:    OpDeletePortMapping,
		Service: ServiceWANIPConnection,
		In:      []Argument{remoteHost, externalPort, protocol},
	},
	{
		Name:    OpGetGenericPortMappingEntry,
		Service: ServiceWANIPConnection,
		In:      []Argument{{ArgPortMappingIndex, "PortMappingNumberOfEntries", TypeUI2}},
		Out: []Argument{
			remoteHost, externalPort, protocol, internalPort,
			internalClient, enabled, description, leaseDuration,
		},
	},
	{
		Name:    OpGetSpecificPortMappingEntry,
		Service: ServiceWANIPConnection,
		In:      []Argument{remoteHost, externalPort, protocol},
		Out:     []Argument{internalPort, internalClient, enabled, description, leaseDuration},
	},
	{
		Name:    OpGetCommonLinkProperties,
		Service: ServiceWANCommonInterfaceConfig,
		Out: []Argument{
			{ArgWANAccessType, "WANAccessType", TypeString},
			{ArgLayer1UpstreamMaxBitRate, "Layer1UpstreamMaxBitRate", TypeUI4},
			{ArgLayer1DownstreamMaxBitRate, "Layer1DownstreamMaxBitRate", TypeUI4},
			{ArgPhysicalLinkStatus, "PhysicalLinkStatus", TypeString},
		},
	},
	{
		Name:    OpGetTotalBytesReceived,
		Service: ServiceWANCommonInterfaceConfig,
		Out:     []Argument{{ArgTotalBytesReceived, "TotalBytesReceived", TypeUI4}},
	},
	{
		Name:    OpGetTotalBytesSent,
		Service: ServiceWANCommonInterfaceConfig,
		Out:     []Argument{{ArgTotalBytesSent, "TotalBytesSent", TypeUI4}},
	},
}

var byName = func() map[string]*Operation {
	m := make(map[string]*Operation, len(catalog))
	for _, op := range catalog {
		m[op.Name] = op
	}
	return m
}()

// Lookup returns the operation with the given name.
func Lookup(name string) (*Operation, bool) {
	op, ok := byName[name]
	return op, ok
}

// Operations returns every supported operation in catalog order.
func Operations() []*Operation {
	out := make([]*Operation, len(catalog))
	copy(out, catalog)
	return out
}

// ServiceOperations returns the operations belonging to a service type.
func ServiceOperations(service string) []*Operation {
	var out []*Operation
	for _, op := range catalog {
		if op.Service == service {
			out = append(out, op)
		}
	}
	return out
}
