package soap

// Namespace URIs and content types used on UPnP control endpoints.
const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	EncodingStyle     = "http://schemas.xmlsoap.org/soap/encoding/"
	ControlNamespace  = "urn:schemas-upnp-org:control-1-0"

	// ContentType is sent on every envelope written by this package.
	ContentType = `text/xml; charset="utf-8"`
)

// Arg is one argument of a control call, in document order.
type Arg struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Args is an ordered argument list.
type Args []Arg

// Get returns the raw value of the first argument with the given name.
func (a Args) Get(name string) (string, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return "", false
}

// Value returns the raw value of the named argument, or "" when absent.
func (a Args) Value(name string) string {
	v, _ := a.Get(name)
	return v
}

// Clone returns a copy that shares no backing array with a.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}
	out := make(Args, len(a))
	copy(out, a)
	return out
}

// Call is a parsed control request.
type Call struct {
	// Action is the local name of the element inside the envelope body.
	Action string

	// ServiceType is the namespace URI of the action element,
	// e.g. urn:schemas-upnp-org:service:WANIPConnection:1.
	ServiceType string

	// SOAPAction is the unquoted SOAPAction header, if the transport saw one.
	SOAPAction string

	// Args holds the action's child elements as raw text, in document order.
	Args Args

	// Raw is the request payload as received.
	Raw []byte
}
