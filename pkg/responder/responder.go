package responder

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strconv"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/soap"
)

// Registration-time validation failures.
var (
	ErrEmptyResponder  = errors.New("responder is empty")
	ErrMissingOutput   = errors.New("success responder is missing an output argument")
	ErrWildcardSuccess = errors.New("success responder needs a concrete operation")
	ErrNilCustom       = errors.New("custom responder function is nil")
	ErrNilResponse     = errors.New("custom responder returned no response")
)

// ValidationError reports which output a responder fails to provide.
type ValidationError struct {
	Operation string
	Field     string
	Message   string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s.%s: %s", e.Operation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Kind identifies the responder variant.
type Kind int

// Responder kinds. The zero value is invalid.
const (
	KindSuccess Kind = iota + 1
	KindError
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// Response is a rendered reply ready for the transport.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// CustomFunc computes a response from the full call. It may be invoked
// from many goroutines at once.
type CustomFunc func(call *soap.Call) (*Response, error)

// Responder describes how a matched call is answered. Values are
// immutable: builder methods return a modified copy.
type Responder struct {
	kind   Kind
	values map[string]string
	fault  soap.Fault
	custom CustomFunc
}

// Success returns a success responder with no output values yet.
func Success() Responder {
	return Responder{kind: KindSuccess}
}

// Error returns a responder that answers with a UPnP fault. The code is not
// checked against the UPnP error registry.
func Error(code int, description string) Responder {
	return Responder{kind: KindError, fault: soap.Fault{Code: code, Description: description}}
}

// Custom returns a responder whose output is computed by fn and passed to
// the client untouched.
func Custom(fn CustomFunc) Responder {
	return Responder{kind: KindCustom, custom: fn}
}

// Kind returns the responder variant.
func (r Responder) Kind() Kind { return r.kind }

// Fault returns the fault of an error responder.
func (r Responder) Fault() soap.Fault { return r.fault }

// Values returns a copy of the success output values.
func (r Responder) Values() map[string]string {
	return maps.Clone(r.values)
}

// With sets one output value on a success responder.
func (r Responder) With(name, value string) Responder {
	values := make(map[string]string, len(r.values)+1)
	maps.Copy(values, r.values)
	values[name] = value
	r.values = values
	return r
}

// WithValues sets several output values on a success responder.
func (r Responder) WithValues(kv map[string]string) Responder {
	values := make(map[string]string, len(r.values)+len(kv))
	maps.Copy(values, r.values)
	maps.Copy(values, kv)
	r.values = values
	return r
}

// WithExternalIP sets NewExternalIPAddress.
func (r Responder) WithExternalIP(ip string) Responder {
	return r.With(action.ArgExternalIPAddress, ip)
}

// WithStatusInfo sets the GetStatusInfo outputs.
func (r Responder) WithStatusInfo(status, lastError string, uptime uint32) Responder {
	return r.WithValues(map[string]string{
		action.ArgConnectionStatus:    status,
		action.ArgLastConnectionError: lastError,
		action.ArgUptime:              strconv.FormatUint(uint64(uptime), 10),
	})
}

// PortMapping is one port mapping entry as returned by the
// Get*PortMappingEntry actions.
type PortMapping struct {
	RemoteHost     string
	ExternalPort   uint16
	Protocol       string
	InternalPort   uint16
	InternalClient string
	Enabled        bool
	Description    string
	LeaseDuration  uint32
}

// WithPortMapping sets every port mapping output. GetSpecificPortMappingEntry
// only renders the fields it declares.
func (r Responder) WithPortMapping(m PortMapping) Responder {
	return r.WithValues(map[string]string{
		action.ArgRemoteHost:             m.RemoteHost,
		action.ArgExternalPort:           strconv.FormatUint(uint64(m.ExternalPort), 10),
		action.ArgProtocol:               m.Protocol,
		action.ArgInternalPort:           strconv.FormatUint(uint64(m.InternalPort), 10),
		action.ArgInternalClient:         m.InternalClient,
		action.ArgEnabled:                action.FormatBool(m.Enabled),
		action.ArgPortMappingDescription: m.Description,
		action.ArgLeaseDuration:          strconv.FormatUint(uint64(m.LeaseDuration), 10),
	})
}

// LinkProperties holds the GetCommonLinkProperties outputs.
type LinkProperties struct {
	AccessType           string
	UpstreamMaxBitRate   uint32
	DownstreamMaxBitRate uint32
	PhysicalLinkStatus   string
}

// WithLinkProperties sets the GetCommonLinkProperties outputs.
func (r Responder) WithLinkProperties(p LinkProperties) Responder {
	return r.WithValues(map[string]string{
		action.ArgWANAccessType:              p.AccessType,
		action.ArgLayer1UpstreamMaxBitRate:   strconv.FormatUint(uint64(p.UpstreamMaxBitRate), 10),
		action.ArgLayer1DownstreamMaxBitRate: strconv.FormatUint(uint64(p.DownstreamMaxBitRate), 10),
		action.ArgPhysicalLinkStatus:         p.PhysicalLinkStatus,
	})
}

// WithTotalBytesReceived sets NewTotalBytesReceived.
func (r Responder) WithTotalBytesReceived(n uint32) Responder {
	return r.With(action.ArgTotalBytesReceived, strconv.FormatUint(uint64(n), 10))
}

// WithTotalBytesSent sets NewTotalBytesSent.
func (r Responder) WithTotalBytesSent(n uint32) Responder {
	return r.With(action.ArgTotalBytesSent, strconv.FormatUint(uint64(n), 10))
}

// Validate checks that r can answer calls to op. A nil op stands for the
// wildcard action, which success responders cannot serve because there is
// no single output schema to fill.
func (r Responder) Validate(op *action.Operation) error {
	switch r.kind {
	case KindSuccess:
		if op == nil {
			return ErrWildcardSuccess
		}
		for _, out := range op.Out {
			if _, ok := r.values[out.Name]; !ok {
				return &ValidationError{
					Operation: op.Name,
					Field:     out.Name,
					Message:   "output value is required",
					Err:       ErrMissingOutput,
				}
			}
		}
		return nil
	case KindError:
		return nil
	case KindCustom:
		if r.custom == nil {
			return ErrNilCustom
		}
		return nil
	default:
		return ErrEmptyResponder
	}
}

// Render produces the reply to call. op is the operation the matched
// action names and may be nil for the wildcard.
//
// Success output follows op's schema order and drops values the schema
// does not declare. The response element uses the call's namespace when it
// has one. Custom output is returned exactly as the function produced it.
func (r Responder) Render(call *soap.Call, op *action.Operation) (*Response, error) {
	switch r.kind {
	case KindSuccess:
		if op == nil {
			return nil, ErrWildcardSuccess
		}
		args := make(soap.Args, 0, len(op.Out))
		for _, out := range op.Out {
			args = append(args, soap.Arg{Name: out.Name, Value: r.values[out.Name]})
		}
		service := op.Service
		if call != nil && call.ServiceType != "" {
			service = call.ServiceType
		}
		body, err := soap.BuildResponse(op.Name, service, args)
		if err != nil {
			return nil, fmt.Errorf("rendering %s response: %w", op.Name, err)
		}
		return &Response{Status: http.StatusOK, ContentType: soap.ContentType, Body: body}, nil

	case KindError:
		body, err := soap.BuildFault(r.fault)
		if err != nil {
			return nil, fmt.Errorf("rendering fault: %w", err)
		}
		return &Response{Status: http.StatusInternalServerError, ContentType: soap.ContentType, Body: body}, nil

	case KindCustom:
		if r.custom == nil {
			return nil, ErrNilCustom
		}
		resp, err := r.custom(call)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, ErrNilResponse
		}
		return resp, nil

	default:
		return nil, ErrEmptyResponder
	}
}

// FaultResponse renders a fault with an explicit HTTP status.
func FaultResponse(status int, f soap.Fault) (*Response, error) {
	body, err := soap.BuildFault(f)
	if err != nil {
		return nil, fmt.Errorf("rendering fault: %w", err)
	}
	return &Response{Status: status, ContentType: soap.ContentType, Body: body}, nil
}
