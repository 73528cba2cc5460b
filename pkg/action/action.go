package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getmockd/mockigd/pkg/soap"
)

// Errors recorded on an Action by an invalid refinement.
var (
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrUnknownArgument   = errors.New("operation takes no such argument")
	ErrWildcardCondition = errors.New("wildcard action takes no conditions")
	ErrInvalidValue      = errors.New("value does not fit argument type")
)

// Condition requires a call argument to equal Value under the argument's
// data type.
type Condition struct {
	Arg   Argument
	Value string
}

func (c Condition) String() string {
	return c.Arg.Name + "=" + c.Value
}

// Holds reports whether the call satisfies the condition. An argument the
// call does not carry never satisfies it.
func (c Condition) Holds(args soap.Args) bool {
	got, ok := args.Get(c.Arg.Name)
	if !ok {
		return false
	}
	return Equal(c.Arg.Type, c.Value, got)
}

// Action selects the calls a mock answers. The zero value is not useful;
// start from one of the constructors or Any.
//
// Actions are immutable. Every refinement returns a new Action and the
// receiver is left untouched, so a base Action can be shared and refined
// in different directions.
type Action struct {
	op    *Operation
	any   bool
	conds []Condition
	err   error
}

// Any matches every call, whether or not the operation is recognized.
func Any() Action {
	return Action{any: true}
}

// For returns the base Action of a catalog operation by name.
func For(name string) Action {
	op, ok := Lookup(name)
	if !ok {
		return Action{err: fmt.Errorf("%w: %s", ErrUnknownOperation, name)}
	}
	return Action{op: op}
}

// GetExternalIPAddress matches WANIPConnection GetExternalIPAddress calls.
func GetExternalIPAddress() Action { return For(OpGetExternalIPAddress) }

// GetStatusInfo matches WANIPConnection GetStatusInfo calls.
func GetStatusInfo() Action { return For(OpGetStatusInfo) }

// AddPortMapping matches WANIPConnection AddPortMapping calls.
func AddPortMapping() Action { return For(OpAddPortMapping) }

// DeletePortMapping matches WANIPConnection DeletePortMapping calls.
func DeletePortMapping() Action { return For(OpDeletePortMapping) }

// GetGenericPortMappingEntry matches GetGenericPortMappingEntry calls.
func GetGenericPortMappingEntry() Action { return For(OpGetGenericPortMappingEntry) }

// GetSpecificPortMappingEntry matches GetSpecificPortMappingEntry calls.
func GetSpecificPortMappingEntry() Action { return For(OpGetSpecificPortMappingEntry) }

// GetCommonLinkProperties matches WANCommonInterfaceConfig GetCommonLinkProperties calls.
func GetCommonLinkProperties() Action { return For(OpGetCommonLinkProperties) }

// GetTotalBytesReceived matches WANCommonInterfaceConfig GetTotalBytesReceived calls.
func GetTotalBytesReceived() Action { return For(OpGetTotalBytesReceived) }

// GetTotalBytesSent matches WANCommonInterfaceConfig GetTotalBytesSent calls.
func GetTotalBytesSent() Action { return For(OpGetTotalBytesSent) }

// IsAny reports whether a is the wildcard.
func (a Action) IsAny() bool { return a.any }

// Operation returns the matched operation, or nil for the wildcard.
func (a Action) Operation() *Operation { return a.op }

// Name returns the operation name, or "*" for the wildcard.
func (a Action) Name() string {
	switch {
	case a.any:
		return "*"
	case a.op != nil:
		return a.op.Name
	default:
		return ""
	}
}

// Conditions returns a copy of the conditions in the order they were added.
func (a Action) Conditions() []Condition {
	out := make([]Condition, len(a.conds))
	copy(out, a.conds)
	return out
}

// Err returns the first error recorded while building a.
func (a Action) Err() error {
	if a.err == nil && !a.any && a.op == nil {
		return fmt.Errorf("%w: empty action", ErrUnknownOperation)
	}
	return a.err
}

// Where adds a condition on the named input argument.
func (a Action) Where(name, value string) Action {
	if a.err != nil {
		return a
	}
	if a.any {
		return a.withErr(fmt.Errorf("%w: %s", ErrWildcardCondition, name))
	}
	if a.op == nil {
		return a.withErr(fmt.Errorf("%w: empty action", ErrUnknownOperation))
	}
	arg, ok := a.op.Input(name)
	if !ok {
		return a.withErr(fmt.Errorf("%w: %s has no input %s", ErrUnknownArgument, a.op.Name, name))
	}
	if !Valid(arg.Type, value) {
		return a.withErr(fmt.Errorf("%w: %s=%q is not a %s", ErrInvalidValue, name, value, arg.Type))
	}

	conds := make([]Condition, len(a.conds), len(a.conds)+1)
	copy(conds, a.conds)
	return Action{op: a.op, conds: append(conds, Condition{Arg: arg, Value: value})}
}

func (a Action) withErr(err error) Action {
	return Action{op: a.op, any: a.any, conds: a.conds, err: err}
}

// WithRemoteHost requires NewRemoteHost to equal host.
func (a Action) WithRemoteHost(host string) Action { return a.Where(ArgRemoteHost, host) }

// WithExternalPort requires NewExternalPort to equal port.
func (a Action) WithExternalPort(port uint16) Action {
	return a.Where(ArgExternalPort, strconv.FormatUint(uint64(port), 10))
}

// WithProtocol requires NewProtocol to equal proto exactly ("TCP" or "UDP").
func (a Action) WithProtocol(proto string) Action { return a.Where(ArgProtocol, proto) }

// WithInternalPort requires NewInternalPort to equal port.
func (a Action) WithInternalPort(port uint16) Action {
	return a.Where(ArgInternalPort, strconv.FormatUint(uint64(port), 10))
}

// WithInternalClient requires NewInternalClient to equal client.
func (a Action) WithInternalClient(client string) Action { return a.Where(ArgInternalClient, client) }

// WithEnabled requires NewEnabled to carry the given truth value.
func (a Action) WithEnabled(enabled bool) Action { return a.Where(ArgEnabled, FormatBool(enabled)) }

// WithDescription requires NewPortMappingDescription to equal desc.
func (a Action) WithDescription(desc string) Action { return a.Where(ArgPortMappingDescription, desc) }

// WithLeaseDuration requires NewLeaseDuration to equal seconds.
func (a Action) WithLeaseDuration(seconds uint32) Action {
	return a.Where(ArgLeaseDuration, strconv.FormatUint(uint64(seconds), 10))
}

// WithIndex requires NewPortMappingIndex to equal index.
func (a Action) WithIndex(index uint16) Action {
	return a.Where(ArgPortMappingIndex, strconv.FormatUint(uint64(index), 10))
}

// Matches reports whether call is one a answers. Arguments the action
// places no condition on are ignored. An Action carrying a build error
// matches nothing.
func (a Action) Matches(call *soap.Call) bool {
	if call == nil || a.err != nil {
		return false
	}
	if a.any {
		return true
	}
	if a.op == nil || call.Action != a.op.Name {
		return false
	}
	for _, c := range a.conds {
		if !c.Holds(call.Args) {
			return false
		}
	}
	return true
}

func (a Action) String() string {
	if len(a.conds) == 0 {
		return a.Name()
	}
	parts := make([]string, len(a.conds))
	for i, c := range a.conds {
		parts[i] = c.String()
	}
	return a.Name() + "[" + strings.Join(parts, ",") + "]"
}
