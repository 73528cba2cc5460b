package requestlog

import (
	"time"

	"github.com/getmockd/mockigd/pkg/soap"
)

// Kind separates control calls from discovery traffic.
type Kind string

// Entry kinds.
const (
	KindControl   Kind = "control"
	KindDiscovery Kind = "discovery"
)

// Outcome values recorded for control calls.
const (
	OutcomeMatched       = "matched"
	OutcomeNoRule        = "no_rule"
	OutcomeUnknownAction = "unknown_action"
	OutcomeAnswered      = "answered"
)

// Entry records one observed request and how it was resolved.
type Entry struct {
	// Seq is assigned by the store on append and increases by one per entry.
	Seq uint64 `json:"seq" yaml:"seq"`

	// Timestamp is when the entry was recorded.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	Kind Kind `json:"kind" yaml:"kind"`

	// Operation is the action name for control calls, or the search
	// target for discovery requests.
	Operation string `json:"operation" yaml:"operation"`

	// ServiceType is the namespace the call was sent to.
	ServiceType string `json:"serviceType,omitempty" yaml:"serviceType,omitempty"`

	// Args are the call arguments as received.
	Args soap.Args `json:"args,omitempty" yaml:"args,omitempty"`

	// MockID is the ID of the mock that answered, empty when unmatched.
	MockID string `json:"mockId,omitempty" yaml:"mockId,omitempty"`

	// Outcome is one of the Outcome* constants.
	Outcome string `json:"outcome" yaml:"outcome"`

	// Path is the HTTP path for control calls.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// RemoteAddr is the client address.
	RemoteAddr string `json:"remoteAddr,omitempty" yaml:"remoteAddr,omitempty"`
}

// Matched reports whether a mock answered the call.
func (e *Entry) Matched() bool {
	return e.MockID != ""
}

func (e *Entry) clone() Entry {
	c := *e
	c.Args = e.Args.Clone()
	return c
}
