package mock

import (
	"sync/atomic"
	"time"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/responder"
)

// Mock is a registered (action, responder) pair with its priority and
// usage accounting. Mocks are created by Registry.Register and never
// removed; an exhausted mock stays visible but no longer matches.
type Mock struct {
	ID        string
	Action    action.Action
	Responder responder.Responder
	Priority  int

	// Index is the registration order within the owning registry.
	Index     uint64
	CreatedAt time.Time

	limit    int
	limited  bool
	consumed atomic.Int64
}

// Option configures a mock at registration.
type Option func(*Mock)

// WithPriority sets the priority. Higher priorities are tried first; the
// default is 0.
func WithPriority(p int) Option {
	return func(m *Mock) {
		m.Priority = p
	}
}

// Times limits how many calls the mock may answer. Zero or negative limits
// are rejected by Register.
func Times(n int) Option {
	return func(m *Mock) {
		m.limit = n
		m.limited = true
	}
}

// Once is Times(1).
func Once() Option {
	return Times(1)
}

// Calls returns how many calls the mock has answered.
func (m *Mock) Calls() int {
	return int(m.consumed.Load())
}

// Limit returns the usage limit and whether one is set.
func (m *Mock) Limit() (int, bool) {
	return m.limit, m.limited
}

// Remaining returns how many more calls the mock may answer. The second
// result is false for unlimited mocks.
func (m *Mock) Remaining() (int, bool) {
	if !m.limited {
		return 0, false
	}
	return max(m.limit-m.Calls(), 0), true
}

// Exhausted reports whether a limited mock has used up its calls.
func (m *Mock) Exhausted() bool {
	return m.limited && m.Calls() >= m.limit
}

// Operation returns the operation the mock's action names, nil for the
// wildcard.
func (m *Mock) Operation() *action.Operation {
	return m.Action.Operation()
}

// Info is a serializable view of a mock.
type Info struct {
	ID        string    `json:"id" yaml:"id"`
	Action    string    `json:"action" yaml:"action"`
	Responder string    `json:"responder" yaml:"responder"`
	Priority  int       `json:"priority" yaml:"priority"`
	Index     uint64    `json:"index" yaml:"index"`
	Limit     *int      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Calls     int       `json:"calls" yaml:"calls"`
	Exhausted bool      `json:"exhausted" yaml:"exhausted"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Info returns the mock's current state.
func (m *Mock) Info() Info {
	info := Info{
		ID:        m.ID,
		Action:    m.Action.String(),
		Responder: m.Responder.Kind().String(),
		Priority:  m.Priority,
		Index:     m.Index,
		Calls:     m.Calls(),
		Exhausted: m.Exhausted(),
		CreatedAt: m.CreatedAt,
	}
	if m.limited {
		limit := m.limit
		info.Limit = &limit
	}
	return info
}
