package mock

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getmockd/mockigd/internal/id"
	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/responder"
	"github.com/getmockd/mockigd/pkg/soap"
)

// Registration errors.
var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidResponder = errors.New("invalid responder")
	ErrZeroUsageLimit   = errors.New("usage limit must be at least 1")
)

// Outcome is the result class of a resolution.
type Outcome int

// Resolution outcomes.
const (
	// Matched means a mock was selected and charged one use.
	Matched Outcome = iota
	// NoRule means the operation is in the catalog but no eligible mock
	// accepts these arguments.
	NoRule
	// UnknownAction means the operation is not in the catalog and no
	// wildcard mock took it.
	UnknownAction
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case NoRule:
		return "no_rule"
	case UnknownAction:
		return "unknown_action"
	default:
		return "unknown"
	}
}

// Resolution is the result of Registry.Resolve.
type Resolution struct {
	Mock    *Mock
	Outcome Outcome
}

// Registry stores mocks in registration order and picks the one that
// answers each call.
type Registry struct {
	mu        sync.Mutex
	mocks     []*Mock
	nextIndex uint64
	log       *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{log: logging.Nop()}
}

// SetLogger sets the operational logger.
func (r *Registry) SetLogger(log *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log != nil {
		r.log = log
	}
}

// Register validates and stores a mock. A mock that fails validation never
// enters the registry.
func (r *Registry) Register(a action.Action, resp responder.Responder, opts ...Option) (*Mock, error) {
	if err := a.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if err := resp.Validate(a.Operation()); err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrInvalidResponder, a.Name(), err)
	}

	m := &Mock{
		ID:        id.UUID(),
		Action:    a,
		Responder: resp,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limited && m.limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroUsageLimit, m.limit)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextIndex++
	m.Index = r.nextIndex
	r.mocks = append(r.mocks, m)

	r.log.Debug("mock registered",
		"id", m.ID,
		"action", a.String(),
		"responder", resp.Kind().String(),
		"priority", m.Priority,
		"index", m.Index)
	return m, nil
}

// Resolve selects the mock that answers call and charges it one use.
//
// Among mocks that still have uses left and whose action matches, the one
// with the highest priority wins; equal priorities go to the most recently
// registered. Selection and charging happen under one lock, so a mock
// limited to n uses answers at most n calls however many arrive at once.
func (r *Registry) Resolve(call *soap.Call) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *Mock
	for _, m := range r.mocks {
		if m.Exhausted() || !m.Action.Matches(call) {
			continue
		}
		if best == nil || m.Priority > best.Priority ||
			(m.Priority == best.Priority && m.Index > best.Index) {
			best = m
		}
	}

	if best != nil {
		best.consumed.Add(1)
		return Resolution{Mock: best, Outcome: Matched}
	}
	if call != nil {
		if _, ok := action.Lookup(call.Action); ok {
			return Resolution{Outcome: NoRule}
		}
	}
	return Resolution{Outcome: UnknownAction}
}

// Get returns the mock with the given ID, or nil.
func (r *Registry) Get(id string) *Mock {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mocks {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Mocks returns all mocks in registration order, exhausted ones included.
func (r *Registry) Mocks() []*Mock {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Mock, len(r.mocks))
	copy(out, r.mocks)
	return out
}

// Len returns the number of registered mocks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mocks)
}
