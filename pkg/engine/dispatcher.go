package engine

import (
	"context"
	"sync"

	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
	"github.com/getmockd/mockigd/pkg/soap"
)

// CallSource describes where a control call came from, for the request log.
type CallSource struct {
	Path       string
	RemoteAddr string
}

// Dispatcher resolves control calls and records them. Resolution and the
// log append run as one unit, so the log lists calls in the order the
// registry charged them.
type Dispatcher struct {
	mu       sync.Mutex
	registry *mock.Registry
	log      requestlog.Logger
}

// NewDispatcher creates a dispatcher over a registry and a request log.
func NewDispatcher(registry *mock.Registry, log requestlog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch resolves call and appends it to the request log.
//
// If ctx is already done nothing happens and ctx.Err() is returned: no
// mock is charged and nothing is logged. Once started, dispatch always
// completes.
func (d *Dispatcher) Dispatch(ctx context.Context, call *soap.Call, src CallSource) (mock.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return mock.Resolution{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.registry.Resolve(call)

	entry := &requestlog.Entry{
		Kind:        requestlog.KindControl,
		Operation:   call.Action,
		ServiceType: call.ServiceType,
		Args:        call.Args.Clone(),
		Outcome:     res.Outcome.String(),
		Path:        src.Path,
		RemoteAddr:  src.RemoteAddr,
	}
	if res.Mock != nil {
		entry.MockID = res.Mock.ID
	}
	if d.log != nil {
		d.log.Log(entry)
	}
	return res, nil
}
