package igdtest

import (
	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/responder"
)

// Builder collects mock options until a Reply method registers the mock.
type Builder struct {
	gateway *Gateway
	action  action.Action
	opts    []mock.Option
}

// Priority sets the mock priority. Higher priorities are tried first.
func (b *Builder) Priority(p int) *Builder {
	b.opts = append(b.opts, mock.WithPriority(p))
	return b
}

// Times limits the mock to n answers.
func (b *Builder) Times(n int) *Builder {
	b.opts = append(b.opts, mock.Times(n))
	return b
}

// Once limits the mock to a single answer.
func (b *Builder) Once() *Builder {
	return b.Times(1)
}

// Reply registers the mock with r and fails the test if it is rejected.
func (b *Builder) Reply(r responder.Responder) *mock.Mock {
	b.gateway.t.Helper()

	m, err := b.gateway.server.Mock(b.action, r, b.opts...)
	if err != nil {
		b.gateway.t.Fatalf("failed to register mock for %s: %v", b.action, err)
	}
	return m
}

// ReplyDefaults answers with plausible values for every output.
func (b *Builder) ReplyDefaults() *mock.Mock {
	b.gateway.t.Helper()
	return b.Reply(responder.Defaults(b.action.Operation()))
}

// ReplyExternalIP answers GetExternalIPAddress with ip.
func (b *Builder) ReplyExternalIP(ip string) *mock.Mock {
	b.gateway.t.Helper()
	return b.Reply(responder.Success().WithExternalIP(ip))
}

// ReplyPortMapping answers a port mapping lookup with entry.
func (b *Builder) ReplyPortMapping(entry responder.PortMapping) *mock.Mock {
	b.gateway.t.Helper()
	return b.Reply(responder.Success().WithPortMapping(entry))
}

// ReplyFault answers with a UPnP fault.
func (b *Builder) ReplyFault(code int, description string) *mock.Mock {
	b.gateway.t.Helper()
	return b.Reply(responder.Error(code, description))
}
