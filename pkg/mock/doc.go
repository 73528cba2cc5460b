// Package mock stores configured gateway behaviors and resolves which one
// answers an incoming call.
//
// A Registry is append-only. Register validates the action and responder up
// front (unknown arguments, missing success outputs, zero usage limits) so
// that a bad mock fails at setup rather than at request time. Resolve is
// the single point that selects a mock and charges its usage counter:
//
//	reg := mock.NewRegistry()
//	reg.Register(action.GetExternalIPAddress(),
//	    responder.Success().WithExternalIP("203.0.113.1"))
//	reg.Register(action.AddPortMapping().WithExternalPort(80),
//	    responder.Error(718, "ConflictInMappingEntry"),
//	    mock.WithPriority(10), mock.Once())
//
// Resolution order is priority (highest first), then registration index
// (latest first). When nothing matches, the outcome tells catalog
// operations without a covering mock (NoRule) apart from operations the
// catalog does not know (UnknownAction).
package mock
