// Package responder describes how a matched call is answered and renders
// the reply.
//
// A Responder is one of three kinds:
//
//   - Success carries output values. Rendering emits exactly the
//     operation's declared outputs in schema order; values the schema does
//     not declare are dropped. A Success responder must supply every
//     declared output, which Validate checks before a mock is accepted.
//   - Error carries a UPnP error code and description, rendered as a fault
//     envelope with HTTP status 500. Codes are written verbatim.
//   - Custom wraps a function from the parsed call to a raw Response. Its
//     output is not validated.
//
// Responders are values. Builder methods copy, so a base responder can be
// shared between mocks and goroutines.
//
//	r := responder.Success().WithExternalIP("203.0.113.1")
//	op, _ := action.Lookup(action.OpGetExternalIPAddress)
//	if err := r.Validate(op); err != nil {
//	    return err
//	}
package responder
