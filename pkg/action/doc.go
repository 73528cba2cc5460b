// Package action models the gateway operations a mock can answer.
//
// The catalog (Lookup, Operations) lists every supported operation with
// its service type and its input and output arguments in schema order.
// An Action selects calls: either one operation, optionally narrowed by
// conditions on its input arguments, or the wildcard Any.
//
//	a := action.AddPortMapping().
//	    WithExternalPort(8080).
//	    WithProtocol("TCP")
//
// Conditions compose conjunctively. Port, index and lease values compare
// numerically and NewEnabled by truth value, so a condition on port 80
// matches a call sending "80" or "080". Other arguments compare as exact
// strings.
//
// Refining with an argument the operation does not take records an error
// on the Action instead of panicking. Check Err, or let registration
// reject it.
package action
