// Package requestlog records the calls a mock gateway observed, for tests
// to inspect afterwards.
//
// It is distinct from operational logging (which uses log/slog). Every
// parsed control call is logged with the mock that answered it, or with
// the reason nothing did. Discovery searches are logged too, as a separate
// kind.
//
//	store := requestlog.NewMemoryStore(0)
//	store.Log(&requestlog.Entry{
//	    Kind:      requestlog.KindControl,
//	    Operation: "GetExternalIPAddress",
//	    Outcome:   requestlog.OutcomeMatched,
//	})
//	entries := store.List(&requestlog.Filter{Operation: "GetExternalIPAddress"})
//
// List always returns copies in append order, so callers can hold on to a
// snapshot while new calls keep arriving.
package requestlog
