package requestlog

// Logger is the minimal interface for recording entries. The HTTP control
// path and the discovery responder both write through it.
type Logger interface {
	Log(entry *Entry)
}

// Store defines the interface for request history storage.
// Store embeds Logger, so any Store implementation can be used where Logger
// is expected.
type Store interface {
	Logger

	// List returns a copy of the entries in the order they were logged,
	// optionally filtered.
	List(filter *Filter) []Entry

	// Clear removes all entries.
	Clear()

	// Count returns the number of entries.
	Count() int
}

// Filter defines criteria for filtering request logs. Zero fields do not
// filter.
type Filter struct {
	Kind      Kind
	Operation string
	MockID    string
	Outcome   string

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

func (f *Filter) matches(e *Entry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Operation != "" && e.Operation != f.Operation {
		return false
	}
	if f.MockID != "" && e.MockID != f.MockID {
		return false
	}
	if f.Outcome != "" && e.Outcome != f.Outcome {
		return false
	}
	return true
}

// Subscriber is a channel that receives new log entries.
type Subscriber chan Entry

// SubscribableStore extends Store with subscription support.
type SubscribableStore interface {
	Store

	// Subscribe registers a subscriber to receive new log entries.
	// Returns a channel that will receive entries and an unsubscribe function.
	Subscribe() (Subscriber, func())
}
