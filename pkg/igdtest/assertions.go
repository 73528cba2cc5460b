package igdtest

import (
	"testing"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/mock"
	"github.com/getmockd/mockigd/pkg/requestlog"
)

// AssertCalled asserts that op was called at least once.
func (g *Gateway) AssertCalled(t testing.TB, op string) {
	t.Helper()

	if len(g.Calls(op)) == 0 {
		t.Errorf("expected %s to be called, but it was not called", op)
	}
}

// AssertCalledTimes asserts that op was called exactly n times.
func (g *Gateway) AssertCalledTimes(t testing.TB, op string, times int) {
	t.Helper()

	count := len(g.Calls(op))
	if count != times {
		t.Errorf("expected %s to be called %d times, but was called %d times", op, times, count)
	}
}

// AssertNotCalled asserts that op was not called.
func (g *Gateway) AssertNotCalled(t testing.TB, op string) {
	t.Helper()

	count := len(g.Calls(op))
	if count > 0 {
		t.Errorf("expected %s to not be called, but it was called %d times", op, count)
	}
}

// AssertCalledWith asserts that at least one call to op carried argument
// name equal to value under the argument's data type, so "080" matches a
// port of 80.
func (g *Gateway) AssertCalledWith(t testing.TB, op, name, value string) {
	t.Helper()

	dataType := action.TypeString
	if o, ok := action.Lookup(op); ok {
		if arg, ok := o.Input(name); ok {
			dataType = arg.Type
		}
	}

	calls := g.Calls(op)
	var seen []string
	for _, c := range calls {
		got, ok := c.Args.Get(name)
		if !ok {
			continue
		}
		if action.Equal(dataType, value, got) {
			return
		}
		seen = append(seen, got)
	}
	if len(calls) == 0 {
		t.Errorf("expected %s to be called with %s=%q, but it was not called", op, name, value)
		return
	}
	t.Errorf("expected %s to be called with %s=%q\nvalues seen: %q", op, name, value, seen)
}

// AssertMockUsed asserts that m answered exactly n calls.
func AssertMockUsed(t testing.TB, m *mock.Mock, n int) {
	t.Helper()

	if got := m.Calls(); got != n {
		t.Errorf("expected mock %s (%s) to answer %d calls, but it answered %d", m.ID, m.Action, n, got)
	}
}

// AssertNoUnmatched asserts that every control call was answered by a mock.
func (g *Gateway) AssertNoUnmatched(t testing.TB) {
	t.Helper()

	for _, e := range g.Requests() {
		if e.Kind == requestlog.KindControl && !e.Matched() {
			t.Errorf("call %d to %s was not matched (%s)", e.Seq, e.Operation, e.Outcome)
		}
	}
}
