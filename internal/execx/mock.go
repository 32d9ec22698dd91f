package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records one command the mock received.
type Call struct {
	Dir  string
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is a scripted result for a command prefix.
type Response struct {
	Output string
	Err    error
}

// Mock is a scripted Executor. Responses are matched by the longest
// registered prefix of "name arg arg ...". Unmatched commands succeed
// with empty output so tests only script what they care about.
type Mock struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

func NewMock() *Mock {
	return &Mock{responses: map[string]Response{}}
}

// Respond registers a response for commands whose joined form starts
// with prefix.
func (m *Mock) Respond(prefix string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prefix] = Response{Output: output, Err: err}
}

// Calls returns every command received so far.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallStrings returns the joined form of every call, for assertions.
func (m *Mock) CallStrings() []string {
	calls := m.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

func (m *Mock) lookup(dir, name string, args []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Dir: dir, Name: name, Args: args})

	joined := Call{Name: name, Args: args}.String()
	bestLen := -1
	var best Response
	for prefix, resp := range m.responses {
		if strings.HasPrefix(joined, prefix) && len(prefix) > bestLen {
			bestLen = len(prefix)
			best = resp
		}
	}
	if bestLen < 0 {
		return "", nil
	}
	return best.Output, best.Err
}

func (m *Mock) Output(_ context.Context, dir string, name string, args ...string) (string, error) {
	out, err := m.lookup(dir, name, args)
	return strings.TrimRight(out, "\n"), err
}

func (m *Mock) CombinedOutput(_ context.Context, dir string, name string, args ...string) (string, error) {
	out, err := m.lookup(dir, name, args)
	return strings.TrimRight(out, "\n"), err
}

func (m *Mock) Run(_ context.Context, dir string, name string, args ...string) error {
	_, err := m.lookup(dir, name, args)
	return err
}

var _ Executor = (*Mock)(nil)
var _ Executor = (*Real)(nil)

// Errf is a convenience for scripting failures.
func Errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
