package dolt

import (
	"fmt"
	"strings"
	"sync"
)

// MockRunner is a CommandRunner for testing. It returns scripted responses
// keyed by the joined command line and records every invocation.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

type mockResponse struct {
	output string
	err    error
}

// NewMockRunner creates an empty mock runner. Commands without a scripted
// response return empty output and no error.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		responses: make(map[string]mockResponse),
	}
}

// Respond scripts the output for a command line, e.g.
// Respond("dolt status", statusOutput).
func (m *MockRunner) Respond(cmdline, output string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmdline] = mockResponse{output: output}
	return m
}

// Fail scripts a failure for a command line.
func (m *MockRunner) Fail(cmdline string, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmdline] = mockResponse{err: err}
	return m
}

// Run implements CommandRunner.
func (m *MockRunner) Run(dir string, name string, args ...string) (string, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, cmdline)

	if resp, ok := m.responses[cmdline]; ok {
		return resp.output, resp.err
	}
	return "", nil
}

// Calls returns the recorded command lines in invocation order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LastCall returns the most recent command line, or "" if none.
func (m *MockRunner) LastCall() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}

// CalledWith reports whether any recorded call contains the substring.
func (m *MockRunner) CalledWith(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// String summarizes recorded calls, for test failure messages.
func (m *MockRunner) String() string {
	return fmt.Sprintf("MockRunner(%d calls)", len(m.Calls()))
}
