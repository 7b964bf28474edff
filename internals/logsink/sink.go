// Package logsink contains the destinations launcher output is written to.
// Every Sink in this package is safe for concurrent use.
package logsink

import (
	"fmt"
	"sync"
)

// Sink receives output one line at a time
type Sink interface {
	Write(line string)
}

// Func turns a function into a Sink. The function has to be safe for concurrent use
type Func func(line string)

// Write calls f
func (f Func) Write(line string) { f(line) }

// Printf formats according to a format specifier and writes the result to s
func Printf(s Sink, format string, a ...interface{}) {
	s.Write(fmt.Sprintf(format, a...))
}

// Multi writes every line to all contained sinks
type Multi []Sink

// Write writes line to all sinks
func (m Multi) Write(line string) {
	for _, s := range m {
		s.Write(line)
	}
}

// Discard drops everything
var Discard Sink = Func(func(string) {})

// Memory keeps all lines. Mostly useful for tests
type Memory struct {
	mu    sync.Mutex
	lines []string
}

// Write appends line
func (m *Memory) Write(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}

// Lines returns a copy of all lines written so far
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}
