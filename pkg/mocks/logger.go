package mocks

import (
	"fmt"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

// Logger records formatted log lines.
type Logger struct {
	mu    *sync.Mutex
	lines *[]string

	component string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, lines: &[]string{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record("DEBUG", msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record("INFO", msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record("WARN", msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record("ERROR", msg, args...) }

// WithComponent returns a logger sharing the same record.
func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: m.mu, lines: m.lines, component: component}
}

// Lines returns every recorded line.
func (m *Logger) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), (*m.lines)...)
}

func (m *Logger) record(level, msg string, args ...interface{}) {
	line := fmt.Sprintf("%s [%s] %s", level, m.component, fmt.Sprintf(msg, args...))
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.lines = append(*m.lines, line)
}

var _ ports.Logger = (*Logger)(nil)
