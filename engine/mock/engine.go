package mock

import (
	"context"
	"sync"

	"github.com/bananemure/fastrtext/engine"
)

// MockEngine is a test double for engine.Engine. Open hands out the
// configured Session and Run records the command vectors it receives.
//
// Open and Run are safe for concurrent use; read the recorder fields only
// after the calls under test have returned.
type MockEngine struct {
	// Session is returned by Open. A default MockSession is created lazily
	// when nil.
	Session *MockSession

	// OpenFunc is called by Open if set.
	OpenFunc func(ctx context.Context, path string) (engine.Session, error)

	// RunFunc is called by Run if set.
	RunFunc func(ctx context.Context, args []string) error

	// OpenedPaths records every path passed to Open.
	OpenedPaths []string

	// Commands records every command vector passed to Run.
	Commands [][]string

	mu sync.Mutex
}

var _ engine.Engine = (*MockEngine)(nil)

// NewMockEngine creates a mock engine with a default mock session.
// Note: Returns concrete type to allow test assertions.
func NewMockEngine() *MockEngine {
	return &MockEngine{Session: NewMockSession()}
}

// Open returns the configured session regardless of path, recording the
// path for assertions.
func (m *MockEngine) Open(ctx context.Context, path string) (engine.Session, error) {
	m.mu.Lock()
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc == nil && m.Session == nil {
		m.Session = NewMockSession()
	}
	session := m.Session
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return session, nil
}

// Run records the command vector.
func (m *MockEngine) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return engine.ErrEmptyCommand
	}
	m.mu.Lock()
	m.Commands = append(m.Commands, args)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, args)
	}
	return nil
}
