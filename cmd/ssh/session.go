package main

import (
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/tomz197/alieninvasion/internal/draw"
)

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

// sessionEnv exposes the remote client's environment to termenv so the
// color profile matches the client terminal, not the server's.
type sessionEnv struct {
	environ []string
}

var _ termenv.Environ = sessionEnv{}

func newSessionEnv(environ []string, term string) sessionEnv {
	env := make([]string, 0, len(environ)+1)
	env = append(env, environ...)
	if term != "" {
		env = append(env, "TERM="+term)
	}
	return sessionEnv{environ: env}
}

func (e sessionEnv) Environ() []string {
	return e.environ
}

// Getenv returns the last value set for key.
func (e sessionEnv) Getenv(key string) string {
	prefix := key + "="
	for i := len(e.environ) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(e.environ[i], prefix); ok {
			return v
		}
	}
	return ""
}
