// Package messages keeps the human-readable notification log that services
// append to and the TUI shows under the active view.
package messages

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Makepad-fr/heroes/internal/logging"
)

// Service is safe for concurrent use; commands report from their own goroutines.
type Service struct {
	mu       sync.Mutex
	messages []string
	logger   logging.Logger
}

// New returns an empty Service. A nil logger discards.
func New(logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{logger: log.With(logger, "component", "messages")}
}

// Add appends a message.
func (s *Service) Add(message string) {
	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()
	level.Debug(s.logger).Log("msg", message)
}

// Messages returns a copy of every message in insertion order.
func (s *Service) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// Last returns up to n of the newest messages, oldest first.
func (s *Service) Last(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return nil
	}
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	return append([]string(nil), s.messages[start:]...)
}

// Clear drops every message.
func (s *Service) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
