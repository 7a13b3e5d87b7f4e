package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mwiater/promptlab/internal/appconfig"
)

// Session is the per-conversation state. Its mode starts from the
// configuration snapshot and changes only through a SwitchMode action.
type Session struct {
	ID uuid.UUID

	mu           sync.Mutex
	mode         appconfig.Mode
	pendingInput string
}

// NewSession starts a session in the configured mode.
func NewSession(cfg *appconfig.Config) *Session {
	mode := appconfig.ModeDefault
	if cfg != nil && cfg.Mode == appconfig.ModeTest {
		mode = appconfig.ModeTest
	}
	return &Session{ID: uuid.New(), mode: mode}
}

// Mode returns the session's current mode.
func (s *Session) Mode() appconfig.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// PendingInput returns the user input waiting for the next test selection.
func (s *Session) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingInput
}

// takeInput returns the pending input, or fallback when there is none, and
// clears it. Callers hold s.mu.
func (s *Session) takeInput(fallback string) string {
	input := s.pendingInput
	s.pendingInput = ""
	if input == "" {
		return fallback
	}
	return input
}
