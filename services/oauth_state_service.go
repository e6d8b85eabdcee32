package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"SocialStream/models"
)

const oauthStateTTL = 10 * time.Minute

// OAuthState stores temporary state for a link handshake
type OAuthState struct {
	Platform  models.Platform
	CreatedAt time.Time
}

// OAuthStateService manages one-time state tokens for link handshakes
type OAuthStateService struct {
	clock   Clock
	entropy io.Reader
	mu      sync.Mutex
	states  map[string]*OAuthState
}

func NewOAuthStateService(clock Clock) *OAuthStateService {
	return &OAuthStateService{
		clock:   clock,
		entropy: rand.Reader,
		states:  make(map[string]*OAuthState),
	}
}

// GenerateState creates a new state token
func (s *OAuthStateService) GenerateState(platform models.Platform) (string, error) {
	bytes := make([]byte, 32)
	if _, err := io.ReadFull(s.entropy, bytes); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	state := hex.EncodeToString(bytes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = &OAuthState{
		Platform:  platform,
		CreatedAt: s.clock.Now(),
	}
	return state, nil
}

// ValidateState validates and consumes a state token. Tokens are single use
// and must belong to the platform being linked.
func (s *OAuthStateService) ValidateState(state string, platform models.Platform) (*OAuthState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oauthState, exists := s.states[state]
	if !exists {
		return nil, false
	}
	delete(s.states, state)

	if s.clock.Now().Sub(oauthState.CreatedAt) > oauthStateTTL {
		return nil, false
	}
	if oauthState.Platform != platform {
		return nil, false
	}
	return oauthState, true
}

// PurgeExpired drops abandoned states. Maintenance runs it on a cron schedule.
func (s *OAuthStateService) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	purged := 0
	for state, oauthState := range s.states {
		if now.Sub(oauthState.CreatedAt) > oauthStateTTL {
			delete(s.states, state)
			purged++
		}
	}
	return purged
}

func (s *OAuthStateService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
