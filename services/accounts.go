package services

import (
	"context"
	"fmt"
	"sync"

	"SocialStream/models"
	"SocialStream/utils"
)

// AccountLinkManager tracks which platforms are linked. Linking goes through
// an Authorizer handshake guarded by a one-time state token.
type AccountLinkManager struct {
	clock      Clock
	authorizer Authorizer
	states     *OAuthStateService
	sealer     *utils.TokenSealer

	mu       sync.Mutex
	accounts map[models.Platform]*models.LinkedAccount
	pending  map[models.Platform]bool
}

func NewAccountLinkManager(clock Clock, authorizer Authorizer, states *OAuthStateService, sealer *utils.TokenSealer) *AccountLinkManager {
	accounts := make(map[models.Platform]*models.LinkedAccount, len(models.AllPlatforms))
	for _, p := range models.AllPlatforms {
		accounts[p] = &models.LinkedAccount{Platform: p}
	}
	return &AccountLinkManager{
		clock:      clock,
		authorizer: authorizer,
		states:     states,
		sealer:     sealer,
		accounts:   accounts,
		pending:    make(map[models.Platform]bool),
	}
}

// RequestLink runs the handshake for platform. It fails with ErrInvalidState
// if the platform is already linked or a handshake is in flight.
func (m *AccountLinkManager) RequestLink(ctx context.Context, platform models.Platform) (models.LinkedAccount, error) {
	if !platform.Valid() {
		return models.LinkedAccount{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	m.mu.Lock()
	if m.accounts[platform].Linked {
		m.mu.Unlock()
		return models.LinkedAccount{}, fmt.Errorf("%w: %s already linked", ErrInvalidState, platform)
	}
	if m.pending[platform] {
		m.mu.Unlock()
		return models.LinkedAccount{}, fmt.Errorf("%w: %s link already in progress", ErrInvalidState, platform)
	}
	m.pending[platform] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, platform)
		m.mu.Unlock()
	}()

	state, err := m.states.GenerateState(platform)
	if err != nil {
		utils.Errorf("account link failed platform=%s err=%v", platform, err)
		return models.LinkedAccount{}, err
	}
	grant, err := m.authorizer.Authorize(ctx, platform, state)
	if err != nil {
		utils.Warnf("account link failed platform=%s err=%v", platform, err)
		return models.LinkedAccount{}, fmt.Errorf("authorize %s: %w", platform, err)
	}
	if _, ok := m.states.ValidateState(grant.State, platform); !ok {
		utils.Warnf("account link rejected platform=%s reason=state_mismatch", platform)
		return models.LinkedAccount{}, fmt.Errorf("authorize %s: invalid or expired state", platform)
	}

	sealed, err := m.sealer.Seal(grant.AccessToken)
	if err != nil {
		return models.LinkedAccount{}, fmt.Errorf("seal %s token: %w", platform, err)
	}

	now := m.clock.Now()
	m.mu.Lock()
	acct := m.accounts[platform]
	acct.Linked = true
	acct.Handle = grant.Handle
	acct.LinkedAt = &now
	acct.AccessToken = sealed
	out := *acct
	m.mu.Unlock()

	utils.Infof("account linked platform=%s handle=%s", platform, grant.Handle)
	return out, nil
}

// Unlink returns platform to the disconnected state.
func (m *AccountLinkManager) Unlink(platform models.Platform) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	acct := m.accounts[platform]
	if !acct.Linked {
		return fmt.Errorf("%w: %s is not linked", ErrInvalidState, platform)
	}
	*acct = models.LinkedAccount{Platform: platform}
	utils.Infof("account unlinked platform=%s", platform)
	return nil
}

// Accounts lists every platform in declaration order.
func (m *AccountLinkManager) Accounts() []models.LinkedAccount {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LinkedAccount, 0, len(models.AllPlatforms))
	for _, p := range models.AllPlatforms {
		out = append(out, *m.accounts[p])
	}
	return out
}

func (m *AccountLinkManager) IsLinked(platform models.Platform) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[platform]
	return ok && acct.Linked
}

func (m *AccountLinkManager) AnyLinked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.Linked {
			return true
		}
	}
	return false
}

// LinkedSet returns the platforms currently linked.
func (m *AccountLinkManager) LinkedSet() map[models.Platform]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[models.Platform]bool, len(m.accounts))
	for p, acct := range m.accounts {
		if acct.Linked {
			out[p] = true
		}
	}
	return out
}

// ActivePlatforms returns enabled platforms that are also linked, in the
// order given.
func (m *AccountLinkManager) ActivePlatforms(enabled []models.Platform) []models.Platform {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Platform
	for _, p := range enabled {
		if acct, ok := m.accounts[p]; ok && acct.Linked {
			out = append(out, p)
		}
	}
	return out
}

// Credential returns the account with its access token unsealed.
func (m *AccountLinkManager) Credential(platform models.Platform) (*models.LinkedAccount, error) {
	m.mu.Lock()
	acct, ok := m.accounts[platform]
	if !ok || !acct.Linked {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is not linked", ErrInvalidState, platform)
	}
	out := *acct
	m.mu.Unlock()

	token, err := m.sealer.Open(out.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("open %s token: %w", platform, err)
	}
	out.AccessToken = token
	return &out, nil
}
