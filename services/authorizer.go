package services

import (
	"context"
	"fmt"
	"time"

	"SocialStream/models"
)

// Grant is what a completed authorization hands back.
type Grant struct {
	Handle      string
	AccessToken string
	State       string
}

// Authorizer performs the account authorization handshake for a platform.
type Authorizer interface {
	Authorize(ctx context.Context, platform models.Platform, state string) (Grant, error)
}

// SimulatedAuthorizer waits a fixed delay and then grants a generated
// handle. No credentials are exchanged.
type SimulatedAuthorizer struct {
	clock  Clock
	delay  time.Duration
	ids    IDGenerator
	tokens *LinkTokenIssuer
}

func NewSimulatedAuthorizer(clock Clock, delay time.Duration, ids IDGenerator, tokens *LinkTokenIssuer) *SimulatedAuthorizer {
	return &SimulatedAuthorizer{clock: clock, delay: delay, ids: ids, tokens: tokens}
}

func (a *SimulatedAuthorizer) Authorize(ctx context.Context, platform models.Platform, state string) (Grant, error) {
	if err := a.clock.Sleep(ctx, a.delay); err != nil {
		return Grant{}, err
	}

	handle := fmt.Sprintf("@%s_%s", platform, a.ids.NewID())
	token, err := a.tokens.Issue(platform, handle)
	if err != nil {
		return Grant{}, fmt.Errorf("issue access token: %w", err)
	}

	return Grant{Handle: handle, AccessToken: token, State: state}, nil
}
