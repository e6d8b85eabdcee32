package services

import (
	"context"
	"fmt"
	"time"

	"SocialStream/models"
	"SocialStream/publishers"
)

// PublisherService routes a post to the publisher for each platform, with
// that platform's unsealed credential.
type PublisherService struct {
	accounts   *AccountLinkManager
	publishers map[models.Platform]publishers.PlatformPublisher
}

// NewPublisherService wires the simulated publishers. Each waits delay and
// checks the account's link token with tokens.
func NewPublisherService(accounts *AccountLinkManager, clock Clock, delay time.Duration, ids IDGenerator, tokens *LinkTokenIssuer) *PublisherService {
	env := publishers.Env{
		Delay: delay,
		Sleep: clock.Sleep,
		NewID: ids.NewID,
		VerifyToken: func(token string, platform models.Platform) error {
			_, err := tokens.Validate(token, platform)
			return err
		},
	}

	return &PublisherService{
		accounts: accounts,
		publishers: map[models.Platform]publishers.PlatformPublisher{
			models.TikTok:   &publishers.TikTokPublisher{Env: env},
			models.YouTube:  &publishers.YouTubePublisher{Env: env},
			models.Facebook: &publishers.FacebookPublisher{Env: env},
			models.Threads:  &publishers.ThreadsPublisher{Env: env},
		},
	}
}

// Register replaces the publisher for platform.
func (ps *PublisherService) Register(platform models.Platform, p publishers.PlatformPublisher) {
	ps.publishers[platform] = p
}

// PublishPost publishes post on one platform. A failed result always comes
// back with a non-nil error.
func (ps *PublisherService) PublishPost(ctx context.Context, post *models.Post, platform models.Platform) (models.PublishResult, error) {
	publisher, ok := ps.publishers[platform]
	if !ok {
		return models.PublishResult{Platform: platform, Message: "Platform not supported"},
			fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	cred, err := ps.accounts.Credential(platform)
	if err != nil {
		return models.PublishResult{Platform: platform, Message: "Account not linked"}, err
	}

	result, err := publisher.Publish(ctx, post, cred)
	if err == nil && !result.Success {
		err = fmt.Errorf("%s: %s", platform, result.Message)
	}
	return result, err
}
