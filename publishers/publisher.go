package publishers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SocialStream/models"
)

type PlatformPublisher interface {
	Publish(ctx context.Context, post *models.Post, cred *models.LinkedAccount) (models.PublishResult, error)
}

// Env is what the simulated publishers need from their host.
type Env struct {
	Delay       time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
	NewID       func() string
	VerifyToken func(token string, platform models.Platform) error
}

var errMissingCredentials = errors.New("missing credentials")

// publish performs the shared part of every simulated publish: validate the
// credential, wait the platform's delay and mint an external post id.
func publish(ctx context.Context, env Env, platform models.Platform, prefix string, cred *models.LinkedAccount) (models.PublishResult, error) {
	if cred == nil || !cred.Linked || cred.AccessToken == "" {
		return failed(platform, fmt.Sprintf("Missing %s credentials", platform)),
			fmt.Errorf("%s: %w", platform, errMissingCredentials)
	}
	if env.VerifyToken != nil {
		if err := env.VerifyToken(cred.AccessToken, platform); err != nil {
			return failed(platform, fmt.Sprintf("Invalid %s credentials", platform)),
				fmt.Errorf("%s: verify token: %w", platform, err)
		}
	}

	if err := env.Sleep(ctx, env.Delay); err != nil {
		return failed(platform, "Publish interrupted"), err
	}

	return models.PublishResult{
		Platform: platform,
		Success:  true,
		Message:  fmt.Sprintf("Published successfully on %s", platform),
		PostID:   fmt.Sprintf("%s_%s", prefix, env.NewID()),
	}, nil
}

func requireVideo(platform models.Platform, post *models.Post) (models.PublishResult, error) {
	if post.Source.MediaType == models.MediaVideo {
		return models.PublishResult{}, nil
	}
	msg := fmt.Sprintf("%s requires a video", platform)
	return failed(platform, msg), errors.New(msg)
}

func failed(platform models.Platform, message string) models.PublishResult {
	return models.PublishResult{Platform: platform, Success: false, Message: message}
}
