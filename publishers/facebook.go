package publishers

import (
	"context"

	"SocialStream/models"
)

// FacebookPublisher posts to the linked page feed; any media kind is accepted.
type FacebookPublisher struct {
	Env Env
}

func (f *FacebookPublisher) Publish(ctx context.Context, post *models.Post, cred *models.LinkedAccount) (models.PublishResult, error) {
	return publish(ctx, f.Env, models.Facebook, "fb", cred)
}
