package publishers

import (
	"context"

	"SocialStream/models"
)

type ThreadsPublisher struct {
	Env Env
}

func (t *ThreadsPublisher) Publish(ctx context.Context, post *models.Post, cred *models.LinkedAccount) (models.PublishResult, error) {
	return publish(ctx, t.Env, models.Threads, "th", cred)
}
