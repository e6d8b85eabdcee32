package publishers

import (
	"context"

	"SocialStream/models"
)

type TikTokPublisher struct {
	Env Env
}

func (t *TikTokPublisher) Publish(ctx context.Context, post *models.Post, cred *models.LinkedAccount) (models.PublishResult, error) {
	if res, err := requireVideo(models.TikTok, post); err != nil {
		return res, err
	}
	return publish(ctx, t.Env, models.TikTok, "tt", cred)
}
