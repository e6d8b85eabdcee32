package publishers

import (
	"context"

	"SocialStream/models"
)

// YouTubePublisher uploads reels as Shorts.
type YouTubePublisher struct {
	Env Env
}

func (y *YouTubePublisher) Publish(ctx context.Context, post *models.Post, cred *models.LinkedAccount) (models.PublishResult, error) {
	if res, err := requireVideo(models.YouTube, post); err != nil {
		return res, err
	}
	return publish(ctx, y.Env, models.YouTube, "yt", cred)
}
