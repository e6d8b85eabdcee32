package publishers

import (
	"context"
	"errors"
	"testing"
	"time"

	"SocialStream/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(slept *[]time.Duration) Env {
	n := 0
	return Env{
		Delay: 1500 * time.Millisecond,
		Sleep: func(ctx context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return ctx.Err()
		},
		NewID: func() string {
			n++
			return "id" + string(rune('0'+n))
		},
		VerifyToken: func(token string, platform models.Platform) error {
			if token != "token-"+string(platform) {
				return errors.New("bad token")
			}
			return nil
		},
	}
}

func linked(p models.Platform) *models.LinkedAccount {
	return &models.LinkedAccount{Platform: p, Linked: true, Handle: "@x", AccessToken: "token-" + string(p)}
}

func videoPost() *models.Post {
	return &models.Post{ID: "p1", Caption: "hi", Source: models.SourcePost{MediaType: models.MediaVideo}}
}

func TestPublishersSucceedWithValidCredentials(t *testing.T) {
	var slept []time.Duration
	env := testEnv(&slept)
	pubs := map[models.Platform]PlatformPublisher{
		models.TikTok:   &TikTokPublisher{Env: env},
		models.YouTube:  &YouTubePublisher{Env: env},
		models.Facebook: &FacebookPublisher{Env: env},
		models.Threads:  &ThreadsPublisher{Env: env},
	}
	prefixes := map[models.Platform]string{
		models.TikTok: "tt_", models.YouTube: "yt_", models.Facebook: "fb_", models.Threads: "th_",
	}

	for _, p := range models.AllPlatforms {
		res, err := pubs[p].Publish(context.Background(), videoPost(), linked(p))
		require.NoError(t, err, p)
		assert.True(t, res.Success)
		assert.Equal(t, p, res.Platform)
		assert.Contains(t, res.PostID, prefixes[p])
	}
	assert.Len(t, slept, len(models.AllPlatforms))
}

func TestPublishMissingCredentials(t *testing.T) {
	var slept []time.Duration
	p := &ThreadsPublisher{Env: testEnv(&slept)}

	res, err := p.Publish(context.Background(), videoPost(), &models.LinkedAccount{Platform: models.Threads})
	require.ErrorIs(t, err, errMissingCredentials)
	assert.False(t, res.Success)
	assert.Empty(t, slept)
}

func TestPublishRejectsForeignToken(t *testing.T) {
	var slept []time.Duration
	p := &FacebookPublisher{Env: testEnv(&slept)}

	_, err := p.Publish(context.Background(), videoPost(), linked(models.TikTok))
	assert.Error(t, err)
}

func TestVideoPlatformsRejectImages(t *testing.T) {
	var slept []time.Duration
	post := &models.Post{Source: models.SourcePost{MediaType: models.MediaImage}}

	res, err := (&TikTokPublisher{Env: testEnv(&slept)}).Publish(context.Background(), post, linked(models.TikTok))
	require.Error(t, err)
	assert.Equal(t, "tiktok requires a video", res.Message)

	_, err = (&YouTubePublisher{Env: testEnv(&slept)}).Publish(context.Background(), post, linked(models.YouTube))
	require.Error(t, err)
}

func TestPublishCancelled(t *testing.T) {
	var slept []time.Duration
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&TikTokPublisher{Env: testEnv(&slept)}).Publish(ctx, videoPost(), linked(models.TikTok))
	assert.ErrorIs(t, err, context.Canceled)
}
