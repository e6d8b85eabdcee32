package services

import (
	"context"
	"fmt"
	"time"

	"SocialStream/models"
)

const sourceCaption = "Keep pushing boundaries. 🚀 #workhard #reels"

// Fetcher acquires the latest post from a source identity.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (models.SourcePost, error)
}

// SimulatedFetcher stands in for scraping the source account: it waits a
// fixed delay and returns a synthetic reel.
type SimulatedFetcher struct {
	clock Clock
	delay time.Duration
	ids   IDGenerator
}

func NewSimulatedFetcher(clock Clock, delay time.Duration, ids IDGenerator) *SimulatedFetcher {
	return &SimulatedFetcher{clock: clock, delay: delay, ids: ids}
}

func (f *SimulatedFetcher) Fetch(ctx context.Context, source string) (models.SourcePost, error) {
	if source == "" {
		return models.SourcePost{}, fmt.Errorf("fetch: empty source identity")
	}
	if err := f.clock.Sleep(ctx, f.delay); err != nil {
		return models.SourcePost{}, err
	}

	media := append([]byte(nil), syntheticReelHeader...)
	mediaType, mime, err := DetectMediaType(media)
	if err != nil {
		return models.SourcePost{}, fmt.Errorf("fetch %s: %w", source, err)
	}

	return models.SourcePost{
		URL:       fmt.Sprintf("https://instagram.com/reels/vid_%s", f.ids.NewID()),
		Caption:   sourceCaption,
		MediaType: mediaType,
		MimeType:  mime,
		Media:     media,
		FetchedAt: f.clock.Now(),
	}, nil
}
