package services

import (
	"fmt"
	"testing"

	"SocialStream/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string) models.ContentLogEntry {
	return models.ContentLogEntry{ID: id, Platform: string(models.TikTok), Status: models.OutcomeSuccess}
}

func TestContentFeedNewestFirst(t *testing.T) {
	f := NewContentFeed(5)
	f.Append(entry("a"))
	f.Append(entry("b"))
	f.Append(entry("c"))

	got := f.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
}

func TestContentFeedEvictsOldest(t *testing.T) {
	f := NewContentFeed(3)
	for i := 1; i <= 7; i++ {
		f.Append(entry(fmt.Sprint(i)))
		assert.LessOrEqual(t, f.Len(), 3)
	}

	assert.Equal(t, []string{"7", "6", "5"}, ids(f.Entries()))
}

func TestContentFeedDefaultCapacity(t *testing.T) {
	f := NewContentFeed(0)
	assert.Equal(t, DefaultFeedCapacity, f.Capacity())
	for i := 0; i < 120; i++ {
		f.Append(entry(fmt.Sprint(i)))
	}
	got := f.Entries()
	assert.Len(t, got, DefaultFeedCapacity)
	assert.Equal(t, "119", got[0].ID)
	assert.Equal(t, "70", got[len(got)-1].ID)
}

func TestContentFeedEntriesIsACopy(t *testing.T) {
	f := NewContentFeed(2)
	f.Append(entry("a"))
	got := f.Entries()
	got[0].ID = "mutated"
	assert.Equal(t, "a", f.Entries()[0].ID)
}

func ids(entries []models.ContentLogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
