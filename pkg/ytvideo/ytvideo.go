// Package ytvideo implements the music.SearchService interface over the
// general YouTube search index via github.com/raitonoberu/ytsearch. It is
// used as a fallback provider when a query has no YouTube Music entry,
// for example user uploads or live performances.
package ytvideo

import (
	"context"

	"github.com/raitonoberu/ytsearch"

	"yt-music-go/pkg/music"
)

// DefaultLimit caps how many search hits are returned when the caller does
// not configure a limit.
const DefaultLimit = 5

// Client provides access to YouTube video search.
type Client struct {
	Limit int
}

var _ music.SearchService = (*Client)(nil)

// SearchTrack queries the YouTube search index and converts video results
// into music.Track values. Only the first page of results is consumed.
func (c *Client) SearchTrack(ctx context.Context, query string) ([]music.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	search := ytsearch.VideoSearch(query)
	result, err := search.Next()
	if err != nil {
		return nil, err
	}
	if len(result.Videos) == 0 {
		return nil, music.ErrNoResults
	}
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	tracks := make([]music.Track, 0, limit)
	for _, v := range result.Videos {
		if len(tracks) >= limit {
			break
		}
		tracks = append(tracks, fromVideoItem(v))
	}
	return tracks, nil
}

// fromVideoItem maps a search result onto the provider-agnostic track
// shape. The uploading channel stands in for the artist credit.
func fromVideoItem(v *ytsearch.VideoItem) music.Track {
	t := music.Track{
		VideoID:  v.ID,
		Title:    v.Title,
		Duration: v.Duration,
	}
	if v.Channel.Title != "" {
		t.Artists = []music.Artist{{Name: v.Channel.Title}}
	}
	if n := len(v.Thumbnails); n > 0 {
		t.Thumbnail = v.Thumbnails[n-1].URL
	}
	return t
}
