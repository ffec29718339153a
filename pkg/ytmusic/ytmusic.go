// Package ytmusic implements the music.SearchService interface using the
// YouTube Music search API via github.com/raitonoberu/ytmusic. The library
// speaks the unauthenticated InnerTube endpoint so no API key is required.
//
// The wrapped client does not accept a context, so cancellation is checked
// explicitly before each call.
package ytmusic

import (
	"context"

	"github.com/raitonoberu/ytmusic"

	"yt-music-go/pkg/music"
)

// DefaultLimit caps how many search hits are returned when the caller does
// not configure a limit.
const DefaultLimit = 5

// Client provides access to YouTube Music song search.
type Client struct {
	// Limit bounds the number of returned tracks. Zero means DefaultLimit.
	Limit int
}

// ensure Client implements the music.SearchService interface.
var _ music.SearchService = (*Client)(nil)

// SearchTrack queries YouTube Music with the songs filter and converts the
// results into music.Track values. Only the first page of results is
// consumed.
func (c *Client) SearchTrack(ctx context.Context, query string) ([]music.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	search := ytmusic.TrackSearch(query)
	result, err := search.Next()
	if err != nil {
		return nil, err
	}
	if len(result.Tracks) == 0 {
		return nil, music.ErrNoResults
	}
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	tracks := make([]music.Track, 0, limit)
	for _, item := range result.Tracks {
		if len(tracks) >= limit {
			break
		}
		tracks = append(tracks, fromTrackItem(item))
	}
	return tracks, nil
}

// fromTrackItem converts a raw search item into the provider-agnostic
// track representation. The largest thumbnail is preferred because the
// API lists them in ascending size order.
func fromTrackItem(item *ytmusic.TrackItem) music.Track {
	t := music.Track{
		VideoID:  item.VideoID,
		Title:    item.Title,
		Duration: item.Duration,
	}
	for _, a := range item.Artists {
		t.Artists = append(t.Artists, music.Artist{Name: a.Name})
	}
	if n := len(item.Thumbnails); n > 0 {
		t.Thumbnail = item.Thumbnails[n-1].URL
	}
	return t
}
