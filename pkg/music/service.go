// Package music defines generic interfaces and data structures for
// interacting with track search providers. Implementations can wrap
// YouTube Music, plain YouTube search or any other catalogue. By depending
// on this package the rest of the application can remain agnostic about
// the underlying provider.
package music

import (
	"context"
	"errors"
	"strings"
)

// ErrNoResults is returned by search providers when the query matched
// nothing. Handlers translate it into a 404 response.
var ErrNoResults = errors.New("no tracks found")

// Artist identifies a performer credited on a track.
type Artist struct {
	Name string `json:"name"`
}

// Track represents a search hit from a provider. VideoID is always a
// YouTube video identifier so the extraction layer can resolve a stream
// for any result regardless of which provider produced it.
type Track struct {
	VideoID   string   `json:"video_id"`
	Title     string   `json:"title"`
	Artists   []Artist `json:"artists"`
	Thumbnail string   `json:"thumbnail"`
	Duration  int      `json:"duration"`
}

// ArtistNames joins the credited artist names with commas, matching the
// flattened form the JSON API exposes.
func (t Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// SearchService exposes track searching. The context is used for request
// cancellation and timeout propagation. ErrNoResults is returned when the
// provider answered but found nothing; any other error indicates a
// provider failure.
type SearchService interface {
	SearchTrack(ctx context.Context, query string) ([]Track, error)
}
