// Package handlers contains the HTTP handlers for the yt-music-go gateway.
// This file holds the Application struct bundling handler dependencies and
// the search and health endpoints.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"yt-music-go/pkg/db"
	"yt-music-go/pkg/music"
	"yt-music-go/pkg/streams"
)

// ServiceName identifies the gateway in health responses and logs.
const ServiceName = "yt-music-go"

// StreamResolver resolves a video ID into metadata and ranked audio
// formats. *streams.Extractor is the production implementation; tests
// substitute a stub.
type StreamResolver interface {
	Resolve(ctx context.Context, id string) (*streams.Video, error)
}

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	Search   music.SearchService
	Streams  StreamResolver
	DB       *db.DB
	SignKey  []byte
	Provider string
}

// searchRequest is the body accepted by the search endpoints.
type searchRequest struct {
	SongName   string `json:"song_name"`
	ArtistName string `json:"artist_name"`
}

// query builds the provider query string from the song and artist names.
func (req searchRequest) query() string {
	return strings.TrimSpace(req.SongName + " " + req.ArtistName)
}

// searchTracks runs the request body through the configured search service
// and writes error responses itself. The boolean reports whether the
// caller may proceed with the results.
func (app *Application) searchTracks(w http.ResponseWriter, r *http.Request) ([]music.Track, bool) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if req.SongName == "" {
		respondJSONError(w, http.StatusBadRequest, "Provide song_name")
		return nil, false
	}
	if app.Search == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "search service unavailable")
		return nil, false
	}
	tracks, err := app.Search.SearchTrack(r.Context(), req.query())
	if err != nil {
		if errors.Is(err, music.ErrNoResults) {
			respondJSONError(w, http.StatusNotFound, "No results found")
			return nil, false
		}
		log.WithError(err).WithField("query", req.query()).Error("search failed")
		respondJSONErrorDetails(w, http.StatusInternalServerError, "Search failed", err.Error())
		return nil, false
	}
	// Providers signal empty result sets with ErrNoResults, but a
	// misbehaving one must not panic the stream handler.
	if len(tracks) == 0 {
		respondJSONError(w, http.StatusNotFound, "No results found")
		return nil, false
	}
	return tracks, true
}

// SearchJSON handles POST /search. It queries the configured provider and
// returns a flattened list of matches.
func (app *Application) SearchJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tracks, ok := app.searchTracks(w, r)
	if !ok {
		return
	}
	type result struct {
		Title     string `json:"title"`
		VideoID   string `json:"video_id"`
		Artists   string `json:"artists"`
		Thumbnail string `json:"thumbnail"`
	}
	results := make([]result, len(tracks))
	for i, t := range tracks {
		results[i] = result{
			Title:     t.Title,
			VideoID:   t.VideoID,
			Artists:   t.ArtistNames(),
			Thumbnail: t.Thumbnail,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// SearchAndStream handles POST /searchandstream. It searches for the song,
// resolves the best audio stream of the first hit and returns both in a
// single response.
func (app *Application) SearchAndStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tracks, ok := app.searchTracks(w, r)
	if !ok {
		return
	}
	first := tracks[0]
	if first.VideoID == "" {
		respondJSONError(w, http.StatusNotFound, "No videoId found")
		return
	}
	video, err := app.Streams.Resolve(r.Context(), first.VideoID)
	if err != nil {
		if errors.Is(err, streams.ErrNoAudioStreams) {
			respondJSONError(w, http.StatusNotFound, "No audio stream")
			return
		}
		log.WithError(err).WithField("video_id", first.VideoID).Error("stream resolution failed")
		respondJSONErrorDetails(w, http.StatusInternalServerError, "Stream failed", err.Error())
		return
	}
	best := video.Best()
	app.recordHistory(r, video.ID, first.ArtistNames())
	writeJSON(w, http.StatusOK, map[string]any{
		"title":      video.Title,
		"artists":    first.ArtistNames(),
		"video_id":   video.ID,
		"stream_url": best.URL,
		"thumbnail":  video.Thumbnail,
		"quality":    best.Quality,
		"bitrate":    best.Bitrate,
		"codec":      best.Codec,
		"duration":   video.Duration,
	})
}

// recordHistory stores a playback event for the session user, or under
// "anonymous" when no session cookie is present. Failures are logged but
// never surface to the client.
func (app *Application) recordHistory(r *http.Request, videoID, artistName string) {
	if app.DB == nil {
		return
	}
	user, err := app.userFromCookie(r)
	if err != nil {
		user = "anonymous"
	}
	if err := app.DB.AddHistory(r.Context(), user, videoID, artistName, time.Now()); err != nil {
		log.WithError(err).Warn("record history")
	}
}

// Health handles GET /health. The gateway reports healthy as long as the
// process is serving; search degradation is visible via the provider field.
func (app *Application) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   ServiceName,
		"provider":  app.Provider,
	})
}
