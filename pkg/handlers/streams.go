// Package handlers groups HTTP handlers for yt-music-go. This file holds
// the stream extraction endpoints which resolve a video ID into playable
// audio stream URLs.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"yt-music-go/pkg/streams"
)

// resolveVideo normalizes the ID from the URL path and resolves it via the
// extraction layer, writing error responses itself. The boolean reports
// whether the caller may use the returned video.
func (app *Application) resolveVideo(w http.ResponseWriter, r *http.Request, prefix string) (*streams.Video, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	clean, ok := normalizeVideoID(id)
	if !ok {
		respondJSONErrorCode(w, http.StatusBadRequest, "Invalid video ID format", "INVALID_ID")
		return nil, false
	}
	video, err := app.Streams.Resolve(r.Context(), clean)
	if err != nil {
		switch {
		case errors.Is(err, streams.ErrVideoNotFound):
			respondJSONErrorCode(w, http.StatusNotFound, "Video not found or not accessible", "VIDEO_NOT_FOUND")
		case errors.Is(err, streams.ErrNoAudioStreams):
			respondJSONErrorCode(w, http.StatusNotFound, "No audio streams available for this video", "NO_AUDIO_STREAMS")
		default:
			log.WithError(err).WithField("video_id", clean).Error("stream resolution failed")
			respondJSONErrorDetails(w, http.StatusInternalServerError, "Stream failed", err.Error())
		}
		return nil, false
	}
	return video, true
}

// StreamByID handles GET /stream/{video_id}. It returns the best audio
// stream alongside every available audio format.
func (app *Application) StreamByID(w http.ResponseWriter, r *http.Request) {
	video, ok := app.resolveVideo(w, r, "/stream/")
	if !ok {
		return
	}
	best := video.Best()
	app.recordHistory(r, video.ID, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"video_id":  video.ID,
		"title":     video.Title,
		"duration":  video.Duration,
		"thumbnail": video.Thumbnail,
		"best_stream": map[string]any{
			"url":      best.URL,
			"quality":  best.Quality,
			"bitrate":  best.Bitrate,
			"codec":    best.Codec,
			"filesize": best.Filesize,
		},
		"all_formats": video.Audio,
	})
}

// DashAudio handles GET /dash/{video_id}. It returns the adaptive audio
// format list used for DASH playback.
func (app *Application) DashAudio(w http.ResponseWriter, r *http.Request) {
	video, ok := app.resolveVideo(w, r, "/dash/")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"video_id":           video.ID,
		"title":              video.Title,
		"duration":           video.Duration,
		"thumbnail":          video.Thumbnail,
		"dash_audio_streams": video.Audio,
	})
}
