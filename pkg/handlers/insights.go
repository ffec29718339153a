// Package handlers provides HTTP handlers for yt-music-go. This file
// contains endpoints that expose listening insights such as top artists
// and tracks, plus explicit playback event recording.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// AddHistoryJSON records an explicit playback event for the session user.
func (app *Application) AddHistoryJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var req struct {
		VideoID    string `json:"video_id"`
		ArtistName string `json:"artist_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.VideoID == "" {
		respondJSONError(w, http.StatusBadRequest, "video_id is required")
		return
	}
	if err := app.DB.AddHistory(r.Context(), user, req.VideoID, req.ArtistName, time.Now()); err != nil {
		log.WithError(err).Error("save history")
		respondJSONError(w, http.StatusInternalServerError, "failed to save history")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// InsightsJSON returns the most played artists for the last week.
func (app *Application) InsightsJSON(w http.ResponseWriter, r *http.Request) {
	user, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	since := time.Now().AddDate(0, 0, -7)
	res, err := app.DB.TopArtistsSince(r.Context(), user, since)
	if err != nil {
		log.WithError(err).Error("load insights")
		respondJSONError(w, http.StatusInternalServerError, "failed to load insights")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// InsightsTracksJSON returns the most played tracks for a configurable
// period controlled by the 'days' query parameter.
func (app *Application) InsightsTracksJSON(w http.ResponseWriter, r *http.Request) {
	user, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	res, err := app.DB.TopTracksSince(r.Context(), user, since)
	if err != nil {
		log.WithError(err).Error("load track insights")
		respondJSONError(w, http.StatusInternalServerError, "failed to load insights")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
