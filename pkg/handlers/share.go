// Package handlers includes HTTP handlers for yt-music-go. This file
// contains the endpoints responsible for creating and serving shareable
// track links. Each share is stored with a short ID allowing anyone with
// the link to fetch the track metadata without authentication.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// AddShareTrack creates a shareable link for a track. The request body
// should contain JSON fields `video_id`, `track_name` and `artist_name`.
// On success a JSON object containing the full URL is returned.
func (app *Application) AddShareTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var req struct {
		VideoID    string `json:"video_id"`
		TrackName  string `json:"track_name"`
		ArtistName string `json:"artist_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.VideoID == "" || req.TrackName == "" || req.ArtistName == "" {
		respondJSONError(w, http.StatusBadRequest, "video_id, track_name and artist_name are required")
		return
	}
	// Persist the share details under a short identifier used by the
	// lookup handler.
	id, err := app.DB.CreateShareTrack(r.Context(), req.VideoID, req.TrackName, req.ArtistName)
	if err != nil {
		log.WithError(err).Error("store share")
		respondJSONError(w, http.StatusInternalServerError, "failed to store share")
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/share/%s", scheme, r.Host, id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "url": url})
}

// ShareTrackJSON returns the metadata of a shared track. The share ID is
// extracted from the path `/share/{id}`. If the ID is missing from the
// database a 404 response is returned.
func (app *Application) ShareTrackJSON(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/share/")
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	st, err := app.DB.GetShareTrack(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "share not found")
		} else {
			log.WithError(err).Error("load share")
			respondJSONError(w, http.StatusInternalServerError, "failed to load share")
		}
		return
	}
	writeJSON(w, http.StatusOK, st)
}
