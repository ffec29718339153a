// Package handlers groups HTTP handlers for yt-music-go. This file focuses
// on the JSON endpoints that manage user favorites.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// AddFavorite accepts a JSON payload describing a track and saves it to
// the current user's favorites list. The user ID is retrieved from the
// signed session cookie.
func (app *Application) AddFavorite(w http.ResponseWriter, r *http.Request) {
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
	if err := app.DB.AddFavorite(r.Context(), user, req.VideoID, req.TrackName, req.ArtistName); err != nil {
		log.WithError(err).Error("save favorite")
		respondJSONError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteFavorite removes a saved track identified by the video_id query
// parameter. A 404 is returned when the favorite does not exist.
func (app *Application) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		respondJSONError(w, http.StatusBadRequest, "video_id is required")
		return
	}
	if err := app.DB.DeleteFavorite(r.Context(), user, videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "favorite not found")
		} else {
			log.WithError(err).Error("delete favorite")
			respondJSONError(w, http.StatusInternalServerError, "failed to delete favorite")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FavoritesJSON returns the user's favorites as JSON.
func (app *Application) FavoritesJSON(w http.ResponseWriter, r *http.Request) {
	user, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	favs, err := app.DB.ListFavorites(r.Context(), user)
	if err != nil {
		log.WithError(err).Error("load favorites")
		respondJSONError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	writeJSON(w, http.StatusOK, favs)
}
