// Package db provides the persistence layer used by the gateway. It wraps
// a SQLite database and exposes helper methods for storing user favorites,
// playback history and shareable track links. The package is intentionally
// small; callers are expected to open a single DB instance using New and
// reuse it for all operations. Favorites are automatically de-duplicated
// per user.

package db

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path. If the file does not
// exist it is created along with the required schema. The returned DB
// value wraps the sql.DB connection for use by the rest of the
// application.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS favorites (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, video_id TEXT, track_name TEXT, artist_name TEXT)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_fav_user_video ON favorites(user_id, video_id)`,
		`CREATE TABLE IF NOT EXISTS history (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, video_id TEXT, artist_name TEXT, played_at TIMESTAMP)`,
		`CREATE TABLE IF NOT EXISTS shares (id TEXT PRIMARY KEY, video_id TEXT, track_name TEXT, artist_name TEXT)`,
	}
	// Errors here likely mean the database file is not writable.
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// Favorite represents a track saved by a user.
type Favorite struct {
	VideoID    string `json:"video_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// AddFavorite inserts a track into the favorites table for userID.
// Duplicate entries for the same user and video are ignored so favorites
// remain unique.
func (db *DB) AddFavorite(ctx context.Context, userID, videoID, trackName, artistName string) error {
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO favorites(user_id, video_id, track_name, artist_name) VALUES(?, ?, ?, ?)`, userID, videoID, trackName, artistName)
	return err
}

// DeleteFavorite removes a track from the user's favorites list.
// sql.ErrNoRows is returned when the specified favorite does not exist
// which allows callers to respond with a 404.
func (db *DB) DeleteFavorite(ctx context.Context, userID, videoID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id=? AND video_id=?`, userID, videoID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFavorites retrieves all favorites stored for the provided userID.
// Results are returned in reverse insertion order so the most recently
// saved tracks appear first.
func (db *DB) ListFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := db.QueryContext(ctx, `SELECT video_id, track_name, artist_name FROM favorites WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.VideoID, &f.TrackName, &f.ArtistName); err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, rows.Err()
}

// AddHistory inserts a playback event for the given user. playedAt should
// be the time the stream was resolved or played.
func (db *DB) AddHistory(ctx context.Context, userID, videoID, artistName string, playedAt time.Time) error {
	_, err := db.ExecContext(ctx, `INSERT INTO history(user_id, video_id, artist_name, played_at) VALUES(?,?,?,?)`, userID, videoID, artistName, playedAt)
	return err
}

// ArtistCount represents how many times an artist was played.
type ArtistCount struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// TopArtistsSince returns the most played artists since the provided time.
func (db *DB) TopArtistsSince(ctx context.Context, userID string, since time.Time) ([]ArtistCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT artist_name, COUNT(*) c FROM history WHERE user_id=? AND played_at>=? GROUP BY artist_name ORDER BY c DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ArtistCount
	for rows.Next() {
		var ac ArtistCount
		if err := rows.Scan(&ac.Artist, &ac.Count); err != nil {
			return nil, err
		}
		res = append(res, ac)
	}
	return res, rows.Err()
}

// TrackCount represents how many times a specific video was played.
type TrackCount struct {
	VideoID string `json:"video_id"`
	Count   int    `json:"count"`
}

// TopTracksSince returns the most played videos since the given time.
func (db *DB) TopTracksSince(ctx context.Context, userID string, since time.Time) ([]TrackCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT video_id, COUNT(*) c FROM history WHERE user_id=? AND played_at>=? GROUP BY video_id ORDER BY c DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []TrackCount
	for rows.Next() {
		var tc TrackCount
		if err := rows.Scan(&tc.VideoID, &tc.Count); err != nil {
			return nil, err
		}
		res = append(res, tc)
	}
	return res, rows.Err()
}

// ShareTrack holds information about a track shared with a unique link.
type ShareTrack struct {
	VideoID    string `json:"video_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// randomString returns a URL-safe base64 string with n bytes of entropy.
// It is used for generating non-guessable share IDs.
func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateShareTrack generates a unique ID and stores the track metadata so
// users can share it via a short URL. The ID is returned to the caller for
// link construction.
func (db *DB) CreateShareTrack(ctx context.Context, videoID, trackName, artistName string) (string, error) {
	id, err := randomString(12)
	if err != nil {
		return "", err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO shares(id, video_id, track_name, artist_name) VALUES(?,?,?,?)`, id, videoID, trackName, artistName)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetShareTrack looks up the track referenced by a share ID. sql.ErrNoRows
// is returned if the ID does not exist.
func (db *DB) GetShareTrack(ctx context.Context, id string) (ShareTrack, error) {
	var st ShareTrack
	err := db.QueryRowContext(ctx, `SELECT video_id, track_name, artist_name FROM shares WHERE id=?`, id).Scan(&st.VideoID, &st.TrackName, &st.ArtistName)
	if err != nil {
		return ShareTrack{}, err
	}
	return st, nil
}
