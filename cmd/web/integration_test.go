package main

// Integration tests spin up the full HTTP server with an in-memory
// database and exercise a typical flow: create a session, search, resolve
// a stream and save a favorite. These tests use httptest and stubbed
// search/extraction services to avoid network dependencies.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yt-music-go/pkg/db"
	"yt-music-go/pkg/handlers"
	"yt-music-go/pkg/music"
	"yt-music-go/pkg/streams"
)

type stubService struct{ tracks []music.Track }

func (s stubService) SearchTrack(context.Context, string) ([]music.Track, error) {
	return s.tracks, nil
}

type stubExtractor struct{ video *streams.Video }

func (s stubExtractor) Resolve(context.Context, string) (*streams.Video, error) {
	return s.video, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *db.DB) {
	t.Helper()
	database, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	svc := stubService{tracks: []music.Track{{
		VideoID: "dQw4w9WgXcQ",
		Title:   "Song",
		Artists: []music.Artist{{Name: "Artist"}},
	}}}
	ext := stubExtractor{video: &streams.Video{
		ID:       "dQw4w9WgXcQ",
		Title:    "Song",
		Duration: 212,
		Audio:    []streams.Format{{Itag: 251, Quality: "160kbps", Bitrate: 160000, URL: "http://stream/251"}},
	}}
	app := &handlers.Application{Search: svc, Streams: ext, DB: database, SignKey: []byte("integration-key"), Provider: "ytmusic"}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", app.SearchJSON)
	mux.HandleFunc("/searchandstream", app.SearchAndStream)
	mux.HandleFunc("/stream/", app.StreamByID)
	mux.HandleFunc("/health", app.Health)
	mux.HandleFunc("/api/session", app.CreateSession)
	mux.HandleFunc("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			app.AddFavorite(w, r)
		} else {
			app.FavoritesJSON(w, r)
		}
	})
	srv := httptest.NewServer(handlers.CORS(handlers.SecurityHeaders(mux)))
	t.Cleanup(srv.Close)
	return srv, database
}

// TestIntegrationSearchStreamFavorite exercises the main gateway flow
// end-to-end with a real database.
func TestIntegrationSearchStreamFavorite(t *testing.T) {
	srv, database := newTestServer(t)

	// Create a session to obtain the signed user cookie and CSRF token.
	res, err := http.Post(srv.URL+"/api/session", "application/json", strings.NewReader(`{"user_id":"alice"}`))
	if err != nil || res.StatusCode != http.StatusCreated {
		t.Fatalf("session failed %v %d", err, res.StatusCode)
	}
	cookies := res.Cookies()
	var session struct {
		CSRFToken string `json:"csrf_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	// Search.
	res, err = http.Post(srv.URL+"/search", "application/json", strings.NewReader(`{"song_name":"Song"}`))
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("search failed %v %d", err, res.StatusCode)
	}
	var searchBody struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchBody); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if len(searchBody.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(searchBody.Results))
	}

	// Resolve the stream.
	res, err = http.Get(srv.URL + "/stream/dQw4w9WgXcQ")
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("stream failed %v %d", err, res.StatusCode)
	}
	res.Body.Close()

	// Save a favorite with the session cookies and CSRF token.
	favBody := `{"video_id":"dQw4w9WgXcQ","track_name":"Song","artist_name":"Artist"}`
	favReq, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/favorites", strings.NewReader(favBody))
	for _, c := range cookies {
		favReq.AddCookie(c)
	}
	favReq.Header.Set("X-CSRF-Token", session.CSRFToken)
	res, err = http.DefaultClient.Do(favReq)
	if err != nil || res.StatusCode != http.StatusCreated {
		t.Fatalf("favorite add failed %v %d", err, res.StatusCode)
	}
	res.Body.Close()

	favs, err := database.ListFavorites(context.Background(), "alice")
	if err != nil || len(favs) != 1 {
		t.Fatalf("favorite not stored: %v %v", err, favs)
	}
}

// TestIntegrationHealth checks the health endpoint reports the service
// name and provider.
func TestIntegrationHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	res, err := http.Get(srv.URL + "/health")
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("health failed %v %d", err, res.StatusCode)
	}
	defer res.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "yt-music-go" || body["provider"] != "ytmusic" {
		t.Fatalf("unexpected health body: %v", body)
	}
}
