// Command web initializes the yt-music-go gateway and starts the HTTP
// server. Configuration is provided via environment variables (optionally
// loaded from a local .env file): PORT, DATABASE_PATH, SEARCH_PROVIDER,
// SIGNING_KEY and STREAM_RATE_LIMIT. The server serves a JSON API only.

package main

import (
	"crypto/rand"
	"encoding/base64"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"yt-music-go/pkg/db"
	"yt-music-go/pkg/handlers"
	"yt-music-go/pkg/music"
	"yt-music-go/pkg/streams"
	"yt-music-go/pkg/ytmusic"
	"yt-music-go/pkg/ytvideo"
)

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newSearchService builds the search backend for the requested provider.
// ytmusic is the YouTube Music songs index, ytvideo the general YouTube
// index, aggregate fans out to both. Unknown names fall back to ytmusic.
// The returned name is the provider actually serving, which /health
// reports.
func newSearchService(provider string) (music.SearchService, string) {
	switch provider {
	case "ytmusic":
		return &ytmusic.Client{}, provider
	case "ytvideo":
		return &ytvideo.Client{}, provider
	case "aggregate":
		return music.Aggregator{Services: []music.SearchService{
			&ytmusic.Client{},
			&ytvideo.Client{},
		}}, provider
	default:
		log.WithField("provider", provider).Warn("unknown SEARCH_PROVIDER, using ytmusic")
		return &ytmusic.Client{}, "ytmusic"
	}
}

// main configures application dependencies and starts the HTTP server.
func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	host := getEnv("HOST", "")
	port := getEnv("PORT", "5000")
	if _, err := strconv.Atoi(port); err != nil {
		log.WithField("port", port).Warn("invalid PORT, using 5000")
		port = "5000"
	}

	searchService, provider := newSearchService(getEnv("SEARCH_PROVIDER", "ytmusic"))

	// SIGNING_KEY protects the session cookies. Without one a random key
	// is generated, meaning sessions do not survive restarts.
	signingKey := os.Getenv("SIGNING_KEY")
	if signingKey == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.WithError(err).Fatal("generate signing key")
		}
		signingKey = base64.RawURLEncoding.EncodeToString(b)
		log.Warn("SIGNING_KEY not set, sessions will not survive restarts")
	}

	// DATABASE_PATH allows the SQLite file to be customised. It defaults
	// to a file named ytmusic.db in the working directory.
	database, err := db.New(getEnv("DATABASE_PATH", "ytmusic.db"))
	if err != nil {
		log.WithError(err).Fatal("db init")
	}
	defer database.Close()

	app := &handlers.Application{
		Search:   searchService,
		Streams:  streams.New(nil),
		DB:       database,
		SignKey:  []byte(signingKey),
		Provider: provider,
	}

	// Stream extraction hits YouTube's player API per request, so those
	// routes carry a per-IP rate limit.
	rps, err := strconv.ParseFloat(getEnv("STREAM_RATE_LIMIT", "1"), 64)
	if err != nil || rps <= 0 {
		rps = 1
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return handlers.RateLimit(h, rps, 5)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", app.SearchJSON)
	mux.HandleFunc("/searchandstream", app.SearchAndStream)
	mux.Handle("/stream/", limited(app.StreamByID))
	mux.Handle("/dash/", limited(app.DashAudio))
	mux.HandleFunc("/health", app.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/session", app.CreateSession)
	mux.HandleFunc("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			app.AddFavorite(w, r)
		case http.MethodDelete:
			app.DeleteFavorite(w, r)
		default:
			app.FavoritesJSON(w, r)
		}
	})
	mux.HandleFunc("/api/history", app.AddHistoryJSON)
	mux.HandleFunc("/api/insights", app.InsightsJSON)
	mux.HandleFunc("/api/insights/tracks", app.InsightsTracksJSON)
	mux.HandleFunc("/api/share", app.AddShareTrack)
	mux.HandleFunc("/share/", app.ShareTrackJSON)

	handler := handlers.CORS(handlers.SecurityHeaders(handlers.Metrics(mux)))

	addr := net.JoinHostPort(host, port)
	log.WithFields(log.Fields{"addr": addr, "provider": app.Provider}).Info("gateway listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("http server error")
	}
}
