// Package handlers groups HTTP handlers for yt-music-go. This file holds
// video ID validation and normalization shared by the stream endpoints.

package handlers

import log "github.com/sirupsen/logrus"

// musicVideoIDPrefix is prepended by some YouTube Music clients when a
// song resolves to a music video entry.
const musicVideoIDPrefix = "MUSIC_VIDEO_ID_"

// isCanonicalID reports whether id is an 11-character YouTube video ID
// consisting of alphanumerics, dashes and underscores.
func isCanonicalID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// normalizeVideoID validates and normalizes a video ID parameter. IDs
// shorter than 10 characters are rejected. The MUSIC_VIDEO_ID_ prefix is
// stripped when the remainder is canonical. Anything else is passed
// through unchanged after a warning, leaving the final verdict to the
// extraction layer.
func normalizeVideoID(id string) (string, bool) {
	if len(id) < 10 {
		return "", false
	}
	if isCanonicalID(id) {
		return id, true
	}
	if len(id) > len(musicVideoIDPrefix) && id[:len(musicVideoIDPrefix)] == musicVideoIDPrefix {
		// The extractor gets the final say on the stripped value, so
		// only the length is checked here.
		if clean := id[len(musicVideoIDPrefix):]; len(clean) == 11 {
			return clean, true
		}
	}
	log.WithField("video_id", id).Warn("potentially invalid video id format")
	return id, true
}
