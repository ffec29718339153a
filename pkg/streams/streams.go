// Package streams wraps github.com/kkdai/youtube/v2 to resolve playable
// audio stream URLs for a video ID. The library owns the hard parts
// (player API access and signature deciphering); this package filters and
// ranks the returned formats and classifies failures so handlers can map
// them to HTTP status codes.
package streams

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// Sentinel errors used for HTTP status mapping. Wrapped causes from the
// underlying library remain inspectable via errors.Unwrap.
var (
	// ErrVideoNotFound indicates the video does not exist or is not
	// accessible (private, region locked, bot check).
	ErrVideoNotFound = errors.New("video not found or not accessible")
	// ErrNoAudioStreams indicates the video resolved but exposes no
	// audio-only formats.
	ErrNoAudioStreams = errors.New("no audio streams available")
)

// Format describes a single playable audio format.
type Format struct {
	Itag     int    `json:"itag"`
	Quality  string `json:"quality"`
	Bitrate  int    `json:"bitrate"`
	Codec    string `json:"codec"`
	URL      string `json:"url"`
	Filesize int64  `json:"filesize"`
}

// Video bundles the metadata and ranked audio formats of a resolved video.
// Audio holds every audio-only format ordered by descending bitrate with
// stream URLs already deciphered.
type Video struct {
	ID        string
	Title     string
	Duration  int
	Thumbnail string
	Audio     []Format
}

// Best returns the highest-bitrate audio format, or nil when none exist.
func (v *Video) Best() *Format {
	if len(v.Audio) == 0 {
		return nil
	}
	return &v.Audio[0]
}

// Extractor resolves videos and their audio formats.
type Extractor struct {
	client *youtube.Client
}

// New returns an Extractor using the provided http.Client for all player
// API traffic. Passing nil uses http.DefaultClient, mirroring the wrapped
// library's behaviour.
func New(hc *http.Client) *Extractor {
	return &Extractor{client: &youtube.Client{HTTPClient: hc}}
}

// Resolve fetches the video metadata for id and builds the ranked audio
// format list. It returns ErrVideoNotFound when the video cannot be
// loaded or carries only placeholder metadata, and ErrNoAudioStreams when
// no audio-only format survives filtering.
func (e *Extractor) Resolve(ctx context.Context, id string) (*Video, error) {
	video, err := e.client.GetVideoContext(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrVideoNotFound, err)
	}
	// An empty or generic title means the player returned a stub page
	// instead of the video.
	if video.Title == "" || video.Title == "YouTube" {
		return nil, ErrVideoNotFound
	}

	formats := audioOnly(video.Formats)
	if len(formats) == 0 {
		return nil, ErrNoAudioStreams
	}

	v := &Video{
		ID:       video.ID,
		Title:    video.Title,
		Duration: int(video.Duration.Seconds()),
	}
	if len(video.Thumbnails) > 0 {
		v.Thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
	}
	for i := range formats {
		f := formats[i]
		url, err := e.client.GetStreamURLContext(ctx, video, &f)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A single undecipherable format should not sink the
			// whole response.
			continue
		}
		v.Audio = append(v.Audio, Format{
			Itag:     f.ItagNo,
			Quality:  abr(f),
			Bitrate:  f.Bitrate,
			Codec:    f.MimeType,
			URL:      url,
			Filesize: f.ContentLength,
		})
	}
	if len(v.Audio) == 0 {
		return nil, ErrNoAudioStreams
	}
	return v, nil
}

// audioOnly filters the format list down to audio-only (DASH) formats and
// orders them by descending bitrate.
func audioOnly(list youtube.FormatList) []youtube.Format {
	var out []youtube.Format
	for _, f := range list {
		if strings.HasPrefix(f.MimeType, "audio/") {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bitrate > out[j].Bitrate
	})
	return out
}

// abr renders a pytube-style average bitrate label such as "128kbps".
func abr(f youtube.Format) string {
	bitrate := f.AverageBitrate
	if bitrate == 0 {
		bitrate = f.Bitrate
	}
	if bitrate == 0 {
		return ""
	}
	return fmt.Sprintf("%dkbps", bitrate/1000)
}
