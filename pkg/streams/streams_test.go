package streams

import (
	"testing"

	"github.com/kkdai/youtube/v2"
)

// TestAudioOnly verifies that muxed video formats are excluded and the
// survivors are ordered by descending bitrate.
func TestAudioOnly(t *testing.T) {
	list := youtube.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Bitrate: 500000},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130000},
		{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, Bitrate: 160000},
		{ItagNo: 249, MimeType: `audio/webm; codecs="opus"`, Bitrate: 50000},
	}
	got := audioOnly(list)
	if len(got) != 3 {
		t.Fatalf("expected 3 audio formats, got %d", len(got))
	}
	itags := []int{got[0].ItagNo, got[1].ItagNo, got[2].ItagNo}
	want := []int{251, 140, 249}
	for i := range want {
		if itags[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", itags, want)
		}
	}
}

func TestAudioOnlyEmpty(t *testing.T) {
	list := youtube.FormatList{
		{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`},
	}
	if got := audioOnly(list); len(got) != 0 {
		t.Fatalf("expected no audio formats, got %d", len(got))
	}
}

// TestABR prefers the average bitrate and falls back to the nominal one.
func TestABR(t *testing.T) {
	cases := []struct {
		format youtube.Format
		want   string
	}{
		{youtube.Format{AverageBitrate: 129478, Bitrate: 130318}, "129kbps"},
		{youtube.Format{Bitrate: 160000}, "160kbps"},
		{youtube.Format{}, ""},
	}
	for _, c := range cases {
		if got := abr(c.format); got != c.want {
			t.Errorf("abr(%+v) = %q, want %q", c.format, got, c.want)
		}
	}
}

func TestBest(t *testing.T) {
	v := &Video{Audio: []Format{{Itag: 251, Bitrate: 160000}, {Itag: 249, Bitrate: 50000}}}
	if b := v.Best(); b == nil || b.Itag != 251 {
		t.Fatalf("unexpected best format: %+v", b)
	}
	if b := (&Video{}).Best(); b != nil {
		t.Fatalf("expected nil best for empty video")
	}
}
