package handlers

import "testing"

// TestNormalizeVideoID covers canonical IDs, the music video prefix and
// the pass-through behaviour for unusual but long identifiers.
func TestNormalizeVideoID(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"a-b_c123XYZ", "a-b_c123XYZ", true},
		{"MUSIC_VIDEO_ID_dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		// The prefix is stripped on length alone; the extractor judges
		// the remainder.
		{"MUSIC_VIDEO_ID_abcdefghi!j", "abcdefghi!j", true},
		// A prefixed remainder of the wrong length is passed through.
		{"MUSIC_VIDEO_ID_tooshort", "MUSIC_VIDEO_ID_tooshort", true},
		{"", "", false},
		{"short", "", false},
		{"123456789", "", false},
		// Longer than canonical but plausible: passed through.
		{"dQw4w9WgXcQextra", "dQw4w9WgXcQextra", true},
		// Invalid characters at canonical length: passed through.
		{"dQw4w9WgXc!", "dQw4w9WgXc!", true},
	}
	for _, c := range cases {
		got, ok := normalizeVideoID(c.in)
		if ok != c.valid || got != c.want {
			t.Errorf("normalizeVideoID(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.valid)
		}
	}
}

func TestIsCanonicalID(t *testing.T) {
	if !isCanonicalID("dQw4w9WgXcQ") {
		t.Error("expected canonical")
	}
	if isCanonicalID("dQw4w9WgXc") || isCanonicalID("dQw4w9WgXcQQ") || isCanonicalID("dQw4w9WgXc!") {
		t.Error("expected non-canonical")
	}
}
