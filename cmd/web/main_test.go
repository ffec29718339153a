package main

import (
	"os"
	"testing"

	"yt-music-go/pkg/ytmusic"
)

// TestGetEnv verifies the fallback behaviour of the env helper.
func TestGetEnv(t *testing.T) {
	t.Setenv("YTMG_TEST_KEY", "value")
	if got := getEnv("YTMG_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	os.Unsetenv("YTMG_TEST_KEY")
	if got := getEnv("YTMG_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

// TestNewSearchService checks the provider switch, in particular that an
// unrecognized name reports the ytmusic fallback as the effective
// provider rather than echoing the requested one.
func TestNewSearchService(t *testing.T) {
	for _, name := range []string{"ytmusic", "ytvideo", "aggregate"} {
		svc, got := newSearchService(name)
		if svc == nil || got != name {
			t.Errorf("newSearchService(%q) = (%T, %q)", name, svc, got)
		}
	}
	svc, got := newSearchService("bogus")
	if got != "ytmusic" {
		t.Fatalf("expected ytmusic fallback, got %q", got)
	}
	if _, ok := svc.(*ytmusic.Client); !ok {
		t.Fatalf("expected ytmusic client fallback, got %T", svc)
	}
}
