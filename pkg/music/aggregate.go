// Package music provides interfaces for interacting with search providers.
// This file implements an aggregation service which combines multiple
// providers to broaden search results.
//
// Error handling surfaces an error when all configured services fail.
// Failures of individual providers are swallowed as long as at least one
// succeeds.
package music

import (
	"context"
	"sync"
)

// Aggregator queries each configured SearchService and merges the results.
// It is useful when the application wants to search YouTube Music and the
// general YouTube index simultaneously.
type Aggregator struct {
	Services []SearchService
}

// SearchTrack returns the union of results from all underlying services.
// Duplicates are removed based on video ID. Failure of one service does
// not prevent results from others. When every service fails the first
// error is returned; when every service succeeds but nothing matches,
// ErrNoResults is returned.
func (a Aggregator) SearchTrack(ctx context.Context, q string) ([]Track, error) {
	if len(a.Services) == 0 {
		return nil, ErrNoResults
	}
	type result struct {
		tracks []Track
		err    error
	}
	var wg sync.WaitGroup
	resCh := make(chan result, len(a.Services))
	for _, svc := range a.Services {
		svc := svc
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracks, err := svc.SearchTrack(ctx, q)
			resCh <- result{tracks: tracks, err: err}
		}()
	}
	wg.Wait()
	close(resCh)
	seen := make(map[string]struct{})
	var merged []Track
	var firstErr error
	successes := 0
	for r := range resCh {
		if r.err != nil {
			// An empty result set is not a provider failure.
			if r.err == ErrNoResults {
				successes++
				continue
			}
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		successes++
		for _, t := range r.tracks {
			if _, ok := seen[t.VideoID]; !ok {
				seen[t.VideoID] = struct{}{}
				merged = append(merged, t)
			}
		}
	}
	if successes == 0 && firstErr != nil {
		return nil, firstErr
	}
	if len(merged) == 0 {
		return nil, ErrNoResults
	}
	return merged, nil
}
