// Package transcript attempts to retrieve episode transcripts and write them
// to disk. Transcript sources are platform-specific and inconsistent, so
// retrieval is a pluggable Strategy; the pipeline itself never needs to know
// where the text came from.
package transcript

import (
	"context"

	"podcast-transcripts/pkg/domain"
)

// Strategy attempts to extract transcript text for an episode. Strategies
// report the outcome in the result's Status field rather than returning an
// error: Unavailable is the normal case for most podcasts, Error carries a
// cause in result.Err.
type Strategy interface {
	Extract(ctx context.Context, ep domain.Episode) domain.TranscriptResult
}

// Unavailable is the base strategy: it always reports that no transcript
// source exists. Use it when no platform-specific extractor applies.
type Unavailable struct{}

// Extract always returns an unavailable result.
func (Unavailable) Extract(_ context.Context, ep domain.Episode) domain.TranscriptResult {
	return domain.TranscriptResult{
		Episode: ep,
		Status:  domain.TranscriptUnavailable,
	}
}

// Chain tries strategies in order and returns the first found transcript.
// A strategy that errors does not stop later strategies from being tried;
// if nothing is found, the last error (if any) is reported, otherwise the
// result is unavailable.
type Chain []Strategy

// Extract runs each strategy in order until one finds a transcript.
func (c Chain) Extract(ctx context.Context, ep domain.Episode) domain.TranscriptResult {
	last := domain.TranscriptResult{
		Episode: ep,
		Status:  domain.TranscriptUnavailable,
	}

	for _, s := range c {
		res := s.Extract(ctx, ep)
		if res.Status == domain.TranscriptFound {
			return res
		}
		if res.Status == domain.TranscriptError {
			last = res
		}
	}

	return last
}
