// Package transcriptservice wires the pipeline stages together: Apple
// Podcasts URL → iTunes lookup → RSS feed → per-episode transcript saving.
package transcriptservice

import (
	"context"
	"fmt"
	"log"
	"time"

	"podcast-transcripts/pkg/apple"
	"podcast-transcripts/pkg/feed"
	"podcast-transcripts/pkg/httpclient"
	"podcast-transcripts/pkg/transcript"
)

// Config holds the knobs for a download run.
type Config struct {
	// OutputDir is where transcript files are written.
	OutputDir string

	// Delay is the pause between per-episode extraction attempts.
	Delay time.Duration

	// MaxEpisodes limits how many feed items are processed. <= 0 means no limit.
	MaxEpisodes int

	// Timeout bounds each outbound HTTP request. <= 0 uses the default.
	Timeout time.Duration

	// Strategy overrides transcript extraction. When nil, the default chain
	// (JSON-LD, then linked documents) is used.
	Strategy transcript.Strategy
}

// Service runs the transcript download pipeline for one podcast.
type Service struct {
	lookup *apple.LookupClient
	feeds  *feed.Enumerator
	saver  *transcript.Saver
	max    int
}

// New creates a Service from the given configuration.
func New(cfg Config) *Service {
	client := httpclient.New(cfg.Timeout)

	strategy := cfg.Strategy
	if strategy == nil {
		strategy = transcript.Chain{
			transcript.NewJSONLD(client),
			transcript.NewLinkedDocument(client),
		}
	}

	return &Service{
		lookup: apple.NewLookupClient(client),
		feeds:  feed.NewEnumerator(client),
		saver:  transcript.NewSaver(strategy, cfg.OutputDir, cfg.Delay),
		max:    cfg.MaxEpisodes,
	}
}

// SetLookupBaseURL overrides the iTunes lookup endpoint. Used by tests.
func (s *Service) SetLookupBaseURL(baseURL string) {
	s.lookup.SetBaseURL(baseURL)
}

// Run executes the full pipeline for one Apple Podcasts URL. Stage failures
// (invalid URL, lookup failure, unreachable feed) are fatal and returned;
// per-episode transcript failures are contained by the saver and only affect
// the returned summary.
func (s *Service) Run(ctx context.Context, appleURL string) (transcript.Summary, error) {
	var sum transcript.Summary

	ref, err := apple.ExtractPodcastID(appleURL)
	if err != nil {
		return sum, fmt.Errorf("parse podcast URL: %w", err)
	}

	meta, err := s.lookup.Lookup(ctx, ref)
	if err != nil {
		return sum, fmt.Errorf("look up podcast %s: %w", ref.ID, err)
	}
	log.Printf("Podcast: %s", meta.Title)
	if meta.Author != "" {
		log.Printf("By: %s", meta.Author)
	}
	log.Printf("RSS feed URL: %s", meta.FeedURL)

	episodes, err := s.feeds.Episodes(ctx, meta.FeedURL)
	if err != nil {
		return sum, fmt.Errorf("enumerate feed: %w", err)
	}
	log.Printf("Found %d episodes", len(episodes))

	if s.max > 0 && len(episodes) > s.max {
		episodes = episodes[:s.max]
	}

	sum, err = s.saver.SaveAll(ctx, episodes)
	if err != nil {
		return sum, fmt.Errorf("save transcripts: %w", err)
	}

	log.Printf("Download complete. Successful: %d, Unavailable: %d, Failed: %d",
		sum.Saved, sum.Unavailable, sum.Failed)
	return sum, nil
}
