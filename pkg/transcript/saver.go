package transcript

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"podcast-transcripts/pkg/domain"
)

// DefaultDelay is the pause between per-episode extraction attempts, to be
// respectful to the remote host.
const DefaultDelay = time.Second

// headerDateLayout formats the publish date in saved transcript headers.
const headerDateLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// Summary reports the outcome of a save run.
type Summary struct {
	Saved       int
	Unavailable int
	Failed      int
}

// Saver runs a transcript Strategy over a list of episodes and writes found
// transcripts to the output directory, one text file per episode.
type Saver struct {
	strategy Strategy
	outDir   string
	limiter  *rate.Limiter
}

// NewSaver creates a Saver writing into outDir, pacing extraction attempts
// at one per delay. A delay <= 0 falls back to DefaultDelay.
func NewSaver(strategy Strategy, outDir string, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{
		strategy: strategy,
		outDir:   outDir,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
	}
}

// SaveAll processes every episode in order. A single episode's failure never
// aborts the batch: unavailable and errored episodes are logged and counted,
// and processing continues. The only fatal errors are context cancellation
// and failure to create the output directory.
func (s *Saver) SaveAll(ctx context.Context, episodes []domain.Episode) (Summary, error) {
	var sum Summary

	if len(episodes) == 0 {
		return sum, nil
	}

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output directory: %w", err)
	}

	usedNames := make(map[string]bool)

	for i, ep := range episodes {
		if err := s.limiter.Wait(ctx); err != nil {
			return sum, err
		}

		log.Printf("Processing episode %d/%d: %s", i+1, len(episodes), ep.Title)

		result := s.strategy.Extract(ctx, ep)
		switch result.Status {
		case domain.TranscriptFound:
			filename := s.pickFilename(ep, usedNames)
			if err := s.write(filename, result); err != nil {
				log.Printf("Failed to save transcript for %q: %v", ep.Title, err)
				sum.Failed++
				continue
			}
			log.Printf("Downloaded: %s", filename)
			sum.Saved++
		case domain.TranscriptUnavailable:
			log.Printf("No transcript available for: %s", ep.Title)
			sum.Unavailable++
		case domain.TranscriptError:
			log.Printf("Transcript extraction failed for %q: %v", ep.Title, result.Err)
			sum.Failed++
		}
	}

	return sum, nil
}

// pickFilename derives a deterministic file name from the episode title.
// Colliding titles get the publish date appended, then a sequence index,
// so an episode is never silently overwritten within a run.
func (s *Saver) pickFilename(ep domain.Episode, used map[string]bool) string {
	base := slugify(ep.Title)

	name := base + ".txt"
	if used[name] && !ep.PublishedAt.IsZero() {
		name = fmt.Sprintf("%s-%s.txt", base, ep.PublishedAt.Format("2006-01-02"))
	}
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s-%d.txt", base, i)
	}

	used[name] = true
	return name
}

// write composes the header block plus transcript body and writes it to disk.
func (s *Saver) write(filename string, result domain.TranscriptResult) error {
	ep := result.Episode

	date := "Unknown"
	if !ep.PublishedAt.IsZero() {
		date = ep.PublishedAt.Format(headerDateLayout)
	}
	pageURL := ep.PageURL
	if pageURL == "" {
		pageURL = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Episode: %s\n", ep.Title)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "URL: %s\n", pageURL)
	b.WriteString(strings.Repeat("-", 50) + "\n\n")
	b.WriteString(result.Text)
	b.WriteString("\n")

	path := filepath.Join(s.outDir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
