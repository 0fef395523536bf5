// Package feed downloads a podcast RSS feed and turns it into an ordered
// list of episodes.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

var (
	// ErrFeedFetch wraps network/HTTP failures while downloading the feed.
	ErrFeedFetch = errors.New("failed to fetch feed")

	// ErrFeedParse wraps XML parsing failures.
	ErrFeedParse = errors.New("failed to parse feed")
)

// Enumerator fetches and parses RSS/Atom podcast feeds.
type Enumerator struct {
	client *httpclient.Client
	parser *gofeed.Parser
}

// NewEnumerator creates an Enumerator using the shared HTTP client.
func NewEnumerator(client *httpclient.Client) *Enumerator {
	return &Enumerator{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Episodes downloads the feed at feedURL and returns its items in feed order
// (by RSS convention, newest first). A feed with zero items returns an empty
// slice, not an error.
func (e *Enumerator) Episodes(ctx context.Context, feedURL string) ([]domain.Episode, error) {
	body, _, err := e.client.FetchBytes(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	parsed, err := e.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedParse, err)
	}

	episodes := make([]domain.Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		episodes = append(episodes, episodeFromItem(item))
	}

	return episodes, nil
}

func episodeFromItem(item *gofeed.Item) domain.Episode {
	ep := domain.Episode{
		Title:       strings.TrimSpace(item.Title),
		PageURL:     strings.TrimSpace(item.Link),
		PublishedAt: publishedAt(item),
		Description: strings.TrimSpace(item.Description),
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			ep.AudioURL = enc.URL
			break
		}
	}

	return ep
}

// publishedAt prefers gofeed's parsed date, then falls back to parsing the
// raw pubDate string. Items with no usable date get the zero time rather
// than failing the feed.
func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if raw := strings.TrimSpace(item.Published); raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
