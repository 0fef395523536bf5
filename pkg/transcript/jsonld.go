package transcript

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

// JSONLD extracts transcripts embedded as JSON-LD on episode pages. Some
// platforms publish a "transcript" property inside their
// <script type="application/ld+json"> structured data.
type JSONLD struct {
	client *httpclient.Client
}

// NewJSONLD creates a JSON-LD strategy using the shared HTTP client.
func NewJSONLD(client *httpclient.Client) *JSONLD {
	return &JSONLD{client: client}
}

// Extract fetches the episode page and looks for a transcript string in its
// JSON-LD blocks.
func (j *JSONLD) Extract(ctx context.Context, ep domain.Episode) domain.TranscriptResult {
	if ep.PageURL == "" {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptUnavailable}
	}

	body, _, err := j.client.FetchBytes(ctx, ep.PageURL)
	if err != nil {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptError, Err: err}
	}

	text := transcriptFromJSONLD(string(body))
	if text == "" {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptUnavailable}
	}

	return domain.TranscriptResult{
		Episode: ep,
		Text:    text,
		Status:  domain.TranscriptFound,
	}
}

// transcriptFromJSONLD scans every JSON-LD script block in the page for a
// top-level "transcript" string. Blocks that fail to decode are skipped.
func transcriptFromJSONLD(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return true
		}

		if text := transcriptValue(decoded); text != "" {
			found = text
			return false
		}
		return true
	})

	return found
}

// transcriptValue pulls a "transcript" string out of a decoded JSON-LD value.
// JSON-LD roots may be a single object or an array of objects.
func transcriptValue(decoded any) string {
	switch v := decoded.(type) {
	case map[string]any:
		if text, ok := v["transcript"].(string); ok {
			return strings.TrimSpace(text)
		}
	case []any:
		for _, entry := range v {
			if text := transcriptValue(entry); text != "" {
				return text
			}
		}
	}
	return ""
}
