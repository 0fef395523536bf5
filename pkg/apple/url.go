// Package apple resolves Apple Podcasts URLs to podcast metadata via the
// public iTunes Lookup API.
package apple

import (
	"errors"
	"fmt"
	"regexp"

	"podcast-transcripts/pkg/domain"
)

// ErrInvalidURL is returned when a URL does not contain an Apple Podcasts
// "/id<digits>" segment.
var ErrInvalidURL = errors.New("no podcast id found in URL")

// Apple Podcasts URL format: https://podcasts.apple.com/us/podcast/name/id123456789
var podcastIDPattern = regexp.MustCompile(`/id(\d+)`)

// ExtractPodcastID extracts the numeric podcast id from an Apple Podcasts URL.
func ExtractPodcastID(podcastURL string) (domain.PodcastRef, error) {
	match := podcastIDPattern.FindStringSubmatch(podcastURL)
	if match == nil {
		return domain.PodcastRef{}, fmt.Errorf("%w: %s", ErrInvalidURL, podcastURL)
	}

	return domain.PodcastRef{
		ID:        match[1],
		SourceURL: podcastURL,
	}, nil
}
