package domain

import "time"

// PodcastRef identifies a podcast extracted from an Apple Podcasts URL.
// It is the input to the iTunes lookup step and is not used afterwards.
type PodcastRef struct {
	// ID is the numeric Apple Podcasts collection id (the digits after "/id").
	ID string

	// SourceURL is the original URL the id was extracted from.
	SourceURL string
}

// PodcastMetadata is the show-level information returned by the iTunes
// Lookup API for a podcast id.
type PodcastMetadata struct {
	ID      string
	Title   string
	Author  string
	FeedURL string

	// PageURL is the podcast's Apple Podcasts page (collectionViewUrl), when available.
	PageURL string
}

// Episode represents a single item from a podcast's RSS feed.
// Episodes preserve feed order (by RSS convention, newest first).
type Episode struct {
	Title       string
	PublishedAt time.Time
	PageURL     string
	AudioURL    string
	Description string
}
