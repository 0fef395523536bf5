package apple

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

// DefaultLookupURL is the public iTunes Lookup API endpoint.
const DefaultLookupURL = "https://itunes.apple.com/lookup"

var (
	// ErrPodcastNotFound is returned when the lookup succeeds but the results
	// array is empty (unknown or delisted podcast id).
	ErrPodcastNotFound = errors.New("podcast not found")

	// ErrNoFeedURL is returned when the lookup result has no RSS feed URL
	// (discontinued show, or feed hosted outside the directory).
	ErrNoFeedURL = errors.New("podcast has no RSS feed URL")
)

// APIError reports a non-200 response from the lookup API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lookup API returned status %d", e.StatusCode)
}

// LookupClient queries the iTunes Lookup API for podcast metadata.
type LookupClient struct {
	client  *httpclient.Client
	baseURL string
}

// NewLookupClient creates a LookupClient using the shared HTTP client.
func NewLookupClient(client *httpclient.Client) *LookupClient {
	return &LookupClient{
		client:  client,
		baseURL: DefaultLookupURL,
	}
}

// SetBaseURL overrides the lookup endpoint. Used by tests.
func (c *LookupClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	CollectionID      int64  `json:"collectionId"`
	CollectionName    string `json:"collectionName"`
	ArtistName        string `json:"artistName"`
	FeedURL           string `json:"feedUrl"`
	CollectionViewURL string `json:"collectionViewUrl"`
}

// Lookup resolves a podcast ref to show metadata, including the RSS feed URL.
func (c *LookupClient) Lookup(ctx context.Context, ref domain.PodcastRef) (domain.PodcastMetadata, error) {
	lookupURL := fmt.Sprintf("%s?id=%s&entity=podcast", c.baseURL, url.QueryEscape(ref.ID))

	resp, err := c.client.Get(ctx, lookupURL)
	if err != nil {
		return domain.PodcastMetadata{}, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.PodcastMetadata{}, &APIError{StatusCode: resp.StatusCode}
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.PodcastMetadata{}, fmt.Errorf("decode lookup response: %w", err)
	}

	if parsed.ResultCount == 0 || len(parsed.Results) == 0 {
		return domain.PodcastMetadata{}, fmt.Errorf("%w: id %s", ErrPodcastNotFound, ref.ID)
	}

	result := parsed.Results[0]
	if result.FeedURL == "" {
		return domain.PodcastMetadata{}, fmt.Errorf("%w: id %s", ErrNoFeedURL, ref.ID)
	}

	return domain.PodcastMetadata{
		ID:      ref.ID,
		Title:   result.CollectionName,
		Author:  result.ArtistName,
		FeedURL: result.FeedURL,
		PageURL: result.CollectionViewURL,
	}, nil
}
