package transcriptservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podcast-transcripts/pkg/apple"
	"podcast-transcripts/pkg/feed"
)

// newPodcastBackend fakes the whole remote side: iTunes lookup, RSS feed,
// episode pages, and transcript files, all on one test server.
func newPodcastBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"resultCount": 1,
			"results": [{
				"collectionName": "Integration Test Show",
				"artistName": "Test Host",
				"feedUrl": "%s/feed.xml"
			}]
		}`, server.URL)
	})

	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Integration Test Show</title>
		<item>
			<title>With Transcript</title>
			<link>%s/episodes/1</link>
			<pubDate>Thu, 11 Dec 2025 00:00:00 GMT</pubDate>
		</item>
		<item>
			<title>Without Transcript</title>
			<link>%s/episodes/2</link>
			<pubDate>Thu, 04 Dec 2025 00:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`, server.URL, server.URL)
	})

	mux.HandleFunc("/episodes/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/transcripts/1.txt">Read the transcript</a></body></html>`)
	})
	mux.HandleFunc("/episodes/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Show notes without any transcript link.</p></body></html>`)
	})
	mux.HandleFunc("/transcripts/1.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "HOST: Thanks for joining us today.")
	})

	return server
}

func TestRun(t *testing.T) {
	server := newPodcastBackend(t)
	outDir := t.TempDir()

	svc := New(Config{
		OutputDir: outDir,
		Delay:     time.Millisecond,
		Timeout:   5 * time.Second,
	})
	svc.SetLookupBaseURL(server.URL + "/lookup")

	sum, err := svc.Run(context.Background(), "https://podcasts.apple.com/us/podcast/show/id1234567890")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if sum.Saved != 1 {
		t.Errorf("Saved = %d, want 1", sum.Saved)
	}
	if sum.Unavailable != 1 {
		t.Errorf("Unavailable = %d, want 1", sum.Unavailable)
	}
	if sum.Failed != 0 {
		t.Errorf("Failed = %d, want 0", sum.Failed)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "With-Transcript.txt"))
	if err != nil {
		t.Fatalf("reading saved transcript: %v", err)
	}
	content := string(data)
	if want := "Episode: With Transcript\n"; !strings.Contains(content, want) {
		t.Errorf("saved file missing %q:\n%s", want, content)
	}
	if want := "HOST: Thanks for joining us today."; !strings.Contains(content, want) {
		t.Errorf("saved file missing transcript body:\n%s", content)
	}
}

func TestRun_InvalidURL(t *testing.T) {
	svc := New(Config{OutputDir: t.TempDir(), Delay: time.Millisecond})

	_, err := svc.Run(context.Background(), "https://example.com/not-a-podcast")
	if !errors.Is(err, apple.ErrInvalidURL) {
		t.Fatalf("error = %v, want ErrInvalidURL", err)
	}
}

func TestRun_PodcastNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resultCount": 0, "results": []}`)
	}))
	defer server.Close()

	svc := New(Config{OutputDir: t.TempDir(), Delay: time.Millisecond})
	svc.SetLookupBaseURL(server.URL)

	_, err := svc.Run(context.Background(), "https://podcasts.apple.com/us/podcast/show/id999")
	if !errors.Is(err, apple.ErrPodcastNotFound) {
		t.Fatalf("error = %v, want ErrPodcastNotFound", err)
	}
}

func TestRun_FeedUnreachable(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"resultCount": 1, "results": [{"collectionName": "Show", "feedUrl": "%s/feed.xml"}]}`, server.URL)
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})

	svc := New(Config{OutputDir: t.TempDir(), Delay: time.Millisecond})
	svc.SetLookupBaseURL(server.URL + "/lookup")

	_, err := svc.Run(context.Background(), "https://podcasts.apple.com/us/podcast/show/id1")
	if !errors.Is(err, feed.ErrFeedFetch) {
		t.Fatalf("error = %v, want ErrFeedFetch", err)
	}
}

func TestRun_MaxEpisodes(t *testing.T) {
	server := newPodcastBackend(t)
	outDir := t.TempDir()

	svc := New(Config{
		OutputDir:   outDir,
		Delay:       time.Millisecond,
		MaxEpisodes: 1,
	})
	svc.SetLookupBaseURL(server.URL + "/lookup")

	sum, err := svc.Run(context.Background(), "https://podcasts.apple.com/us/podcast/show/id1234567890")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if total := sum.Saved + sum.Unavailable + sum.Failed; total != 1 {
		t.Errorf("processed %d episodes, want 1", total)
	}
}
