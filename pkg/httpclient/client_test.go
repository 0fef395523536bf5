package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchBytes(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := New(0)
	body, contentType, err := client.FetchBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchBytes returned error: %v", err)
	}

	if string(body) != "hello" {
		t.Errorf("body = %q, want %q", body, "hello")
	}
	if contentType != "text/plain" {
		t.Errorf("content type = %q, want %q", contentType, "text/plain")
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("expected browser-like User-Agent, got %q", gotUA)
	}
}

func TestFetchBytes_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(time.Second)
	_, _, err := client.FetchBytes(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}
}

func TestFetchBytes_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(time.Second)
	_, _, err := client.FetchBytes(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
