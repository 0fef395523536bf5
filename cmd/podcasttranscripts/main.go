package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"podcast-transcripts/pkg/transcriptservice"
)

func main() {
	// Load .env if present; environment variables may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var (
		outDir  = flag.String("out", envOr("TRANSCRIPTS_OUTPUT_DIR", "transcripts"), "Directory to write transcript files into")
		delay   = flag.Duration("delay", envDurationOr("TRANSCRIPTS_DELAY", time.Second), "Pause between per-episode requests")
		max     = flag.Int("max", 0, "Max episodes to process (<=0 means no limit)")
		timeout = flag.Duration("timeout", 10*time.Second, "Timeout for each outbound HTTP request")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: podcasttranscripts [flags] <apple-podcasts-url>")
		fmt.Println("\nExample:")
		fmt.Println("  podcasttranscripts -out ./transcripts https://podcasts.apple.com/us/podcast/some-show/id1234567890")
		os.Exit(1)
	}
	podcastURL := flag.Arg(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received interrupt signal, cancelling...")
		cancel()
	}()

	service := transcriptservice.New(transcriptservice.Config{
		OutputDir:   *outDir,
		Delay:       *delay,
		MaxEpisodes: *max,
		Timeout:     *timeout,
	})

	start := time.Now()
	log.Printf("Downloading transcripts for %s (out=%s, delay=%s)", podcastURL, *outDir, *delay)
	if _, err := service.Run(ctx, podcastURL); err != nil {
		log.Fatalf("Transcript download failed: %v", err)
	}
	log.Printf("Done. Duration: %s", time.Since(start))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return fallback
}
