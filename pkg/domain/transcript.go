package domain

// TranscriptStatus is the outcome of a transcript extraction attempt for a
// single episode.
type TranscriptStatus int

const (
	// TranscriptFound means transcript text was extracted.
	TranscriptFound TranscriptStatus = iota

	// TranscriptUnavailable means no transcript source was found for the
	// episode. This is the normal case for most podcasts and is not an error.
	TranscriptUnavailable

	// TranscriptError means an extraction attempt failed (network error,
	// unreadable document, etc.).
	TranscriptError
)

// String returns a human-readable status name for logging.
func (s TranscriptStatus) String() string {
	switch s {
	case TranscriptFound:
		return "found"
	case TranscriptUnavailable:
		return "unavailable"
	case TranscriptError:
		return "error"
	default:
		return "unknown"
	}
}

// TranscriptResult is the terminal record produced for each episode. Found
// results carry the transcript text; error results carry the cause.
type TranscriptResult struct {
	Episode Episode
	Text    string
	Status  TranscriptStatus
	Err     error
}
