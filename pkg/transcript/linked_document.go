package transcript

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"

	"podcast-transcripts/pkg/domain"
	"podcast-transcripts/pkg/httpclient"
)

var (
	errNoTranscriptLink      = errors.New("no transcript link found on episode page")
	errUnsupportedTranscript = errors.New("unsupported transcript document type")
	errEmptyTranscriptText   = errors.New("extracted transcript text is empty")
)

// LinkedDocument extracts transcripts that episode pages link to as separate
// documents (PDF, TXT, or a dedicated transcript HTML page). This is the
// common pattern for shows that publish transcripts through editing services.
type LinkedDocument struct {
	client *httpclient.Client
}

// NewLinkedDocument creates a linked-document strategy using the shared HTTP client.
func NewLinkedDocument(client *httpclient.Client) *LinkedDocument {
	return &LinkedDocument{client: client}
}

// Extract fetches the episode page, finds the most transcript-like link on
// it, downloads the linked document, and extracts its text.
func (l *LinkedDocument) Extract(ctx context.Context, ep domain.Episode) domain.TranscriptResult {
	if ep.PageURL == "" {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptUnavailable}
	}

	body, _, err := l.client.FetchBytes(ctx, ep.PageURL)
	if err != nil {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptError, Err: err}
	}

	href, err := findTranscriptURL(string(body))
	if err != nil {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptUnavailable}
	}

	transcriptURL, err := resolveAgainst(ep.PageURL, href)
	if err != nil {
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptError, Err: err}
	}

	text, err := l.fetchDocumentText(ctx, transcriptURL)
	if err != nil {
		if errors.Is(err, errUnsupportedTranscript) {
			return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptUnavailable}
		}
		return domain.TranscriptResult{Episode: ep, Status: domain.TranscriptError, Err: err}
	}

	return domain.TranscriptResult{
		Episode: ep,
		Text:    text,
		Status:  domain.TranscriptFound,
	}
}

// fetchDocumentText downloads the transcript document and extracts plain
// text based on the URL extension, falling back to the Content-Type header.
func (l *LinkedDocument) fetchDocumentText(ctx context.Context, transcriptURL string) (string, error) {
	body, contentType, err := l.client.FetchBytes(ctx, transcriptURL)
	if err != nil {
		return "", err
	}

	var text string
	switch strings.ToLower(path.Ext(urlPath(transcriptURL))) {
	case ".txt":
		text = string(body)
	case ".pdf":
		text, err = textFromPDF(body)
	default:
		lct := strings.ToLower(contentType)
		switch {
		case strings.Contains(lct, "text/plain"):
			text = string(body)
		case strings.Contains(lct, "application/pdf"):
			text, err = textFromPDF(body)
		case strings.Contains(lct, "text/html"):
			text, err = textFromHTML(body)
		default:
			return "", errUnsupportedTranscript
		}
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyTranscriptText
	}
	return text, nil
}

// findTranscriptURL locates the most transcript-like link in episode page
// HTML. Candidates are ranked:
//  1. anchor text mentions "transcript" and href looks like a document (.pdf/.txt)
//  2. href looks like a document
//  3. anchor text mentions "transcript"
func findTranscriptURL(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	type candidate struct {
		href string
	}

	var high, med, low []candidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		docLike := isTranscriptDocumentHref(href)
		textLike := strings.Contains(strings.ToLower(strings.TrimSpace(sel.Text())), "transcript")

		c := candidate{href: href}
		switch {
		case docLike && textLike:
			high = append(high, c)
		case docLike:
			med = append(med, c)
		case textLike:
			low = append(low, c)
		}
	})

	switch {
	case len(high) > 0:
		return high[0].href, nil
	case len(med) > 0:
		return med[0].href, nil
	case len(low) > 0:
		return low[0].href, nil
	default:
		return "", errNoTranscriptLink
	}
}

func isTranscriptDocumentHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return hasTranscriptExt(href)
	}
	return hasTranscriptExt(u.Path)
}

func hasTranscriptExt(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

func resolveAgainst(baseURL, ref string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

func textFromPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf body")
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func textFromHTML(data []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(article.TextContent), nil
}
