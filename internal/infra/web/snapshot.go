package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

const (
	DefaultMaxPageBytes = 2 << 20
	DefaultMaxTextChars = 6000
	defaultTimeout      = 10 * time.Second
	userAgent           = "Mozilla/5.0 (compatible; BrandVoiceAudit/1.0)"
)

// Fetcher captures the readable parts of a web page for inline analysis.
type Fetcher struct {
	HTTP         *http.Client
	MaxPageBytes int64
	MaxTextChars int
}

func NewFetcher(timeout time.Duration, maxPageBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxPageBytes <= 0 {
		maxPageBytes = DefaultMaxPageBytes
	}
	return &Fetcher{
		HTTP:         &http.Client{Timeout: timeout},
		MaxPageBytes: maxPageBytes,
		MaxTextChars: DefaultMaxTextChars,
	}
}

// Snapshot downloads url (https is assumed when no scheme is given) and
// renders its OpenGraph metadata, title, headings and paragraphs as text.
func (f *Fetcher) Snapshot(ctx context.Context, url string) (string, error) {
	target := url
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
		return "", fmt.Errorf("unsupported content type: %s", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(body)); err != nil {
		return "", fmt.Errorf("failed to parse OpenGraph: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := render(og, doc)
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", target)
	}
	return truncate(text, f.MaxTextChars), nil
}

func render(og *opengraph.OpenGraph, doc *goquery.Document) string {
	var b strings.Builder
	line := func(label, value string) {
		value = squash(value)
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	title := og.Title
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	desc := og.Description
	if desc == "" {
		desc, _ = doc.Find(`meta[name="description"]`).Attr("content")
	}
	line("Site name", og.SiteName)
	line("Title", title)
	line("Description", desc)

	doc.Find("script, style, noscript").Remove()
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		line("Heading", s.Text())
	})
	doc.Find("p, li").Each(func(_ int, s *goquery.Selection) {
		if t := squash(s.Text()); len(t) >= 20 {
			b.WriteString(t)
			b.WriteByte('\n')
		}
	})
	return strings.TrimSpace(b.String())
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
