// Package yourei retrieves example sentences from yourei.jp.
package yourei

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/japaniel/yourei/pkg/excerpt"
)

const (
	// DefaultBaseURL is the example sentence site.
	DefaultBaseURL = "https://yourei.jp"

	maxBodySize = 10 * 1024 * 1024 // 10 MB limit for HTML content
)

// ErrBodyTooLarge is returned when the page exceeds the size limit.
var ErrBodyTooLarge = errors.New("yourei: response body exceeds size limit")

// StatusError is returned for a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yourei: %s returned status %d", e.URL, e.Code)
}

// Query selects a window of examples for a word.
type Query struct {
	Word string
	// Number of examples to request. Values below 1 mean 1.
	Number int
	// Offset is the number of examples to skip.
	Offset int
}

// Client fetches result pages. A single request is made per call; errors are
// returned to the caller, never retried.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	// Logger is used for informational messages (request URLs). nil means no logging.
	Logger *log.Logger
}

// NewClient returns a Client for DefaultBaseURL with a 30 second timeout.
func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: DefaultBaseURL,
	}
}

// URL returns the result page address for q.
func (c *Client) URL(q Query) (string, error) {
	if strings.TrimSpace(q.Word) == "" {
		return "", fmt.Errorf("word must be non-empty")
	}
	if q.Offset < 0 {
		return "", fmt.Errorf("offset must not be negative, got %d", q.Offset)
	}
	number := q.Number
	if number < 1 {
		number = 1
	}

	base, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + "/" + url.PathEscape(q.Word))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	v := url.Values{}
	v.Set("n", strconv.Itoa(number))
	// The site counts from 1.
	v.Set("start", strconv.Itoa(q.Offset+1))
	base.RawQuery = v.Encode()
	return base.String(), nil
}

// Fetch downloads the result page for q.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	pageURL, err := c.URL(q)
	if err != nil {
		return nil, err
	}
	if c.Logger != nil {
		c.Logger.Printf("Fetching %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode}
	}
	if resp.ContentLength > maxBodySize {
		return nil, ErrBodyTooLarge
	}

	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// Search fetches the result page for q and extracts its excerpts.
func (c *Client) Search(ctx context.Context, q Query) ([]excerpt.Excerpt, error) {
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	examples, err := Extract(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if c.Logger != nil {
		c.Logger.Printf("Extracted %d examples", len(examples))
	}
	return examples, nil
}
