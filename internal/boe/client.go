// Package boe fetches documents, daily summaries, pages, and search results
// from the public web endpoints of the Spanish official gazette.
package boe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public gazette origin.
const DefaultBaseURL = "https://www.boe.es"

// Response holds a fetched upstream body and its declared content type.
type Response struct {
	URL         string
	Body        []byte
	ContentType string
	FetchedAt   time.Time
}

// Text returns the body coerced to a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Client issues GET requests against the gazette origin.
type Client struct {
	http        *http.Client
	baseURL     string
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// New creates a Client from the given configuration.
func New(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		http:        &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxBodySizeBytes(),
		logger:      logger.With("system", "boe"),
	}
}

// DocumentURL returns the XML endpoint for a document identifier.
func (c *Client) DocumentURL(id string) string {
	return c.baseURL + "/diario_boe/xml.php?id=" + url.QueryEscape(id)
}

// SummaryURL returns the XML endpoint for the daily summary of fecha (YYYYMMDD).
func (c *Client) SummaryURL(fecha string) string {
	return c.baseURL + "/diario_boe/xml.php?fecha=" + url.QueryEscape(fecha)
}

// PageURL returns the HTML page for a document identifier.
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/buscar/doc.php?id=" + url.QueryEscape(id)
}

// SearchURL returns the title search endpoint for query.
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set("campo[0]", "TIT")
	v.Set("dato[0]", query)
	v.Set("operador[0]", "and")
	v.Set("page_hits", "50")
	v.Set("accion", "Buscar")
	return c.baseURL + "/buscar/boe.php?" + v.Encode()
}

// ResolveURL prefixes a reference extracted from a document with the origin.
func (c *Client) ResolveURL(ref string) string {
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// Fetch retrieves target and returns its body. Non-2xx statuses return
// ErrUpstreamStatus and bodies over the configured limit return ErrBodyTooLarge.
func (c *Client) Fetch(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s %d", ErrUpstreamStatus, target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: %s", ErrBodyTooLarge, target)
	}

	c.logger.Debug(
		"upstream fetched",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return &Response{
		URL:         target,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FetchedAt:   time.Now().UTC(),
	}, nil
}
