// Package search relays queries to an external HTML search engine.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/duckcorp/portal/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 5 << 20
)

// Config describes the upstream engine.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Relay fetches result pages. It never retries; any failure is reported as
// domain.ErrUpstream.
type Relay struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewRelay(cfg Config) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Relay{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Search returns the raw HTML body for query.
func (r *Relay) Search(ctx context.Context, query string) ([]byte, error) {
	target := r.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}
	return body, nil
}
