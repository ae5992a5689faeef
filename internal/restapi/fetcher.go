// Package restapi re-reads cache entries over the REST API of the sync
// server.
//
// The websocket stream marks entries stale when the server announces a
// change without sending the new value. The [Fetcher] resolves such entries
// by fetching GET {base}/api/{segments...} and writing the response into the
// same cache the sync client updates.
package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/metrics"
	"github.com/MKhiriev/go-sync-client/internal/utils"
	"github.com/MKhiriev/go-sync-client/models"
)

// Cache is the subset of the local cache the fetcher reads and writes.
type Cache interface {
	StaleKeys() []models.CacheKey
	Set(key models.CacheKey, value any)
}

// TokenFunc returns the identity token attached to each request as a bearer
// token. An empty token sends the request unauthenticated.
type TokenFunc func() string

// Fetcher loads cache values from the REST API.
type Fetcher struct {
	client  *utils.HTTPClient
	cache   Cache
	token   TokenFunc
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewFetcher normalises cfg.Address into the base URL and returns a Fetcher
// writing into cache. metrics may be nil.
func NewFetcher(cfg config.ClientAPI, cache Cache, token TokenFunc, m *metrics.Metrics, log *logger.Logger) (*Fetcher, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, err
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	if token == nil {
		token = func() string { return "" }
	}

	return &Fetcher{
		client:  client,
		cache:   cache,
		token:   token,
		metrics: m,
		logger:  log.ForComponent("restapi"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidAddress)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// resourcePath maps a cache key to its REST path, escaping every segment.
func resourcePath(key models.CacheKey) string {
	parts := make([]string, 0, len(key)+1)
	parts = append(parts, "/api")
	for _, seg := range key {
		parts = append(parts, url.PathEscape(models.Key(seg).Path()))
	}
	return strings.Join(parts, "/")
}

// Fetch returns the decoded JSON value stored at key on the server.
func (f *Fetcher) Fetch(ctx context.Context, key models.CacheKey) (any, error) {
	if !key.Valid() {
		return nil, ErrInvalidKey
	}

	req := f.client.R().SetContext(ctx)
	if token := f.token(); token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(resourcePath(key))
	if err != nil {
		return nil, fmt.Errorf("fetch %s request: %w", key, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var value any
	if len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
		}
	}
	return value, nil
}

// Refresh fetches key and overwrites the cached value, clearing its stale
// mark. On failure the stale entry is left as is.
func (f *Fetcher) Refresh(ctx context.Context, key models.CacheKey) error {
	value, err := f.Fetch(ctx, key)
	f.metrics.StaleRefetch(err == nil)
	if err != nil {
		return err
	}

	f.cache.Set(key, value)
	return nil
}

// RefreshStale refreshes every stale entry and returns how many succeeded.
// Failures do not stop the pass; they are joined into the returned error.
func (f *Fetcher) RefreshStale(ctx context.Context) (int, error) {
	var (
		refreshed int
		errs      []error
	)

	for _, key := range f.cache.StaleKeys() {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		if err := f.Refresh(ctx, key); err != nil {
			f.logger.Warn().Err(err).
				Str("func", "Fetcher.RefreshStale").
				Str("key", key.String()).
				Msg("failed to refresh stale entry")
			errs = append(errs, fmt.Errorf("refresh %s: %w", key, err))
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		f.logger.Debug().Str("func", "Fetcher.RefreshStale").Int("refreshed", refreshed).Msg("stale entries refreshed")
	}
	return refreshed, errors.Join(errs...)
}
