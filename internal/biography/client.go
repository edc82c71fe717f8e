// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package biography looks up driver portraits and summaries on Wikipedia
// through the MediaWiki action API.
package biography

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/paddock/internal/cache"
	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/upstream"
)

// ErrNoPage is returned when no search query matched a page.
var ErrNoPage = errors.New("no matching encyclopedia page")

// maxImages bounds how many images of a page are considered.
const maxImages = 50

// Client fetches driver biographies and caches them for the configured TTL.
type Client struct {
	http    *upstream.Client
	apiURL  string
	timeout time.Duration
	bios    *cache.Cache[*models.DriverBio]
}

// NewClient creates a biography client for cfg. Close releases the cache sweeper.
func NewClient(cfg config.BiographyConfig) *Client {
	return newClientWith(cfg, upstream.NewClient(upstream.Config{
		Name:              "wikipedia",
		RequestsPerSecond: 10,
		Burst:             5,
		MaxRetries:        2,
		RetryBaseDelay:    time.Second,
		UserAgent:         cfg.UserAgent,
		Breaker:           upstream.DefaultBreakerSettings(),
	}))
}

func newClientWith(cfg config.BiographyConfig, http *upstream.Client) *Client {
	return &Client{
		http:    http,
		apiURL:  strings.TrimRight(cfg.BaseURL, "/") + "/w/api.php",
		timeout: cfg.Timeout,
		bios:    cache.New[*models.DriverBio](cfg.CacheTTL),
	}
}

// Close stops the cache sweeper.
func (c *Client) Close() {
	c.bios.Close()
}

// Lookup returns the biography of a driver. It never fails: when no page is
// found, or the lookup errors, the result carries a fallback description and
// no image. Found and not-found results are cached; errors are not.
func (c *Client) Lookup(ctx context.Context, name string) *models.DriverBio {
	key := cache.NormalizeKey(name)
	if bio, ok := c.bios.Get(key); ok {
		metrics.BiographyLookups.WithLabelValues("cached").Inc()
		return copyBio(bio)
	}

	bio, err := c.lookup(ctx, name)
	switch {
	case err == nil:
		metrics.BiographyLookups.WithLabelValues("found").Inc()
	case errors.Is(err, ErrNoPage):
		metrics.BiographyLookups.WithLabelValues("not_found").Inc()
		logging.Ctx(ctx).Info().Str("driver", name).Msg("No biography page found")
		bio = &models.DriverBio{Description: notFoundDescription(name)}
	default:
		metrics.BiographyLookups.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("driver", name).Msg("Biography lookup failed")
		return &models.DriverBio{Description: "An error occurred while fetching the driver's biography."}
	}

	c.bios.Set(key, bio)
	return copyBio(bio)
}

func notFoundDescription(name string) string {
	return fmt.Sprintf("Could not find a definitive biography for %s.", name)
}

func copyBio(b *models.DriverBio) *models.DriverBio {
	out := *b
	return &out
}

func (c *Client) lookup(ctx context.Context, name string) (*models.DriverBio, error) {
	title, err := c.findPage(ctx, name)
	if err != nil {
		return nil, err
	}

	extract, pageURL, err := c.summary(ctx, title)
	if err != nil {
		return nil, err
	}

	// A page without usable images still has a biography.
	images, err := c.images(ctx, title)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("Page image lookup failed")
	}

	if extract == "" {
		extract = notFoundDescription(name)
	}
	return &models.DriverBio{
		Title:       title,
		Description: extract,
		ImageURL:    SelectBestImage(images, name),
		PageURL:     pageURL,
	}, nil
}

// findPage tries progressively broader searches and returns the top title of
// the first that matches.
func (c *Client) findPage(ctx context.Context, name string) (string, error) {
	queries := []string{
		name + " Formula 1 driver",
		name + " racing driver",
		name,
	}
	for _, q := range queries {
		params := url.Values{
			"list":     {"search"},
			"srsearch": {q},
			"srlimit":  {"1"},
		}
		var resp searchResponse
		if err := c.query(ctx, params, &resp); err != nil {
			return "", fmt.Errorf("search %q: %w", q, err)
		}
		if len(resp.Query.Search) > 0 {
			return resp.Query.Search[0].Title, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNoPage)
}

// summary returns the plain-text lead section and canonical URL of a page.
func (c *Client) summary(ctx context.Context, title string) (string, string, error) {
	params := url.Values{
		"prop":        {"extracts|info"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"inprop":      {"url"},
		"redirects":   {"1"},
		"titles":      {title},
	}
	var resp pagesResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return "", "", fmt.Errorf("summary %q: %w", title, err)
	}
	for _, p := range resp.Query.Pages {
		if !p.Missing {
			return strings.TrimSpace(p.Extract), p.FullURL, nil
		}
	}
	return "", "", fmt.Errorf("summary %q: %w", title, ErrNoPage)
}

// images returns the file URLs embedded in a page, ordered by file title.
func (c *Client) images(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"generator": {"images"},
		"gimlimit":  {fmt.Sprint(maxImages)},
		"prop":      {"imageinfo"},
		"iiprop":    {"url"},
		"redirects": {"1"},
		"titles":    {title},
	}
	var resp pagesResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("images %q: %w", title, err)
	}

	pages := resp.Query.Pages
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Title < pages[j].Title })

	var urls []string
	for _, p := range pages {
		for _, info := range p.ImageInfo {
			if info.URL != "" {
				urls = append(urls, info.URL)
			}
		}
	}
	return urls, nil
}

// query performs one MediaWiki action=query request.
func (c *Client) query(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	return c.http.GetJSON(ctx, c.apiURL+"?"+params.Encode(), c.timeout, out)
}

// BreakerState reports the Wikipedia circuit breaker state.
func (c *Client) BreakerState() string {
	return c.http.BreakerState()
}
