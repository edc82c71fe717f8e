// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package cache

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/metrics"
	"github.com/tomtom215/paddock/internal/models"
)

// LoadFunc produces the table for a season. It must not return an error;
// results.Pipeline.Load satisfies it.
type LoadFunc func(ctx context.Context, season int) *models.SeasonTable

// SeasonCache memoizes one SeasonTable per season.
type SeasonCache struct {
	load  LoadFunc
	group singleflight.Group

	mu     sync.RWMutex
	tables map[int]*models.SeasonTable

	fetches atomic.Int64
}

// NewSeasonCache creates an empty cache backed by load.
func NewSeasonCache(load LoadFunc) *SeasonCache {
	return &SeasonCache{
		load:   load,
		tables: make(map[int]*models.SeasonTable),
	}
}

// Get returns the table for season, loading it on first use. Concurrent
// callers for an uncached season wait on a single load and receive the same
// table. The load is detached from ctx's cancellation so one caller giving up
// does not fail the others.
//
// Get never returns nil.
func (c *SeasonCache) Get(ctx context.Context, season int) *models.SeasonTable {
	if table, ok := c.Peek(season); ok {
		metrics.RecordSeasonCacheLookup(true)
		return table
	}
	metrics.RecordSeasonCacheLookup(false)

	v, _, shared := c.group.Do(strconv.Itoa(season), func() (interface{}, error) {
		// A load that finished between Peek and Do has already stored its table.
		if table, ok := c.Peek(season); ok {
			return table, nil
		}

		c.fetches.Add(1)
		logging.Ctx(ctx).Info().Int("season", season).Msg("Season cache miss, loading")

		table := c.load(context.WithoutCancel(ctx), season)
		if table == nil {
			table = models.EmptySeasonTable(season)
		}

		c.mu.Lock()
		c.tables[season] = table
		entries := len(c.tables)
		c.mu.Unlock()

		metrics.SeasonCacheEntries.Set(float64(entries))
		return table, nil
	})

	if shared {
		logging.Ctx(ctx).Debug().Int("season", season).Msg("Joined in-flight season load")
	}
	return v.(*models.SeasonTable)
}

// Peek returns the cached table without loading.
func (c *SeasonCache) Peek(season int) (*models.SeasonTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.tables[season]
	return table, ok
}

// Seasons returns the cached season keys in ascending order.
func (c *SeasonCache) Seasons() []int {
	c.mu.RLock()
	seasons := make([]int, 0, len(c.tables))
	for season := range c.tables {
		seasons = append(seasons, season)
	}
	c.mu.RUnlock()

	sort.Ints(seasons)
	return seasons
}

// Len returns the number of cached seasons.
func (c *SeasonCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Fetches returns how many loads the cache has started.
func (c *SeasonCache) Fetches() int64 {
	return c.fetches.Load()
}
