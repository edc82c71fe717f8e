// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package cache holds Paddock's in-process caches.
//
// SeasonCache memoizes one SeasonTable per season for the life of the
// process. Concurrent misses for the same season share one upstream fetch
// through golang.org/x/sync/singleflight, and empty tables are cached like
// any other so a season with no data is not re-fetched on every request.
// There is no eviction: a season that is still in progress keeps the results
// it had when first loaded until the process restarts.
//
// Cache is a generic TTL cache used for driver biographies.
package cache
