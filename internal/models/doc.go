// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

/*
Package models defines data structures for the Paddock application.

Key Components:

  - ResultRow: one classified finisher in one session of one round
  - SeasonTable: the immutable, ordered set of ResultRows for one season
  - DriverStats / ConstructorStats: aggregated standings
  - CumulativeMatrix: round-by-round running points per driver
  - APIResponse: standardized API response wrapper

SeasonTable values are shared through the season cache. They expose rows
only through copying accessors so that derived views cannot corrupt the
cached data.
*/
package models
