// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Package services adapts Paddock components to suture.Service.
//
// Every service implements Serve(ctx) error and String() string. Serve blocks
// until ctx is canceled or the service finishes. A service that has nothing
// left to do returns suture.ErrDoNotRestart so the supervisor drops it.
package services
