// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

/*
Package supervisor runs Paddock's long-lived services under a suture v4 tree.

	RootSupervisor ("paddock")
	├── DataSupervisor ("data-layer")
	│   └── SeasonPrefetchService (warms results.prefetch_seasons, then exits)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A prefetch failure never touches the API layer. A season the prefetch could
not load is cached empty and reported as 404 until the process restarts.

Supervisor events are logged through sutureslog onto the zerolog-backed
slog.Logger from logging.NewSlogLogger.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewSeasonPrefetchService(seasons, cfg.Results.PrefetchSeasons))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
