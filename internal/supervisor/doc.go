// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived CineMatch services under suture v4.

The tree looks like:

	RootSupervisor ("cinematch")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    ├── SessionSweeperService
	    └── CacheJanitorService

Crashed services restart with suture's backoff. Supervisor events are
logged through sutureslog, so callers pass a *slog.Logger (see
logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, ":8080", 10*time.Second))
	tree.AddMaintenanceService(services.NewSessionSweeperService(sessions, time.Minute))
	return tree.Serve(ctx)
*/
package supervisor
