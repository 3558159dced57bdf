// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under a suture tree.

	marquee (root)
	├── maintenance-layer
	│   └── recommend-cache   purges expired memoized recommendations
	└── api-layer
	    └── http-server       chi router

Failed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog, which writes to log/slog; cmd/server hands it
logging.NewSlogLogger so the events end up in the zerolog stream.

The recommendation engine is not a service: it is built once before the tree
starts and startup fails if the build fails.

Service wrappers live in the services subpackage.
*/
package supervisor
