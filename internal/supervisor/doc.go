// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package supervisor runs the long-lived filmgraph services under a
// suture v4 supervisor tree.
//
// The tree has two layers so a failing background task cannot take the HTTP
// server down with it:
//
//	filmgraph
//	├── data-layer   graph refresher
//	└── api-layer    HTTP server
//
// Supervisor events are logged through sutureslog using the zerolog-backed
// slog handler from the logging package. Services live in the services
// subpackage.
package supervisor
