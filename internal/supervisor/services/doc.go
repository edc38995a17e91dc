// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package services wraps filmgraph components as suture.Service values.
//
//   - HTTPServerService adapts http.Server's blocking ListenAndServe to a
//     context-aware Serve with graceful shutdown.
//   - GraphService watches the data version and refreshes the engine's
//     graph metrics and result cache when records change.
package services
