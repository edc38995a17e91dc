// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package logging provides the zerolog-based logger shared by every Filmgraph
component.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("addr", addr).Msg("server starting")
	logging.Ctx(ctx).Warn().Int("user_id", id).Msg("no neighbours")

Component loggers carry a "component" field:

	logger := logging.WithComponent("database")

# Request Correlation

The API assigns every request an ID and stores it in the request context.
Ctx(ctx) returns a logger carrying request_id and correlation_id fields when
they are present.

# slog Bridge

Libraries that log through log/slog (the suture supervisor via sutureslog)
receive NewSlogLogger(), which writes through the same zerolog backend.

# Field Names

time, level, message, error and caller are used consistently in JSON output.
*/
package logging
