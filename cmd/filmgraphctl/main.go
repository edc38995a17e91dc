// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Command filmgraphctl works with a filmgraph DuckDB store directly, without
// the HTTP server.
//
//	filmgraphctl seed
//	filmgraphctl import --file records.json
//	filmgraphctl recommend --user 1 --k 3
//	filmgraphctl analyze --user 1
//	filmgraphctl stats --user 1 --limit 5
//	filmgraphctl counts
//
// Configuration is read the same way as the server (CONFIG_PATH, config.yaml,
// environment). Output is JSON on stdout; logs go to stderr.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
