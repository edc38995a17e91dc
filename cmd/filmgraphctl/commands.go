// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

func (c *cli) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				seeded, err := db.SeedDemoData(ctx)
				if err != nil {
					return err
				}
				counts, err := db.GetRecordCounts(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"seeded": seeded,
					"counts": counts,
				})
			})
		},
	}
}

func (c *cli) newImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert records from a JSON document",
		Long: `Upsert users, films, genres and interactions from a JSON document with
the keys users, films, genres, user_films, user_genres and ratings.
Use --file - to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := readRecords(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				if err := db.ImportRecords(ctx, records); err != nil {
					return err
				}
				counts, err := db.GetRecordCounts(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), counts)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON records file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readRecords decodes a records document from path, or from stdin when path is "-".
func readRecords(stdin io.Reader, path string) (*models.Records, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // path is an operator-supplied CLI argument
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var records models.Records
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return &records, nil
}

func (c *cli) newRecommendCmd() *cobra.Command {
	var (
		userID    int
		k         int
		topFilms  int
		topGenres int
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Compute recommendations for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("k") {
				k = c.cfg.Recommend.DefaultK
			}
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				engine, err := c.newEngine(db)
				if err != nil {
					return err
				}
				result, err := engine.Compute(ctx, recommend.Request{
					UserID:    userID,
					K:         k,
					TopFilms:  topFilms,
					TopGenres: topGenres,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "target user id")
	cmd.Flags().IntVarP(&k, "k", "k", 0, "neighbour count (default from configuration)")
	cmd.Flags().IntVar(&topFilms, "top-films", 0, "PageRank film list size (0 uses the configured default)")
	cmd.Flags().IntVar(&topGenres, "top-genres", 0, "PageRank genre list size (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) newAnalyzeCmd() *cobra.Command {
	var userID, k int
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print raw PageRank scores and similarity lists for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("k") {
				k = c.cfg.Recommend.DefaultK
			}
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				engine, err := c.newEngine(db)
				if err != nil {
					return err
				}
				analysis, err := engine.Analyze(ctx, userID, k)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), analysis)
			})
		},
	}
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "target user id")
	cmd.Flags().IntVarP(&k, "k", "k", 0, "neighbour count (default from configuration)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) newStatsCmd() *cobra.Command {
	var userID, limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "List recommendations served to a user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				stats, err := db.ListRecommendationStatistics(ctx, userID, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "user id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) newCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print record counts per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd, func(ctx context.Context, db *database.DB) error {
				counts, err := db.GetRecordCounts(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), counts)
			})
		},
	}
}
