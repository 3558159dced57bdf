// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package database provides DuckDB access for Marquee.

DuckDB serves two roles:

  - Artifact reader: ArtifactSource scans the title index, term-weight
    triplets, vocabulary and optional reduced matrix with read_parquet or
    read_csv_auto, chosen by file extension. The recommendation engine copies
    the results into its own structures at startup and never queries DuckDB
    again.
  - Catalog store: LoadCatalog materializes the movie table, and DB implements
    catalog.Store for the release, title and actor lookups.

The default database path is ":memory:". Insertion order is preserved so the
title index keeps file order, which is matrix row order.

Usage:

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	src := database.NewArtifactSource(db, cfg.Artifacts)
	if _, err := db.LoadCatalog(ctx, cfg.Artifacts.CatalogPath); err != nil {
	    return err
	}
*/
package database
