// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging provides the process-wide zerolog logger for Marquee.

Call Init once from main with the values from config.LoggingConfig. Before
that, a JSON logger at info level writes to stderr.

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Str("path", cfg.Artifacts.MatrixPath).Msg("Loading feature matrix")

Every line carries service=marquee, plus environment when configured.
Components take a zerolog.Logger by value, usually from WithComponent:

	svc := services.NewCacheService(engine, cfg, logging.WithComponent("supervisor"))

HTTP handlers use Ctx so every line carries the request_id assigned by the
router middleware:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Catalog query failed")

SlogHandler bridges slog for libraries that need a *slog.Logger, such as the
sutureslog event hook used by the supervisor tree.

Always terminate event chains with Msg or Send, otherwise nothing is written.
*/
package logging
