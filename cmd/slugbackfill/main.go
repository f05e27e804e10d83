// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command slugbackfill assigns slugs to posts that predate slug support.
// Each affected post gets a slug derived from its title, suffixed where
// needed to stay unique. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/resristi/cms-api/internal/config"
	"github.com/resristi/cms-api/internal/store"
	"github.com/resristi/cms-api/internal/util"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing")
	flag.Parse()

	if err := run(*dryRun); err != nil {
		slog.Error("slug backfill failed", "error", err)
		os.Exit(1)
	}
}

func run(dryRun bool) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	queries := store.New(db)

	posts, err := queries.ListPostsMissingSlug(ctx)
	if err != nil {
		return fmt.Errorf("listing posts without slug: %w", err)
	}
	if len(posts) == 0 {
		slog.Info("no posts need a slug")
		return nil
	}

	updated := 0
	for _, post := range posts {
		base := util.Slugify(post.Title)
		if base == "" {
			slog.Warn("title yields no slug, skipping", "id", post.ID, "title", post.Title)
			continue
		}

		// The post's own ID is excluded so a half-finished earlier run
		// cannot collide with itself.
		slug, err := util.UniqueSlug(ctx, base, queries.SlugTaken, post.ID)
		if err != nil {
			return fmt.Errorf("resolving slug for post %s: %w", post.ID, err)
		}

		if dryRun {
			slog.Info("would assign slug", "id", post.ID, "title", post.Title, "slug", slug)
			continue
		}

		if err := queries.SetPostSlug(ctx, post.ID, slug); err != nil {
			return fmt.Errorf("setting slug for post %s: %w", post.ID, err)
		}
		slog.Info("assigned slug", "id", post.ID, "slug", slug)
		updated++
	}

	slog.Info("slug backfill complete", "candidates", len(posts), "updated", updated)
	return nil
}
