package main

import (
	"context"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/migrations"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies the versioned migrations with the Atlas CLI. Without -dir the migrations embedded
// in the binary are used.
func main() {
	dir := flag.String("dir", "", "migration directory overriding the embedded one")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var source fs.FS = migrations.FS
	if *dir != "" {
		source = os.DirFS(*dir)
	}
	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(source))
	if err != nil {
		slog.Error("failed to prepare migration directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), *atlasBin)
	if err != nil {
		slog.Error("failed to create atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: cfg.DB.BuildDSN(),
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
}
