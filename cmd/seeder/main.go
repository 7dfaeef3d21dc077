package main

import (
	"context"
	"flag"

	"scout/internal/adapters/config"
	"scout/internal/adapters/postgres"
	pgrepo "scout/internal/repository/postgres"
	devseeds "scout/internal/seeds/dev"
	"scout/pkg/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Validate configuration without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	log := logger.Get()
	log.Infow("Starting seeder", "dry_run", *dryRun, "database", cfg.Postgres.Database)

	client, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	if *dryRun {
		log.Info("Dry-run mode: database reachable, nothing written")
		return
	}

	repo := pgrepo.NewResearchRepository(client.DB())

	if err := devseeds.SeedResearch(context.Background(), repo); err != nil {
		log.Fatalf("Failed to seed research records: %v", err)
	}

	log.Info("Seeding completed")
}
