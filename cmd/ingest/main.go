package main

import (
	"context"
	"flag"
	"log"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/bootstrap"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/config"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/database"
)

func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.Ingest.OnenoteDataDir, "root of the OneNote export tree (<dir>/<notebook>/<section>.docx)")
	notebook := flag.String("notebook", "", "ingest only this notebook; with -force its existing records are deleted first")
	force := flag.Bool("force", false, "re-ingest records that already exist")
	flag.Parse()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	log.Printf("Ingesting OneNote exports from %s (force=%v)...", *dir, *force)
	if *notebook != "" {
		err = container.OnenoteIngestService.IngestNotebook(context.Background(), *dir, *notebook, *force)
	} else {
		err = container.OnenoteIngestService.IngestDirectory(context.Background(), *dir, *force)
	}
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	log.Println("✅ Ingest complete.")
}
