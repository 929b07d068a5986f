package main

import (
	"log"
	"os"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/database"

	"github.com/joho/godotenv"
)

// setupSQL runs before AutoMigrate: extensions AutoMigrate cannot create
// itself. Failures here are warnings since the extension may already be
// installed by a role with more privileges.
var setupSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS vector;`,
}

// indexSQL runs after AutoMigrate: ANN indexes on the embedding columns.
// Column names must match what GORM derives from the model fields.
var indexSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_onenote_pages_embedding ON onenote_pages USING hnsw (embedding vector_cosine_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_onenote_chunks_embedding ON onenote_chunks USING hnsw (embedding vector_cosine_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_athena_tickets_title_embedding ON athena_tickets USING hnsw (title_embedding vector_cosine_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_athena_tickets_description_embedding ON athena_tickets USING hnsw (description_embedding vector_cosine_ops);`,
}

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 3 Tables...")

	models := []interface{}{
		&model.OnenotePage{},
		&model.OnenoteChunk{},
		&model.AthenaTicket{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Post-Migration: vector indexes. Similarity search without them
	// degrades to sequential scans, so a failed create aborts the run.
	log.Println("Step 3: Creating vector indexes...")

	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to create index: %v (statement: %s)", err, sql)
		}
	}

	log.Println("✅ Migration complete.")
}
