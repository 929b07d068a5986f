package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/implementation"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	ticketRepo := implementation.NewTicketRepository(gormDB)
	pageRepo := implementation.NewOnenotePageRepository(gormDB)
	chunkRepo := implementation.NewOnenoteChunkRepository(gormDB)

	// Verify Data Access (implies tables and columns exist)
	t.Run("Check Ticket Repository", func(t *testing.T) {
		count, err := ticketRepo.Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Ticket count: %d", count)
	})

	t.Run("Check OneNote Repositories", func(t *testing.T) {
		pageCount, err := pageRepo.Count(context.Background())
		assert.NoError(t, err)
		chunkCount, err := chunkRepo.Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Page count: %d, chunk count: %d", pageCount, chunkCount)
	})

	t.Run("Upsert And Similarity Search", func(t *testing.T) {
		ctx := context.Background()

		vec := make([]float32, 1024)
		vec[0] = 1

		suffix := uuid.New().String()
		ticket := &entity.Ticket{
			EntityId:             "it-" + suffix,
			TicketId:             "IR9999999",
			Title:                "Integration test ticket",
			Description:          "Created by the integration suite",
			TitleEmbedding:       vec,
			DescriptionEmbedding: vec,
		}

		require.NoError(t, ticketRepo.Upsert(ctx, ticket))

		stored, err := ticketRepo.FindByEntityId(ctx, ticket.EntityId)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "IR9999999", stored.TicketId)

		// Upsert again with a changed title keeps the same row.
		ticket.Title = "Integration test ticket (updated)"
		require.NoError(t, ticketRepo.Upsert(ctx, ticket))

		updated, err := ticketRepo.FindByEntityId(ctx, ticket.EntityId)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Integration test ticket (updated)", updated.Title)

		// An identical query vector ranks the ticket first unless it is
		// the excluded one.
		scored, err := ticketRepo.SearchSimilar(ctx, vec, 5, "SR0000000")
		require.NoError(t, err)
		if assert.NotEmpty(t, scored) {
			assert.InDelta(t, 1.0, scored[0].Similarity, 1e-3)
		}

		excluded, err := ticketRepo.SearchSimilar(ctx, vec, 5, "IR9999999")
		require.NoError(t, err)
		for _, st := range excluded {
			assert.NotEqual(t, "IR9999999", st.Ticket.TicketId)
		}
	})
}
