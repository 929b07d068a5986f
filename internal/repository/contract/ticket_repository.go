package contract

import (
	"context"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
)

type TicketRepository interface {
	// Upsert inserts the ticket or, when its entity_id already exists,
	// replaces the stored ticket fields (embeddings are preserved unless
	// set on the incoming entity).
	Upsert(ctx context.Context, ticket *entity.Ticket) error
	FindByTicketId(ctx context.Context, ticketId string) (*entity.Ticket, error)
	FindByEntityId(ctx context.Context, entityId string) (*entity.Ticket, error)
	// UpdateEmbeddings writes both vectors and stamps processed_at.
	UpdateEmbeddings(ctx context.Context, entityId string, title []float32, description []float32) error
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Ticket, error)
	Count(ctx context.Context) (int64, error)
	// SearchSimilar ranks stored tickets by cosine similarity of their
	// description embeddings against the query vector, excluding the
	// ticket the query came from.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, excludeTicketId string) ([]*entity.ScoredTicket, error)
}
