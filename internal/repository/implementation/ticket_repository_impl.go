package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/mapper"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TicketMapper
}

func NewTicketRepository(db *gorm.DB) contract.TicketRepository {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewTicketMapper(),
	}
}

func (r *TicketRepositoryImpl) Upsert(ctx context.Context, ticket *entity.Ticket) error {
	if ticket.Id == uuid.Nil {
		ticket.Id = uuid.New()
	}
	m := r.mapper.ToModel(ticket)

	// ON CONFLICT (entity_id) DO UPDATE for the ticket fields only.
	// Embedding columns stay untouched so a refetch does not wipe the
	// vectors computed by the consumer.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ticket_id", "title", "description", "escalated",
			"resolution_description", "message", "priority",
			"location_name", "floor_name", "affect_patient_care",
			"confirmed_resolution", "tier_queue_name", "created_date",
			"last_modified",
			"affected_user_domain", "affected_user_company",
			"affected_user_department", "affected_user_title",
			"assigned_to_user_domain", "assigned_to_user_company",
			"assigned_to_user_department", "assigned_to_user_title",
			"resolved_by_user_domain", "resolved_by_user_company",
			"resolved_by_user_department", "resolved_by_user_title",
			"analyst_comments", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *TicketRepositoryImpl) FindByTicketId(ctx context.Context, ticketId string) (*entity.Ticket, error) {
	var m model.AthenaTicket
	err := r.db.WithContext(ctx).Where("LOWER(ticket_id) = LOWER(?)", ticketId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TicketRepositoryImpl) FindByEntityId(ctx context.Context, entityId string) (*entity.Ticket, error) {
	var m model.AthenaTicket
	err := r.db.WithContext(ctx).Where("entity_id = ?", entityId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TicketRepositoryImpl) UpdateEmbeddings(ctx context.Context, entityId string, title []float32, description []float32) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.AthenaTicket{}).
		Where("entity_id = ?", entityId).
		Updates(map[string]interface{}{
			"title_embedding":       pgvector.NewVector(title),
			"description_embedding": pgvector.NewVector(description),
			"processed_at":          &now,
		}).Error
}

func (r *TicketRepositoryImpl) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []*model.AthenaTicket
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Ticket, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TicketRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AthenaTicket{}).Count(&count).Error
	return count, err
}

func (r *TicketRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, excludeTicketId string) ([]*entity.ScoredTicket, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (description_embedding <=> query) yields the similarity.
	type result struct {
		model.AthenaTicket
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("athena_tickets").
		Select("athena_tickets.*, 1 - (description_embedding <=> ?) as similarity", queryVector).
		Where("description_embedding IS NOT NULL").
		Where("LOWER(ticket_id) <> LOWER(?)", excludeTicketId).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredTicket, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredTicket{
			Ticket:     r.mapper.ToEntity(&res.AthenaTicket),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
