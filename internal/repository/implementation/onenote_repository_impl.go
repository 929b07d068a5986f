package implementation

import (
	"context"
	"strings"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/mapper"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type OnenotePageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OnenoteMapper
}

func NewOnenotePageRepository(db *gorm.DB) contract.OnenotePageRepository {
	return &OnenotePageRepositoryImpl{
		db:     db,
		mapper: mapper.NewOnenoteMapper(),
	}
}

func (r *OnenotePageRepositoryImpl) Create(ctx context.Context, page *entity.OnenotePage) error {
	if page.Id == uuid.Nil {
		page.Id = uuid.New()
	}
	m := r.mapper.PageToModel(page)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*page = *r.mapper.PageToEntity(m)
	return nil
}

func (r *OnenotePageRepositoryImpl) WorkbookExists(ctx context.Context, workbookName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OnenotePage{}).
		Where("workbook_name = ?", workbookName).
		Count(&count).Error
	return count > 0, err
}

func (r *OnenotePageRepositoryImpl) DeleteByWorkbook(ctx context.Context, workbookName string) error {
	return r.db.WithContext(ctx).
		Where("workbook_name = ?", workbookName).
		Delete(&model.OnenotePage{}).Error
}

func (r *OnenotePageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OnenotePage{}).Count(&count).Error
	return count, err
}

type OnenoteChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OnenoteMapper
}

func NewOnenoteChunkRepository(db *gorm.DB) contract.OnenoteChunkRepository {
	return &OnenoteChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewOnenoteMapper(),
	}
}

func (r *OnenoteChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.OnenoteChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.OnenoteChunk, len(chunks))
	for i, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		models[i] = r.mapper.ChunkToModel(c)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ChunkToEntity(m)
	}
	return nil
}

func (r *OnenoteChunkRepositoryImpl) NotebookExists(ctx context.Context, notebookName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OnenoteChunk{}).
		Where("notebook_name = ?", notebookName).
		Count(&count).Error
	return count > 0, err
}

func (r *OnenoteChunkRepositoryImpl) SectionExists(ctx context.Context, sectionName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OnenoteChunk{}).
		Where("section_name = ?", sectionName).
		Count(&count).Error
	return count > 0, err
}

func (r *OnenoteChunkRepositoryImpl) DeleteByNotebook(ctx context.Context, notebookName string) error {
	return r.db.WithContext(ctx).
		Where("notebook_name = ?", notebookName).
		Delete(&model.OnenoteChunk{}).Error
}

func (r *OnenoteChunkRepositoryImpl) DeleteBySection(ctx context.Context, sectionName string) error {
	return r.db.WithContext(ctx).
		Where("section_name = ?", sectionName).
		Delete(&model.OnenoteChunk{}).Error
}

func (r *OnenoteChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OnenoteChunk{}).Count(&count).Error
	return count, err
}

func (r *OnenoteChunkRepositoryImpl) SearchHybrid(ctx context.Context, embedding []float32, limit int, keywords []string) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.OnenoteChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("onenote_chunks").
		Select("onenote_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL")

	// Keyword leg of the hybrid search: any keyword hit in title or text
	// keeps the chunk; the vector leg orders the survivors.
	if len(keywords) > 0 {
		var clauses []string
		var args []interface{}
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			clauses = append(clauses, "(chunk_text ILIKE ? OR chunk_title ILIKE ?)")
			pattern := "%" + kw + "%"
			args = append(args, pattern, pattern)
		}
		if len(clauses) > 0 {
			query = query.Where(strings.Join(clauses, " OR "), args...)
		}
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ChunkToEntity(&res.OnenoteChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
