package contract

import (
	"context"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
)

type OnenotePageRepository interface {
	Create(ctx context.Context, page *entity.OnenotePage) error
	WorkbookExists(ctx context.Context, workbookName string) (bool, error)
	DeleteByWorkbook(ctx context.Context, workbookName string) error
	Count(ctx context.Context) (int64, error)
}

type OnenoteChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.OnenoteChunk) error
	NotebookExists(ctx context.Context, notebookName string) (bool, error)
	SectionExists(ctx context.Context, sectionName string) (bool, error)
	DeleteByNotebook(ctx context.Context, notebookName string) error
	DeleteBySection(ctx context.Context, sectionName string) error
	Count(ctx context.Context) (int64, error)
	// SearchHybrid ranks chunks by cosine similarity of their embeddings,
	// optionally restricted to chunks containing any of the keywords.
	SearchHybrid(ctx context.Context, embedding []float32, limit int, keywords []string) ([]*entity.ScoredChunk, error)
}
