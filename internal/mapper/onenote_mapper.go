package mapper

import (
	"time"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"

	"github.com/pgvector/pgvector-go"
)

type OnenoteMapper struct{}

func NewOnenoteMapper() *OnenoteMapper {
	return &OnenoteMapper{}
}

func (m *OnenoteMapper) PageToEntity(p *model.OnenotePage) *entity.OnenotePage {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		ts := p.UpdatedAt
		updatedAt = &ts
	}

	return &entity.OnenotePage{
		Id:           p.Id,
		PageTitle:    p.PageTitle,
		PageBodyText: p.PageBodyText,
		IsSummary:    p.IsSummary,
		PageDatetime: p.PageDatetime,
		WorkbookName: p.WorkbookName,
		SectionName:  p.SectionName,
		Embedding:    p.Embedding.Slice(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *OnenoteMapper) PageToModel(p *entity.OnenotePage) *model.OnenotePage {
	if p == nil {
		return nil
	}

	mdl := &model.OnenotePage{
		Id:           p.Id,
		PageTitle:    p.PageTitle,
		PageBodyText: p.PageBodyText,
		IsSummary:    p.IsSummary,
		PageDatetime: p.PageDatetime,
		WorkbookName: p.WorkbookName,
		SectionName:  p.SectionName,
		CreatedAt:    p.CreatedAt,
	}
	if len(p.Embedding) > 0 {
		mdl.Embedding = pgvector.NewVector(p.Embedding)
	}
	if p.UpdatedAt != nil {
		mdl.UpdatedAt = *p.UpdatedAt
	}
	return mdl
}

func (m *OnenoteMapper) ChunkToEntity(c *model.OnenoteChunk) *entity.OnenoteChunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		ts := c.UpdatedAt
		updatedAt = &ts
	}

	return &entity.OnenoteChunk{
		Id:           c.Id,
		ChunkTitle:   c.ChunkTitle,
		ChunkText:    c.ChunkText,
		ChunkIndex:   c.ChunkIndex,
		NotebookName: c.NotebookName,
		SectionName:  c.SectionName,
		Embedding:    c.Embedding.Slice(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *OnenoteMapper) ChunkToModel(c *entity.OnenoteChunk) *model.OnenoteChunk {
	if c == nil {
		return nil
	}

	mdl := &model.OnenoteChunk{
		Id:           c.Id,
		ChunkTitle:   c.ChunkTitle,
		ChunkText:    c.ChunkText,
		ChunkIndex:   c.ChunkIndex,
		NotebookName: c.NotebookName,
		SectionName:  c.SectionName,
		CreatedAt:    c.CreatedAt,
	}
	if len(c.Embedding) > 0 {
		mdl.Embedding = pgvector.NewVector(c.Embedding)
	}
	if c.UpdatedAt != nil {
		mdl.UpdatedAt = *c.UpdatedAt
	}
	return mdl
}
