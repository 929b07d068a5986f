package entity

import (
	"time"

	"github.com/google/uuid"
)

type OnenotePage struct {
	Id           uuid.UUID
	PageTitle    string
	PageBodyText string
	IsSummary    bool
	PageDatetime string
	WorkbookName string
	SectionName  string
	Embedding    []float32
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type OnenoteChunk struct {
	Id           uuid.UUID
	ChunkTitle   string
	ChunkText    string
	ChunkIndex   int
	NotebookName string
	SectionName  string
	Embedding    []float32
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ScoredChunk pairs a chunk with its hybrid-search relevance score.
type ScoredChunk struct {
	Chunk      *OnenoteChunk
	Similarity float64
}
