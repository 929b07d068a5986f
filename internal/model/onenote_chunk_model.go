package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type OnenoteChunk struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkTitle   string          `gorm:"type:varchar(500)"`
	ChunkText    string          `gorm:"type:text"`
	ChunkIndex   int             `gorm:"default:0"` // 0-based index for ordering within a page
	NotebookName string          `gorm:"type:varchar(255);index"`
	SectionName  string          `gorm:"type:varchar(255);index"`
	Embedding    pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (OnenoteChunk) TableName() string {
	return "onenote_chunks"
}
