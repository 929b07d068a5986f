package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type OnenotePage struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PageTitle    string          `gorm:"type:varchar(500)"`
	PageBodyText string          `gorm:"type:text"`
	IsSummary    bool            `gorm:"default:false"`
	PageDatetime string          `gorm:"type:varchar(100)"` // kept verbatim as found in the export, "N/A" when absent
	WorkbookName string          `gorm:"type:varchar(255);index"`
	SectionName  string          `gorm:"type:varchar(255);index"`
	Embedding    pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (OnenotePage) TableName() string {
	return "onenote_pages"
}
