package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// AthenaTicket mirrors one ticket fetched from the Athena ITSM API.
// Title and description carry their own embeddings so both can be used
// for similarity search independently. ProcessedAt is nil until the
// embedding consumer has filled both vectors.
type AthenaTicket struct {
	Id                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityId               string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	TicketId               string          `gorm:"type:varchar(20);index"`
	Title                  string          `gorm:"type:text"`
	Description            string          `gorm:"type:text"`
	Escalated              string          `gorm:"type:varchar(20)"`
	ResolutionDescription  string          `gorm:"type:text"`
	Message                string          `gorm:"type:text"`
	Priority               string          `gorm:"type:varchar(50)"`
	LocationName           string          `gorm:"type:varchar(255)"`
	FloorName              string          `gorm:"type:varchar(255)"`
	AffectPatientCare      string          `gorm:"type:varchar(20)"`
	ConfirmedResolution    string          `gorm:"type:varchar(255)"`
	TierQueueName          string          `gorm:"type:varchar(255)"`
	CreatedDate            string          `gorm:"type:varchar(100)"`
	LastModified           string          `gorm:"type:varchar(100)"`
	AffectedUserDomain     string          `gorm:"type:varchar(255)"`
	AffectedUserCompany    string          `gorm:"type:varchar(255)"`
	AffectedUserDepartment string          `gorm:"type:varchar(255)"`
	AffectedUserTitle      string          `gorm:"type:varchar(255)"`
	AssignedToUserDomain   string          `gorm:"type:varchar(255)"`
	AssignedToUserCompany  string          `gorm:"type:varchar(255)"`
	AssignedToUserDept     string          `gorm:"column:assigned_to_user_department;type:varchar(255)"`
	AssignedToUserTitle    string          `gorm:"type:varchar(255)"`
	ResolvedByUserDomain   string          `gorm:"type:varchar(255)"`
	ResolvedByUserCompany  string          `gorm:"type:varchar(255)"`
	ResolvedByUserDept     string          `gorm:"column:resolved_by_user_department;type:varchar(255)"`
	ResolvedByUserTitle    string          `gorm:"type:varchar(255)"`
	AnalystComments        datatypes.JSON  `gorm:"type:jsonb"`
	TitleEmbedding         pgvector.Vector `gorm:"type:vector(1024)"`
	DescriptionEmbedding   pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt              time.Time       `gorm:"autoCreateTime"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime"`
	ProcessedAt            *time.Time
}

func (AthenaTicket) TableName() string {
	return "athena_tickets"
}
