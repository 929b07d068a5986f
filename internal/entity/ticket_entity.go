package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	Id                     uuid.UUID
	EntityId               string
	TicketId               string
	Title                  string
	Description            string
	Escalated              string
	ResolutionDescription  string
	Message                string
	Priority               string
	LocationName           string
	FloorName              string
	AffectPatientCare      string
	ConfirmedResolution    string
	TierQueueName          string
	CreatedDate            string
	LastModified           string
	AffectedUserDomain     string
	AffectedUserCompany    string
	AffectedUserDepartment string
	AffectedUserTitle      string
	AssignedToUserDomain   string
	AssignedToUserCompany  string
	AssignedToUserDept     string
	AssignedToUserTitle    string
	ResolvedByUserDomain   string
	ResolvedByUserCompany  string
	ResolvedByUserDept     string
	ResolvedByUserTitle    string
	AnalystComments        json.RawMessage
	TitleEmbedding         []float32
	DescriptionEmbedding   []float32
	CreatedAt              time.Time
	UpdatedAt              *time.Time
	ProcessedAt            *time.Time
}

// ScoredTicket pairs a ticket with its cosine similarity to a query vector.
type ScoredTicket struct {
	Ticket     *Ticket
	Similarity float64
}
