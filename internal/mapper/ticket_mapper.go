package mapper

import (
	"encoding/json"
	"time"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) ToEntity(t *model.AthenaTicket) *entity.Ticket {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Ticket{
		Id:                     t.Id,
		EntityId:               t.EntityId,
		TicketId:               t.TicketId,
		Title:                  t.Title,
		Description:            t.Description,
		Escalated:              t.Escalated,
		ResolutionDescription:  t.ResolutionDescription,
		Message:                t.Message,
		Priority:               t.Priority,
		LocationName:           t.LocationName,
		FloorName:              t.FloorName,
		AffectPatientCare:      t.AffectPatientCare,
		ConfirmedResolution:    t.ConfirmedResolution,
		TierQueueName:          t.TierQueueName,
		CreatedDate:            t.CreatedDate,
		LastModified:           t.LastModified,
		AffectedUserDomain:     t.AffectedUserDomain,
		AffectedUserCompany:    t.AffectedUserCompany,
		AffectedUserDepartment: t.AffectedUserDepartment,
		AffectedUserTitle:      t.AffectedUserTitle,
		AssignedToUserDomain:   t.AssignedToUserDomain,
		AssignedToUserCompany:  t.AssignedToUserCompany,
		AssignedToUserDept:     t.AssignedToUserDept,
		AssignedToUserTitle:    t.AssignedToUserTitle,
		ResolvedByUserDomain:   t.ResolvedByUserDomain,
		ResolvedByUserCompany:  t.ResolvedByUserCompany,
		ResolvedByUserDept:     t.ResolvedByUserDept,
		ResolvedByUserTitle:    t.ResolvedByUserTitle,
		AnalystComments:        json.RawMessage(t.AnalystComments),
		TitleEmbedding:         t.TitleEmbedding.Slice(),
		DescriptionEmbedding:   t.DescriptionEmbedding.Slice(),
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              updatedAt,
		ProcessedAt:            t.ProcessedAt,
	}
}

func (m *TicketMapper) ToModel(t *entity.Ticket) *model.AthenaTicket {
	if t == nil {
		return nil
	}

	mdl := &model.AthenaTicket{
		Id:                     t.Id,
		EntityId:               t.EntityId,
		TicketId:               t.TicketId,
		Title:                  t.Title,
		Description:            t.Description,
		Escalated:              t.Escalated,
		ResolutionDescription:  t.ResolutionDescription,
		Message:                t.Message,
		Priority:               t.Priority,
		LocationName:           t.LocationName,
		FloorName:              t.FloorName,
		AffectPatientCare:      t.AffectPatientCare,
		ConfirmedResolution:    t.ConfirmedResolution,
		TierQueueName:          t.TierQueueName,
		CreatedDate:            t.CreatedDate,
		LastModified:           t.LastModified,
		AffectedUserDomain:     t.AffectedUserDomain,
		AffectedUserCompany:    t.AffectedUserCompany,
		AffectedUserDepartment: t.AffectedUserDepartment,
		AffectedUserTitle:      t.AffectedUserTitle,
		AssignedToUserDomain:   t.AssignedToUserDomain,
		AssignedToUserCompany:  t.AssignedToUserCompany,
		AssignedToUserDept:     t.AssignedToUserDept,
		AssignedToUserTitle:    t.AssignedToUserTitle,
		ResolvedByUserDomain:   t.ResolvedByUserDomain,
		ResolvedByUserCompany:  t.ResolvedByUserCompany,
		ResolvedByUserDept:     t.ResolvedByUserDept,
		ResolvedByUserTitle:    t.ResolvedByUserTitle,
		AnalystComments:        datatypes.JSON(t.AnalystComments),
		CreatedAt:              t.CreatedAt,
		ProcessedAt:            t.ProcessedAt,
	}

	if len(t.TitleEmbedding) > 0 {
		mdl.TitleEmbedding = pgvector.NewVector(t.TitleEmbedding)
	}
	if len(t.DescriptionEmbedding) > 0 {
		mdl.DescriptionEmbedding = pgvector.NewVector(t.DescriptionEmbedding)
	}
	if t.UpdatedAt != nil {
		mdl.UpdatedAt = *t.UpdatedAt
	}

	return mdl
}
