package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/athena"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/events"
	pktNats "github.com/AnzorAslanukov/ServiceDeskHelper/pkg/nats"
)

type ITicketIngestService interface {
	// FetchAndStore pulls one ticket from the Athena API, upserts it and
	// queues it for embedding. Returns the stored entity.
	FetchAndStore(ctx context.Context, ticketId string) (*entity.Ticket, error)
}

type ticketIngestService struct {
	client           *athena.Client
	repo             contract.TicketRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewTicketIngestService(
	client *athena.Client,
	repo contract.TicketRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) ITicketIngestService {
	return &ticketIngestService{
		client:           client,
		repo:             repo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

func (s *ticketIngestService) FetchAndStore(ctx context.Context, ticketId string) (*entity.Ticket, error) {
	if s.client == nil {
		return nil, fmt.Errorf("athena client is not configured")
	}

	payload, err := s.client.GetTicket(ctx, ticketId)
	if err != nil {
		return nil, err
	}

	flat := athena.FlattenTicket(payload)
	if flat["entity_id"] == "" {
		return nil, fmt.Errorf("athena payload for %s is missing entityId", ticketId)
	}

	ticket := ticketFromFlat(flat)
	if err := s.repo.Upsert(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to store ticket %s: %w", ticketId, err)
	}

	s.logger.Info("ingest", "Stored ticket from Athena", map[string]interface{}{
		"ticket_id": ticket.TicketId,
		"entity_id": ticket.EntityId,
	})

	msgJson, err := json.Marshal(dto.PublishEmbedTicketMessage{EntityId: ticket.EntityId})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Notification is auxiliary; log and carry on when NATS is down.
	if s.eventPublisher != nil {
		evt := events.NewTicketIngested(ticket.EntityId, ticket.TicketId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ingest", "Failed to publish TICKET_INGESTED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return ticket, nil
}

func ticketFromFlat(flat map[string]string) *entity.Ticket {
	t := &entity.Ticket{
		EntityId:               flat["entity_id"],
		TicketId:               flat["ticket_id"],
		Title:                  flat["title"],
		Description:            flat["description"],
		Escalated:              flat["escalated"],
		ResolutionDescription:  flat["resolution_description"],
		Message:                flat["message"],
		Priority:               flat["priority"],
		LocationName:           flat["location_name"],
		FloorName:              flat["floor_name"],
		AffectPatientCare:      flat["affect_patient_care"],
		ConfirmedResolution:    flat["confirmed_resolution"],
		TierQueueName:          flat["tier_queue_name"],
		CreatedDate:            flat["created_date"],
		LastModified:           flat["last_modified"],
		AffectedUserDomain:     flat["affected_user_domain"],
		AffectedUserCompany:    flat["affected_user_company"],
		AffectedUserDepartment: flat["affected_user_department"],
		AffectedUserTitle:      flat["affected_user_title"],
		AssignedToUserDomain:   flat["assigned_to_user_domain"],
		AssignedToUserCompany:  flat["assigned_to_user_company"],
		AssignedToUserDept:     flat["assigned_to_user_department"],
		AssignedToUserTitle:    flat["assigned_to_user_title"],
		ResolvedByUserDomain:   flat["resolved_by_user_domain"],
		ResolvedByUserCompany:  flat["resolved_by_user_company"],
		ResolvedByUserDept:     flat["resolved_by_user_department"],
		ResolvedByUserTitle:    flat["resolved_by_user_title"],
	}
	if comments := flat["analyst_comments"]; comments != "" {
		t.AnalystComments = json.RawMessage(comments)
	}
	return t
}
