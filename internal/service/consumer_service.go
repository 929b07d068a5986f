package service

import (
	"context"
	"encoding/json"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/embedding"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/events"
	pktNats "github.com/AnzorAslanukov/ServiceDeskHelper/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed-ticket topic: for each stored ticket
// it computes title and description vectors and stamps processed_at.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	repo              contract.TicketRepository
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo contract.TicketRepository,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		repo:              repo,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedTicketMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal embed-ticket message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	ticket, err := cs.repo.FindByEntityId(ctx, payload.EntityId)
	if err != nil {
		cs.logger.Error("consumer", "Failed to load ticket for embedding", map[string]interface{}{
			"entity_id": payload.EntityId,
			"error":     err.Error(),
		})
		msg.Nack() // Retriable
		return
	}
	if ticket == nil {
		cs.logger.Warn("consumer", "Ticket vanished before embedding", map[string]interface{}{
			"entity_id": payload.EntityId,
		})
		msg.Ack()
		return
	}

	titleVec, err := cs.embeddingProvider.Generate(ticket.Title)
	if err != nil {
		cs.logger.Error("consumer", "Failed to embed ticket title", map[string]interface{}{
			"ticket_id": ticket.TicketId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	descVec, err := cs.embeddingProvider.Generate(ticket.Description)
	if err != nil {
		cs.logger.Error("consumer", "Failed to embed ticket description", map[string]interface{}{
			"ticket_id": ticket.TicketId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	if err := cs.repo.UpdateEmbeddings(ctx, ticket.EntityId, titleVec, descVec); err != nil {
		cs.logger.Error("consumer", "Failed to store ticket embeddings", map[string]interface{}{
			"ticket_id": ticket.TicketId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "Ticket embedded", map[string]interface{}{
		"ticket_id": ticket.TicketId,
		"entity_id": ticket.EntityId,
	})

	if cs.eventPublisher != nil {
		evt := events.NewTicketEmbedded(ticket.EntityId, ticket.TicketId)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("consumer", "Failed to publish TICKET_EMBEDDED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
