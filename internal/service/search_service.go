package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/serverutils"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/prompts"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/repository/contract"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/embedding"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

const (
	similarTicketLimit  = 10
	routingTicketLimit  = 5
	routingChunkLimit   = 5
	llmResponseMaxToken = 800
)

type ISearchService interface {
	// Search dispatches the request to its mode handler and returns the
	// mode-specific payload. Duplicate in-flight searches for the same
	// ticket and mode are coalesced into one.
	Search(ctx context.Context, req *dto.SearchRequest) (interface{}, error)
}

type modeHandler func(ctx context.Context, ticket *entity.Ticket) (interface{}, error)

type searchService struct {
	tickets           contract.TicketRepository
	chunks            contract.OnenoteChunkRepository
	ingest            ITicketIngestService
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	logger            logger.ILogger
	group             singleflight.Group
	modes             map[dto.SearchMode]modeHandler
}

func NewSearchService(
	tickets contract.TicketRepository,
	chunks contract.OnenoteChunkRepository,
	ingest ITicketIngestService,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) ISearchService {
	s := &searchService{
		tickets:           tickets,
		chunks:            chunks,
		ingest:            ingest,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		logger:            sysLogger,
	}
	s.modes = map[dto.SearchMode]modeHandler{
		dto.ModeTicketRouting: s.ticketRouting,
		dto.ModeFindSimilar:   s.findSimilar,
		dto.ModeJudgeTicket:   s.judgeTicket,
	}
	return s
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (interface{}, error) {
	handler, ok := s.modes[req.Mode]
	if !ok {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "Invalid mode")
	}

	ticketId := strings.TrimSpace(req.TicketId)
	key := strings.ToLower(ticketId) + "|" + string(req.Mode)

	// A second submit for the same ticket and mode while one is in flight
	// piggybacks on the first instead of racing it.
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		stopProgress := s.startProgress(ticketId, string(req.Mode))
		defer stopProgress()

		ticket, err := s.loadTicket(ctx, ticketId)
		if err != nil {
			return nil, err
		}
		return handler(ctx, ticket)
	})
	return result, err
}

// startProgress runs a one-second elapsed tick for the lifetime of one
// search. The returned stop function must run before any result is
// surfaced, on every exit path.
func (s *searchService) startProgress(ticketId, mode string) func() {
	started := time.Now()
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.logger.Debug("search", "Search in progress", map[string]interface{}{
					"ticket_id":       ticketId,
					"mode":            mode,
					"elapsed_seconds": int(time.Since(started).Seconds()),
				})
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
		s.logger.Info("search", "Search finished", map[string]interface{}{
			"ticket_id":       ticketId,
			"mode":            mode,
			"elapsed_seconds": int(time.Since(started).Seconds()),
		})
	}
}

// loadTicket prefers the local store and falls back to fetching the
// ticket from Athena, which also queues it for embedding.
func (s *searchService) loadTicket(ctx context.Context, ticketId string) (*entity.Ticket, error) {
	ticket, err := s.tickets.FindByTicketId(ctx, ticketId)
	if err != nil {
		return nil, err
	}
	if ticket != nil {
		return ticket, nil
	}

	if s.ingest == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, fmt.Sprintf("Ticket %s not found", ticketId))
	}

	ticket, err = s.ingest.FetchAndStore(ctx, ticketId)
	if err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusNotFound, fmt.Sprintf("Ticket %s not found", ticketId), err)
	}
	return ticket, nil
}

// queryVector returns the ticket's stored description embedding, or
// computes one on the spot when the consumer has not caught up yet.
func (s *searchService) queryVector(ticket *entity.Ticket) ([]float32, error) {
	if len(ticket.DescriptionEmbedding) > 0 {
		return ticket.DescriptionEmbedding, nil
	}
	text := ticket.Description
	if text == "" {
		text = ticket.Title
	}
	vec, err := s.embeddingProvider.Generate(text)
	if err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusInternalServerError, "Failed to embed ticket text", err)
	}
	return vec, nil
}

func (s *searchService) ticketRouting(ctx context.Context, ticket *entity.Ticket) (interface{}, error) {
	vec, err := s.queryVector(ticket)
	if err != nil {
		return nil, err
	}

	similar, err := s.tickets.SearchSimilar(ctx, vec, routingTicketLimit, ticket.TicketId)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunks.SearchHybrid(ctx, vec, routingChunkLimit, nil)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildRoutingPrompt(ticket, similar, chunks)
	answer, err := s.llmProvider.Generate(ctx, prompt, llm.WithMaxTokens(llmResponseMaxToken))
	if err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusInternalServerError, "Routing analysis failed", err)
	}

	var advisor struct {
		SupportGroupAssignment struct {
			GroupName string `json:"group_name"`
			Reason    string `json:"reason"`
		} `json:"support_group_assignment"`
		PriorityLevel struct {
			Level          string `json:"level"`
			Classification string `json:"classification"`
			Reason         string `json:"reason"`
		} `json:"priority_level"`
		AnalysisSummary struct {
			BusinessImpact       string `json:"business_impact"`
			LocationFactor       string `json:"location_factor"`
			SimilarTicketPattern string `json:"similar_ticket_pattern"`
		} `json:"analysis_summary"`
	}
	if err := unmarshalLLMJSON(answer, &advisor); err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusInternalServerError, "Routing analysis returned malformed output", err)
	}

	return &dto.TicketRoutingResponse{
		SupportGroupAssignmentGroupName:     advisor.SupportGroupAssignment.GroupName,
		SupportGroupAssignmentReason:        advisor.SupportGroupAssignment.Reason,
		PriorityLevelLevel:                  advisor.PriorityLevel.Level,
		PriorityLevelClassification:         advisor.PriorityLevel.Classification,
		PriorityLevelReason:                 advisor.PriorityLevel.Reason,
		AnalysisSummaryBusinessImpact:       advisor.AnalysisSummary.BusinessImpact,
		AnalysisSummaryLocationFactor:       advisor.AnalysisSummary.LocationFactor,
		AnalysisSummarySimilarTicketPattern: advisor.AnalysisSummary.SimilarTicketPattern,
	}, nil
}

func (s *searchService) findSimilar(ctx context.Context, ticket *entity.Ticket) (interface{}, error) {
	vec, err := s.queryVector(ticket)
	if err != nil {
		return nil, err
	}

	scored, err := s.tickets.SearchSimilar(ctx, vec, similarTicketLimit, ticket.TicketId)
	if err != nil {
		return nil, err
	}

	similar := make([]*dto.SimilarTicket, len(scored))
	for i, st := range scored {
		similar[i] = similarTicketFromEntity(st.Ticket, st.Similarity)
	}
	return &dto.FindSimilarResponse{SimilarTickets: similar}, nil
}

func (s *searchService) judgeTicket(ctx context.Context, ticket *entity.Ticket) (interface{}, error) {
	prompt := prompts.BuildJudgmentPrompt(ticket)
	answer, err := s.llmProvider.Generate(ctx, prompt, llm.WithMaxTokens(llmResponseMaxToken))
	if err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusInternalServerError, "Ticket judgment failed", err)
	}

	var judgment dto.JudgeTicketResponse
	if err := unmarshalLLMJSON(answer, &judgment); err != nil {
		return nil, serverutils.WrapAppError(fiber.StatusInternalServerError, "Ticket judgment returned malformed output", err)
	}
	return &judgment, nil
}

func similarTicketFromEntity(t *entity.Ticket, similarity float64) *dto.SimilarTicket {
	return &dto.SimilarTicket{
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
		AnalystComments:        t.AnalystComments,
		Similarity:             similarity,
	}
}

// unmarshalLLMJSON tolerates the usual model decorations around a JSON
// answer: code fences and leading or trailing prose.
func unmarshalLLMJSON(answer string, v interface{}) error {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.IndexAny(cleaned, "{[")
	end := strings.LastIndexAny(cleaned, "}]")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object in model output")
	}
	return json.Unmarshal([]byte(cleaned[start:end+1]), v)
}
