package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/logger"
	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/pkg/serverutils"
	"github.com/AnzorAslanukov/ServiceDeskHelper/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	tickets  map[string]*entity.Ticket
	entities map[string]*entity.Ticket
	scored   []*entity.ScoredTicket

	mu          sync.Mutex
	findCalls   int
	searchCalls int
	lastExclude string
	embedded    chan string
}

func (f *fakeTicketRepo) Upsert(ctx context.Context, ticket *entity.Ticket) error { return nil }

func (f *fakeTicketRepo) FindByTicketId(ctx context.Context, ticketId string) (*entity.Ticket, error) {
	f.mu.Lock()
	f.findCalls++
	f.mu.Unlock()
	return f.tickets[ticketId], nil
}

func (f *fakeTicketRepo) FindByEntityId(ctx context.Context, entityId string) (*entity.Ticket, error) {
	return f.entities[entityId], nil
}

func (f *fakeTicketRepo) UpdateEmbeddings(ctx context.Context, entityId string, title, description []float32) error {
	if f.embedded != nil {
		f.embedded <- entityId
	}
	return nil
}

func (f *fakeTicketRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	return nil, nil
}

func (f *fakeTicketRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeTicketRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, excludeTicketId string) ([]*entity.ScoredTicket, error) {
	f.mu.Lock()
	f.searchCalls++
	f.lastExclude = excludeTicketId
	f.mu.Unlock()
	if len(f.scored) > limit {
		return f.scored[:limit], nil
	}
	return f.scored, nil
}

type fakeChunkRepo struct{}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.OnenoteChunk) error {
	return nil
}
func (f *fakeChunkRepo) NotebookExists(ctx context.Context, name string) (bool, error) {
	return false, nil
}
func (f *fakeChunkRepo) SectionExists(ctx context.Context, name string) (bool, error) {
	return false, nil
}
func (f *fakeChunkRepo) DeleteByNotebook(ctx context.Context, name string) error { return nil }
func (f *fakeChunkRepo) DeleteBySection(ctx context.Context, name string) error  { return nil }
func (f *fakeChunkRepo) Count(ctx context.Context) (int64, error)                { return 0, nil }
func (f *fakeChunkRepo) SearchHybrid(ctx context.Context, embedding []float32, limit int, keywords []string) ([]*entity.ScoredChunk, error) {
	return nil, nil
}

type fakeEmbedder struct {
	calls atomic.Int64
}

func (f *fakeEmbedder) Generate(text string) ([]float32, error) {
	f.calls.Add(1)
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeLLM struct {
	response string
	err      error
	calls    atomic.Int64
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, "", options...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func storedTicket() *entity.Ticket {
	return &entity.Ticket{
		EntityId:             "ent-1",
		TicketId:             "IR1234567",
		Title:                "Printer offline",
		Description:          "The 5th floor printer does not respond",
		DescriptionEmbedding: []float32{0.4, 0.5, 0.6},
	}
}

func newTestSearchService(repo *fakeTicketRepo, llmProvider llm.LLMProvider) ISearchService {
	return NewSearchService(
		repo,
		&fakeChunkRepo{},
		nil,
		&fakeEmbedder{},
		llmProvider,
		logger.NewNopLogger(),
	)
}

func TestSearchInvalidMode(t *testing.T) {
	svc := newTestSearchService(&fakeTicketRepo{}, &fakeLLM{})

	_, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: "summarize"})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestSearchTicketNotFound(t *testing.T) {
	svc := newTestSearchService(&fakeTicketRepo{tickets: map[string]*entity.Ticket{}}, &fakeLLM{})

	_, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR0000000", Mode: dto.ModeFindSimilar})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestSearchFindSimilar(t *testing.T) {
	repo := &fakeTicketRepo{
		tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()},
		scored: []*entity.ScoredTicket{
			{Ticket: &entity.Ticket{TicketId: "IR7777777", Title: "Printer jam"}, Similarity: 0.91},
			{Ticket: &entity.Ticket{TicketId: "SR8888888"}, Similarity: 0.74},
		},
	}
	svc := newTestSearchService(repo, &fakeLLM{})

	result, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeFindSimilar})
	require.NoError(t, err)

	res, ok := result.(*dto.FindSimilarResponse)
	require.True(t, ok, "result type = %T", result)
	require.Len(t, res.SimilarTickets, 2)
	assert.Equal(t, "IR7777777", res.SimilarTickets[0].TicketId)
	assert.Equal(t, 0.91, res.SimilarTickets[0].Similarity)
	assert.Equal(t, "IR1234567", repo.lastExclude)
}

func TestSearchFindSimilarEmpty(t *testing.T) {
	repo := &fakeTicketRepo{tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()}}
	svc := newTestSearchService(repo, &fakeLLM{})

	result, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeFindSimilar})
	require.NoError(t, err)

	res := result.(*dto.FindSimilarResponse)
	assert.Empty(t, res.SimilarTickets)
}

func TestSearchTicketRouting(t *testing.T) {
	repo := &fakeTicketRepo{tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()}}
	llmProvider := &fakeLLM{response: "```json\n" + `{
		"support_group_assignment": {"group_name": "Print Services", "reason": "Printer hardware issue"},
		"priority_level": {"level": "3", "classification": "Incident", "reason": "Single user affected"},
		"analysis_summary": {"business_impact": "Low", "location_factor": "5th floor", "similar_ticket_pattern": "Recurring printer faults"}
	}` + "\n```"}
	svc := newTestSearchService(repo, llmProvider)

	result, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeTicketRouting})
	require.NoError(t, err)

	res, ok := result.(*dto.TicketRoutingResponse)
	require.True(t, ok, "result type = %T", result)
	assert.Equal(t, "Print Services", res.SupportGroupAssignmentGroupName)
	assert.Equal(t, "Printer hardware issue", res.SupportGroupAssignmentReason)
	assert.Equal(t, "3", res.PriorityLevelLevel)
	assert.Equal(t, "Incident", res.PriorityLevelClassification)
	assert.Equal(t, "Recurring printer faults", res.AnalysisSummarySimilarTicketPattern)
}

func TestSearchJudgeTicket(t *testing.T) {
	repo := &fakeTicketRepo{tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()}}
	llmProvider := &fakeLLM{response: `{
		"ticket_quality_assessment": {"overall_rating": "Fair", "completeness_score": "6", "clarity_score": "7", "risk_level": "Low"},
		"missing_information": [{"category": "Contact", "missing_item": "Callback number", "importance": "High", "reason_needed": "Cannot reach user"}]
	}`}
	svc := newTestSearchService(repo, llmProvider)

	result, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeJudgeTicket})
	require.NoError(t, err)

	res, ok := result.(*dto.JudgeTicketResponse)
	require.True(t, ok, "result type = %T", result)
	require.NotNil(t, res.TicketQualityAssessment)
	assert.Equal(t, "Fair", res.TicketQualityAssessment.OverallRating)
	require.Len(t, res.MissingInformation, 1)
	assert.Equal(t, "Callback number", res.MissingInformation[0].MissingItem)
	assert.Nil(t, res.Recommendations)
	assert.Nil(t, res.JudgmentSummary)
}

func TestSearchJudgeTicketMalformedOutput(t *testing.T) {
	repo := &fakeTicketRepo{tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()}}
	svc := newTestSearchService(repo, &fakeLLM{response: "I cannot judge this ticket."})

	_, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeJudgeTicket})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestSearchLLMFailure(t *testing.T) {
	repo := &fakeTicketRepo{tickets: map[string]*entity.Ticket{"IR1234567": storedTicket()}}
	svc := newTestSearchService(repo, &fakeLLM{err: errors.New("endpoint unavailable")})

	_, err := svc.Search(context.Background(), &dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeTicketRouting})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestUnmarshalLLMJSON(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr bool
	}{
		{name: "bare object", answer: `{"a": 1}`},
		{name: "fenced json", answer: "```json\n{\"a\": 1}\n```"},
		{name: "fenced plain", answer: "```\n{\"a\": 1}\n```"},
		{name: "leading prose", answer: "Here is the result:\n{\"a\": 1}"},
		{name: "trailing prose", answer: "{\"a\": 1}\nLet me know if you need more."},
		{name: "no json", answer: "no structured output here", wantErr: true},
		{name: "empty", answer: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v map[string]interface{}
			err := unmarshalLLMJSON(tt.answer, &v)
			if (err != nil) != tt.wantErr {
				t.Errorf("unmarshalLLMJSON(%q) error = %v, wantErr %v", tt.answer, err, tt.wantErr)
			}
		})
	}
}
