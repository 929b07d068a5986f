package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestTicketRoutingDefaultsMissingFields(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.TicketRouting(&dto.TicketRoutingResponse{
		SupportGroupAssignmentGroupName: "Service Desk Tier 2",
		PriorityLevelLevel:              "3",
	})
	if err != nil {
		t.Fatalf("TicketRouting() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Service Desk Tier 2") {
		t.Errorf("output missing group name:\n%s", out)
	}
	if !strings.Contains(out, "<strong>Level:</strong> 3") {
		t.Errorf("output missing priority level:\n%s", out)
	}
	// Every absent field still renders a labeled row with the placeholder.
	if got := strings.Count(out, "N/A"); got != 6 {
		t.Errorf("N/A count = %d, want 6:\n%s", got, out)
	}
	for _, heading := range []string{"Support Group Assignment", "Priority Level", "Analysis Summary"} {
		if !strings.Contains(out, heading) {
			t.Errorf("output missing section %q", heading)
		}
	}
}

func TestFindSimilarRendersCollapsedSections(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.FindSimilar(&dto.FindSimilarResponse{
		SimilarTickets: []*dto.SimilarTicket{
			{TicketId: "IR1111111", Title: "Printer offline"},
			{TicketId: "SR2222222"},
		},
	})
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	out := string(html)
	// Each ticket is its own details element, none expanded by default.
	if got := strings.Count(out, "<details"); got != 2 {
		t.Errorf("details count = %d, want 2:\n%s", got, out)
	}
	if strings.Contains(out, "open") {
		t.Errorf("details should render collapsed:\n%s", out)
	}
	if !strings.Contains(out, "<summary>IR1111111</summary>") {
		t.Errorf("first summary missing:\n%s", out)
	}
	if !strings.Contains(out, "<summary>SR2222222</summary>") {
		t.Errorf("second summary missing:\n%s", out)
	}
	if !strings.Contains(out, "Printer offline") {
		t.Errorf("title field missing:\n%s", out)
	}
	if strings.Contains(out, "No similar tickets found") {
		t.Errorf("no-results notice should not render with results:\n%s", out)
	}
}

func TestFindSimilarEmptyShowsNotice(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.FindSimilar(&dto.FindSimilarResponse{})
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "No similar tickets found") {
		t.Errorf("missing no-results notice:\n%s", out)
	}
	if strings.Contains(out, "<details") {
		t.Errorf("no details should render without results:\n%s", out)
	}
}

func TestFindSimilarEscapesTicketContent(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.FindSimilar(&dto.FindSimilarResponse{
		SimilarTickets: []*dto.SimilarTicket{
			{TicketId: "IR1111111", Description: `<script>alert("x")</script>`},
		},
	})
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	out := string(html)
	if strings.Contains(out, "<script>") {
		t.Errorf("ticket content must be escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("escaped content missing:\n%s", out)
	}
}

func TestJudgeTicketRendersOnlyPresentSections(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.JudgeTicket(&dto.JudgeTicketResponse{
		MissingInformation: []dto.MissingInformation{
			{Category: "Contact", MissingItem: "Callback number", Importance: "High", ReasonNeeded: "Analyst cannot reach the user"},
			{Category: "Environment"},
		},
		InconsistenciesFound: []dto.Inconsistency{
			{Type: "Timeline", Description: "Resolved before reported", PotentialImpact: "Audit mismatch"},
		},
	})
	if err != nil {
		t.Fatalf("JudgeTicket() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Contact: Callback number (Importance: High) - Analyst cannot reach the user") {
		t.Errorf("missing-information line format wrong:\n%s", out)
	}
	if !strings.Contains(out, "Environment: N/A (Importance: N/A) - N/A") {
		t.Errorf("missing-information defaults wrong:\n%s", out)
	}
	if !strings.Contains(out, "Timeline: Resolved before reported - Impact: Audit mismatch") {
		t.Errorf("inconsistency line format wrong:\n%s", out)
	}
	for _, absent := range []string{"Ticket Quality Assessment", "Recommendations", "Judgment Summary"} {
		if strings.Contains(out, absent) {
			t.Errorf("section %q should not render when nil:\n%s", absent, out)
		}
	}
}

func TestJudgeTicketRecommendationsJoined(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.JudgeTicket(&dto.JudgeTicketResponse{
		Recommendations: &dto.Recommendations{
			ImmediateActions:  []string{"Call the user", "Check the switch port"},
			FollowUpQuestions: []string{"Which floor?"},
		},
		JudgmentSummary: &dto.JudgmentSummary{KeyFindings: "Ticket lacks location detail"},
	})
	if err != nil {
		t.Fatalf("JudgeTicket() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Call the user, Check the switch port") {
		t.Errorf("immediate actions not comma joined:\n%s", out)
	}
	if !strings.Contains(out, "Which floor?") {
		t.Errorf("follow-up questions missing:\n%s", out)
	}
	if strings.Contains(out, "Ticket Improvements") {
		t.Errorf("empty sub-list should not render:\n%s", out)
	}
	if !strings.Contains(out, "Ticket lacks location detail") {
		t.Errorf("judgment summary missing:\n%s", out)
	}
}

func TestErrorFragment(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Error("Ticket IR1234567 not found")
	if err != nil {
		t.Fatalf("Error() error = %v", err)
	}
	if !strings.Contains(string(html), "Ticket IR1234567 not found") {
		t.Errorf("error message missing:\n%s", html)
	}
	if !strings.Contains(string(html), "error-block") {
		t.Errorf("error block class missing:\n%s", html)
	}
}

func TestPageWarningDisablesSubmit(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Page(PageData{
		TicketId: "ir12",
		Mode:     "find-similar",
		Warning:  "Ticket ID must match IR0000000 or SR0000000",
	})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if !strings.Contains(out, "Ticket ID must match IR0000000 or SR0000000") {
		t.Errorf("warning missing:\n%s", out)
	}
	if !strings.Contains(out, "disabled") {
		t.Errorf("submit should be disabled while warning shows:\n%s", out)
	}
	if !strings.Contains(out, `value="find-similar" selected`) {
		t.Errorf("mode selection not preserved:\n%s", out)
	}
}

func TestPageEmbedsResultAndElapsed(t *testing.T) {
	r := newTestRenderer(t)

	fragment, err := r.Error("boom")
	if err != nil {
		t.Fatalf("Error() error = %v", err)
	}

	out, err := r.Page(PageData{
		TicketId:       "IR1234567",
		Mode:           "ticket-routing",
		HasResult:      true,
		Results:        fragment,
		ElapsedSeconds: "2.4",
	})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	// The fragment is pre-rendered HTML and must not be double escaped.
	if !strings.Contains(out, "error-block") {
		t.Errorf("result fragment missing:\n%s", out)
	}
	if strings.Contains(out, "&lt;div class=") {
		t.Errorf("result fragment was escaped:\n%s", out)
	}
	if !strings.Contains(out, "Search took 2.4 seconds") {
		t.Errorf("elapsed line missing:\n%s", out)
	}
}

func TestCommentsText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "array of comments",
			raw:  `[{"author":"jdoe","comment":"Rebooted the device"},{"comment":"Confirmed fixed"}]`,
			want: "jdoe: Rebooted the device\nConfirmed fixed",
		},
		{name: "bare string", raw: `"escalated to tier 2"`, want: "escalated to tier 2"},
		{name: "empty", raw: "", want: "N/A"},
		{name: "empty array", raw: `[]`, want: "N/A"},
		{name: "free text", raw: "not json at all", want: "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commentsText(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("commentsText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
