package dto

import "encoding/json"

// SearchMode selects the request/response/render strategy.
type SearchMode string

const (
	ModeTicketRouting SearchMode = "ticket-routing"
	ModeFindSimilar   SearchMode = "find-similar"
	ModeJudgeTicket   SearchMode = "judge-ticket"
)

type SearchRequest struct {
	TicketId string     `json:"ticket_id" validate:"required,ticket_id"`
	Mode     SearchMode `json:"mode" validate:"required,oneof=ticket-routing find-similar judge-ticket"`
}

// ErrorResponse is the handled-failure shape shared by all modes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TicketRoutingResponse carries the advisor result with its keys flattened
// to section_field form, exactly as consumed by the routing renderer.
type TicketRoutingResponse struct {
	SupportGroupAssignmentGroupName     string `json:"support_group_assignment_group_name"`
	SupportGroupAssignmentReason        string `json:"support_group_assignment_reason"`
	PriorityLevelLevel                  string `json:"priority_level_level"`
	PriorityLevelClassification         string `json:"priority_level_classification"`
	PriorityLevelReason                 string `json:"priority_level_reason"`
	AnalysisSummaryBusinessImpact       string `json:"analysis_summary_business_impact"`
	AnalysisSummaryLocationFactor       string `json:"analysis_summary_location_factor"`
	AnalysisSummarySimilarTicketPattern string `json:"analysis_summary_similar_ticket_pattern"`
}

type FindSimilarResponse struct {
	SimilarTickets []*SimilarTicket `json:"similar_tickets"`
}

// SimilarTicket is one entry of a find-similar result. Field names follow
// the athena_tickets column vocabulary; the stored row id is normalized
// out in favor of ticket_id.
type SimilarTicket struct {
	TicketId               string          `json:"ticket_id"`
	Title                  string          `json:"title,omitempty"`
	Description            string          `json:"description,omitempty"`
	Escalated              string          `json:"escalated,omitempty"`
	ResolutionDescription  string          `json:"resolution_description,omitempty"`
	Message                string          `json:"message,omitempty"`
	Priority               string          `json:"priority,omitempty"`
	LocationName           string          `json:"location_name,omitempty"`
	FloorName              string          `json:"floor_name,omitempty"`
	AffectPatientCare      string          `json:"affect_patient_care,omitempty"`
	ConfirmedResolution    string          `json:"confirmed_resolution,omitempty"`
	TierQueueName          string          `json:"tier_queue_name,omitempty"`
	CreatedDate            string          `json:"created_date,omitempty"`
	LastModified           string          `json:"last_modified,omitempty"`
	AffectedUserDomain     string          `json:"affected_user_domain,omitempty"`
	AffectedUserCompany    string          `json:"affected_user_company,omitempty"`
	AffectedUserDepartment string          `json:"affected_user_department,omitempty"`
	AffectedUserTitle      string          `json:"affected_user_title,omitempty"`
	AssignedToUserDomain   string          `json:"assigned_to_user_domain,omitempty"`
	AssignedToUserCompany  string          `json:"assigned_to_user_company,omitempty"`
	AssignedToUserDept     string          `json:"assigned_to_user_department,omitempty"`
	AssignedToUserTitle    string          `json:"assigned_to_user_title,omitempty"`
	ResolvedByUserDomain   string          `json:"resolved_by_user_domain,omitempty"`
	ResolvedByUserCompany  string          `json:"resolved_by_user_company,omitempty"`
	ResolvedByUserDept     string          `json:"resolved_by_user_department,omitempty"`
	ResolvedByUserTitle    string          `json:"resolved_by_user_title,omitempty"`
	AnalystComments        json.RawMessage `json:"analyst_comments,omitempty"`
	Similarity             float64         `json:"similarity,omitempty"`
}

// JudgeTicketResponse holds up to five independently optional sections.
// A nil section is omitted from both the wire response and the rendering.
type JudgeTicketResponse struct {
	TicketQualityAssessment *QualityAssessment   `json:"ticket_quality_assessment,omitempty"`
	MissingInformation      []MissingInformation `json:"missing_information,omitempty"`
	InconsistenciesFound    []Inconsistency      `json:"inconsistencies_found,omitempty"`
	Recommendations         *Recommendations     `json:"recommendations,omitempty"`
	JudgmentSummary         *JudgmentSummary     `json:"judgment_summary,omitempty"`
}

type QualityAssessment struct {
	OverallRating     string `json:"overall_rating,omitempty"`
	CompletenessScore string `json:"completeness_score,omitempty"`
	ClarityScore      string `json:"clarity_score,omitempty"`
	RiskLevel         string `json:"risk_level,omitempty"`
}

type MissingInformation struct {
	Category     string `json:"category,omitempty"`
	MissingItem  string `json:"missing_item,omitempty"`
	Importance   string `json:"importance,omitempty"`
	ReasonNeeded string `json:"reason_needed,omitempty"`
}

type Inconsistency struct {
	Type            string `json:"type,omitempty"`
	Description     string `json:"description,omitempty"`
	PotentialImpact string `json:"potential_impact,omitempty"`
}

type Recommendations struct {
	ImmediateActions  []string `json:"immediate_actions,omitempty"`
	TicketImprovement []string `json:"ticket_improvements,omitempty"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

type JudgmentSummary struct {
	KeyFindings     string `json:"key_findings,omitempty"`
	EstimatedImpact string `json:"estimated_impact,omitempty"`
	ConfidenceLevel string `json:"confidence_level,omitempty"`
}
