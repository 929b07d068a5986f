package prompts

import (
	"fmt"
	"strings"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/entity"
)

// DocxParsePrompt instructs the model to split the raw text of a OneNote
// DOCX export (one section, many pages) into structured page objects.
const DocxParsePrompt = `You are an intelligent parser designed to extract structured information from raw text of OneNote exported DOCX files.
Each DOCX file represents a OneNote section containing multiple pages.
Your task is to identify individual pages, their titles, body content, and creation datetimes.

The creation datetime format will typically be like: "Wednesday, September 2, 2020 4:32 PM".
Page titles are usually at the beginning of a page.

Output the extracted information as a JSON array, where each object in the array represents a page.
Each page object should have the following keys:
- "page_title": The title of the page.
- "page_body_text": The main content of the page.
- "page_datetime": The creation datetime of the page, exactly as found in the text. If not found, use "N/A".
- "is_summary": true when the page is a summary or overview of other pages (for example a title containing "Summary" or "Overview"), false otherwise.

DO NOT include any conversational text, explanations, or code examples. ONLY output the JSON array.

Now, parse the following raw DOCX text:

---DOCX_TEXT_START---
%s
---DOCX_TEXT_END---
`

// BuildRoutingPrompt assembles the ticket-routing advisor prompt from the
// ticket under analysis, historically similar tickets, and on-call /
// support-group knowledge retrieved from the OneNote corpus.
func BuildRoutingPrompt(ticket *entity.Ticket, similar []*entity.ScoredTicket, chunks []*entity.ScoredChunk) string {
	var b strings.Builder

	b.WriteString("<task>\n")
	b.WriteString("You are a service desk routing advisor. Given a support ticket, similar historical tickets, and support-group reference material, decide which support group should own the ticket and what priority it deserves.\n")
	b.WriteString("</task>\n\n")

	writeTicket(&b, ticket)
	writeSimilarTickets(&b, similar)
	writeReferenceChunks(&b, chunks)

	b.WriteString("<output_format>\n")
	b.WriteString("Respond with ONLY a JSON object of this exact shape, no prose around it:\n")
	b.WriteString(`{
  "support_group_assignment": {"group_name": "...", "reason": "..."},
  "priority_level": {"level": "...", "classification": "...", "reason": "..."},
  "analysis_summary": {"business_impact": "...", "location_factor": "...", "similar_ticket_pattern": "..."}
}`)
	b.WriteString("\n</output_format>\n")

	return b.String()
}

// BuildJudgmentPrompt assembles the judge-ticket prompt. Every output
// section is optional; the model omits sections it has nothing to say
// about.
func BuildJudgmentPrompt(ticket *entity.Ticket) string {
	var b strings.Builder

	b.WriteString("<task>\n")
	b.WriteString("You are a service desk quality auditor. Judge the completeness, clarity and internal consistency of the support ticket below.\n")
	b.WriteString("</task>\n\n")

	writeTicket(&b, ticket)

	b.WriteString("<output_format>\n")
	b.WriteString("Respond with ONLY a JSON object. Include only the sections you have findings for, chosen from:\n")
	b.WriteString(`{
  "ticket_quality_assessment": {"overall_rating": "...", "completeness_score": "...", "clarity_score": "...", "risk_level": "..."},
  "missing_information": [{"category": "...", "missing_item": "...", "importance": "...", "reason_needed": "..."}],
  "inconsistencies_found": [{"type": "...", "description": "...", "potential_impact": "..."}],
  "recommendations": {"immediate_actions": ["..."], "ticket_improvements": ["..."], "follow_up_questions": ["..."]},
  "judgment_summary": {"key_findings": "...", "estimated_impact": "...", "confidence_level": "..."}
}`)
	b.WriteString("\n</output_format>\n")

	return b.String()
}

func writeTicket(b *strings.Builder, ticket *entity.Ticket) {
	b.WriteString("<ticket>\n")
	fmt.Fprintf(b, "Ticket ID: %s\n", ticket.TicketId)
	fmt.Fprintf(b, "Title: %s\n", ticket.Title)
	fmt.Fprintf(b, "Description: %s\n", ticket.Description)
	fmt.Fprintf(b, "Priority: %s\n", ticket.Priority)
	fmt.Fprintf(b, "Location: %s (floor: %s)\n", ticket.LocationName, ticket.FloorName)
	fmt.Fprintf(b, "Affects patient care: %s\n", ticket.AffectPatientCare)
	fmt.Fprintf(b, "Escalated: %s\n", ticket.Escalated)
	if ticket.TierQueueName != "" {
		fmt.Fprintf(b, "Current queue: %s\n", ticket.TierQueueName)
	}
	b.WriteString("</ticket>\n\n")
}

func writeSimilarTickets(b *strings.Builder, similar []*entity.ScoredTicket) {
	if len(similar) == 0 {
		return
	}
	b.WriteString("<similar_tickets>\n")
	for _, st := range similar {
		fmt.Fprintf(b, "- [%s] (similarity %.2f) %s | priority: %s | queue: %s | resolution: %s\n",
			st.Ticket.TicketId, st.Similarity, st.Ticket.Title,
			st.Ticket.Priority, st.Ticket.TierQueueName, st.Ticket.Message)
	}
	b.WriteString("</similar_tickets>\n\n")
}

func writeReferenceChunks(b *strings.Builder, chunks []*entity.ScoredChunk) {
	if len(chunks) == 0 {
		return
	}
	b.WriteString("<reference_material>\n")
	for _, sc := range chunks {
		fmt.Fprintf(b, "[%s / %s]\n%s\n\n", sc.Chunk.NotebookName, sc.Chunk.SectionName, sc.Chunk.ChunkText)
	}
	b.WriteString("</reference_material>\n\n")
}
