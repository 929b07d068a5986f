package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// PageData drives the full search page. Results is a pre-rendered,
// already-escaped fragment produced by one of the mode renderers.
type PageData struct {
	TicketId       string
	Mode           string
	Warning        string
	HasResult      bool
	Results        template.HTML
	ElapsedSeconds string
}

type errorData struct {
	Message string
}

// Renderer turns mode responses into HTML fragments. All interpolation
// goes through html/template so ticket content cannot inject markup.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"orNA":         orNA,
		"commentsText": commentsText,
		"joinComma":    joinComma,
	}).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Page(data PageData) (string, error) {
	return r.executeString("page", data)
}

func (r *Renderer) TicketRouting(res *dto.TicketRoutingResponse) (template.HTML, error) {
	return r.execute("routing", res)
}

func (r *Renderer) FindSimilar(res *dto.FindSimilarResponse) (template.HTML, error) {
	return r.execute("similar", res)
}

func (r *Renderer) JudgeTicket(res *dto.JudgeTicketResponse) (template.HTML, error) {
	return r.execute("judge", res)
}

func (r *Renderer) Error(message string) (template.HTML, error) {
	return r.execute("error", errorData{Message: message})
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	s, err := r.executeString(name, data)
	if err != nil {
		return "", err
	}
	return template.HTML(s), nil
}

func (r *Renderer) executeString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// orNA substitutes the placeholder for empty optional fields so every
// labeled row in a result renders with a value.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}

// commentsText flattens stored analyst comments into display text. The
// column holds either a JSON array of comment objects, a bare string, or
// free text that never was JSON.
func commentsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "N/A"
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err == nil {
		var b strings.Builder
		for _, entry := range entries {
			line := commentLine(entry)
			if line == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(line)
		}
		if b.Len() > 0 {
			return b.String()
		}
		return "N/A"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return orNA(s)
	}
	return orNA(string(raw))
}

func commentLine(entry map[string]any) string {
	text, _ := entry["comment"].(string)
	if text == "" {
		text, _ = entry["text"].(string)
	}
	if text == "" {
		return ""
	}
	author, _ := entry["author"].(string)
	if author == "" {
		return text
	}
	return author + ": " + text
}
