package serverutils

import (
	"testing"

	"github.com/AnzorAslanukov/ServiceDeskHelper/internal/dto"
)

func TestIsValidTicketId(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "incident lowercase", input: "ir1234567", want: true},
		{name: "incident uppercase", input: "IR1234567", want: true},
		{name: "incident mixed case", input: "Ir1234567", want: true},
		{name: "service request lowercase", input: "sr0000001", want: true},
		{name: "service request uppercase", input: "SR7654321", want: true},
		{name: "surrounding whitespace", input: "  IR1234567  ", want: true},
		{name: "empty", input: "", want: false},
		{name: "whitespace only", input: "   ", want: false},
		{name: "wrong prefix", input: "cr1234567", want: false},
		{name: "missing prefix", input: "1234567", want: false},
		{name: "six digits", input: "ir123456", want: false},
		{name: "eight digits", input: "ir12345678", want: false},
		{name: "letters in digits", input: "ir12a4567", want: false},
		{name: "trailing garbage", input: "ir1234567x", want: false},
		{name: "leading garbage", input: "xir1234567", want: false},
		{name: "internal whitespace", input: "ir 1234567", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTicketId(tt.input); got != tt.want {
				t.Errorf("IsValidTicketId(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.SearchRequest
		wantErr bool
	}{
		{
			name:    "valid routing request",
			req:     dto.SearchRequest{TicketId: "IR1234567", Mode: dto.ModeTicketRouting},
			wantErr: false,
		},
		{
			name:    "valid judge request",
			req:     dto.SearchRequest{TicketId: "sr7654321", Mode: dto.ModeJudgeTicket},
			wantErr: false,
		},
		{
			name:    "bad ticket id",
			req:     dto.SearchRequest{TicketId: "nope", Mode: dto.ModeFindSimilar},
			wantErr: true,
		},
		{
			name:    "missing ticket id",
			req:     dto.SearchRequest{Mode: dto.ModeFindSimilar},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			req:     dto.SearchRequest{TicketId: "IR1234567", Mode: "summarize"},
			wantErr: true,
		},
		{
			name:    "missing mode",
			req:     dto.SearchRequest{TicketId: "IR1234567"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				appErr, ok := err.(*AppError)
				if !ok {
					t.Fatalf("error type = %T, want *AppError", err)
				}
				if appErr.Code != 400 {
					t.Errorf("Code = %d, want 400", appErr.Code)
				}
			}
		})
	}
}
