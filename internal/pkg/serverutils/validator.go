package serverutils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ticketIdPattern accepts incident (ir) and service request (sr) ids:
// a two-letter prefix followed by exactly seven digits, case-insensitive.
var ticketIdPattern = regexp.MustCompile(`^(?i)(ir|sr)\d{7}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ticket_id", func(fl validator.FieldLevel) bool {
		return ticketIdPattern.MatchString(fl.Field().String())
	})
	return v
}

// IsValidTicketId reports whether the trimmed input is a well-formed
// ticket id. Empty input is simply not valid; callers distinguish the
// neutral empty state themselves.
func IsValidTicketId(input string) bool {
	return ticketIdPattern.MatchString(strings.TrimSpace(input))
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var sb strings.Builder
		for i, fieldErr := range err.(validator.ValidationErrors) {
			if i > 0 {
				sb.WriteString("; ")
			}
			switch fieldErr.Tag() {
			case "ticket_id":
				sb.WriteString("ticket_id must match IR0000000 or SR0000000")
			case "required":
				sb.WriteString("missing " + strings.ToLower(fieldErr.Field()))
			default:
				sb.WriteString(strings.ToLower(fieldErr.Field()) + " is invalid")
			}
		}
		return NewAppError(fiber.StatusBadRequest, sb.String())
	}
	return nil
}
