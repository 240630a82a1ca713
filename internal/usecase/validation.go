package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/imobflow/crm-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	// Email e telefone são opcionais, mas pelo menos um precisa vir.
	if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"contact", "email or phone is required"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.Phone) != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Stage != "" && !entity.IsValidStage(input.Stage) {
		errors = append(errors, ValidationError{"stage", "is not a known pipeline stage"})
	}

	if input.EstimatedValueCents < 0 {
		errors = append(errors, ValidationError{"estimated_value_cents", "must not be negative"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}
