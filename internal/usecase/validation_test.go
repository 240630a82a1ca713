package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imobflow/crm-api/internal/usecase"
)

func TestValidateCreateLeadInputRequiresContact(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{Name: "Ana"})

	assert.NotEmpty(t, errs)
	assert.Equal(t, "contact", errs[0].Field)
}

func TestValidateCreateLeadInputAcceptsPhoneOnly(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{
		Name:  "Ana",
		Phone: "(11) 98888-7777",
	})

	assert.Empty(t, errs)
}

func TestValidateCreateLeadInputRejectsBadEmail(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{
		Name:  "Ana",
		Email: "não-é-email",
	})

	assert.NotEmpty(t, errs)
}

func TestValidateCreateLeadInputRejectsUnknownStage(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{
		Name:  "Ana",
		Email: "ana@example.com",
		Stage: "LIMBO",
	})

	assert.NotEmpty(t, errs)
}

func TestValidateCreateLeadInputRejectsNegativeValue(t *testing.T) {
	errs := usecase.ValidateCreateLeadInput(usecase.CreateLeadInput{
		Name:                "Ana",
		Email:               "ana@example.com",
		EstimatedValueCents: -100,
	})

	assert.NotEmpty(t, errs)
}
