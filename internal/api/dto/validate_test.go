package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(CreateSubmissionRequest{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	require.Contains(t, domainErr.Details, "clientName")
	require.Contains(t, domainErr.Details, "government")
	require.Contains(t, domainErr.Details, "atmCode")
	require.Contains(t, domainErr.Details, "serviceType")
	require.Equal(t, "clientName is required", domainErr.Details["clientName"])
}

func TestValidateRejectsUnknownServiceType(t *testing.T) {
	err := Validate(CreateSubmissionRequest{
		ClientName:  "National Bank",
		Government:  "Cairo",
		ATMCode:     "ATM-0042",
		ServiceType: "Feeding",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Contains(t, domainErr.Details, "serviceType")
	require.NotContains(t, domainErr.Details, "clientName")
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	err := Validate(CreateSubmissionRequest{
		ClientName:  "National Bank",
		Government:  "Cairo",
		ATMCode:     "ATM-0042",
		ServiceType: "maintenance",
	})
	require.NoError(t, err)
}

func TestValidateUpdateRoleRequest(t *testing.T) {
	err := Validate(UpdateRoleRequest{Email: "not-an-email", Role: "superuser"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Contains(t, domainErr.Details, "email")
	require.Contains(t, domainErr.Details, "role")

	require.NoError(t, Validate(UpdateRoleRequest{Email: "agent@fieldops.example", Role: "manager"}))
}
