package services

import "errors"

// Hata sınıfları; API katmanı errors.Is ile HTTP durumuna çevirir.
var (
	// input validation
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrMissingKeyword     = errors.New("keyword is required")
	ErrMissingContent     = errors.New("content is required")
	ErrMissingAuthContext = errors.New("userId and workspaceId are required")

	// authorization / state
	ErrForbidden           = errors.New("forbidden")
	ErrNoValidCredential   = errors.New("no active api key for this workspace")
	ErrInsufficientCredits = errors.New("insufficient credits")

	// upstream dependencies
	ErrCreditCheckFailed      = errors.New("credit check failed")
	ErrLedgerWriteFailed      = errors.New("failed to record credit usage")
	ErrUsageWriteFailed       = errors.New("failed to record api usage")
	ErrProviderCallFailed     = errors.New("keyword provider call failed")
	ErrMalformedModelResponse = errors.New("malformed model response")
	ErrCompetitorSourceFailed = errors.New("competitor data source failed")
	ErrNoCompetitorData       = errors.New("no competitor data")
)
