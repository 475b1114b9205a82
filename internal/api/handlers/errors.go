package handlers

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	repo "github.com/baharkarakas/autoblog-backend/internal/repository"
	"github.com/baharkarakas/autoblog-backend/internal/services"
)

type errMapping struct {
	target error
	status int
	code   string
	// expose puts the wrapped detail into the response
	expose bool
}

var errTable = []errMapping{
	{services.ErrMissingParameter, http.StatusBadRequest, "missing_parameter", true},
	{services.ErrInvalidParameter, http.StatusBadRequest, "invalid_parameter", true},
	{services.ErrMissingKeyword, http.StatusBadRequest, "missing_keyword", false},
	{services.ErrMissingContent, http.StatusBadRequest, "missing_content", false},
	{services.ErrMissingAuthContext, http.StatusBadRequest, "missing_auth_context", false},
	{services.ErrNoValidCredential, http.StatusBadRequest, "no_valid_credential", false},
	{httpx.ErrBadJSON, http.StatusBadRequest, "invalid_json", true},
	{services.ErrForbidden, http.StatusForbidden, "forbidden", false},
	{services.ErrInsufficientCredits, http.StatusPaymentRequired, "insufficient_credits", false},
	{repo.ErrNotFound, http.StatusNotFound, "not_found", false},
	{services.ErrCreditCheckFailed, http.StatusInternalServerError, "credit_check_failed", true},
	{services.ErrLedgerWriteFailed, http.StatusInternalServerError, "ledger_write_failed", true},
	{services.ErrUsageWriteFailed, http.StatusInternalServerError, "usage_write_failed", true},
	{services.ErrProviderCallFailed, http.StatusBadGateway, "provider_call_failed", false},
	{services.ErrMalformedModelResponse, http.StatusBadGateway, "malformed_model_response", false},
	{services.ErrCompetitorSourceFailed, http.StatusBadGateway, "competitor_source_failed", false},
	{services.ErrNoCompetitorData, http.StatusBadGateway, "no_competitor_data", false},
}

// classify returns status, machine code, user-safe message and optional details.
func classify(err error) (int, string, string, any) {
	for _, m := range errTable {
		if errors.Is(err, m.target) {
			var details any
			if m.expose && err.Error() != m.target.Error() {
				details = err.Error()
			}
			return m.status, m.code, m.target.Error(), details
		}
	}
	return http.StatusInternalServerError, "internal_error", "internal error", nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg, details := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger(r).Error("request failed", "path", r.URL.Path, "code", code, "err", err)
	}
	httpx.WriteError(w, status, code, msg, details)
}
