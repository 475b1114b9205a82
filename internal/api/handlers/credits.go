package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	"github.com/baharkarakas/autoblog-backend/internal/api/validate"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/baharkarakas/autoblog-backend/internal/services"
)

type consumeReq struct {
	UserID      string `json:"userId"`
	WorkspaceID string `json:"workspaceId"`
	APIType     string `json:"apiType"`
	Operation   string `json:"operation"`
	Credits     int64  `json:"credits"`
}

func (h *Handler) ConsumeCredits(w http.ResponseWriter, r *http.Request) {
	var req consumeReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	uid, err := callerID(r, req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if errs := validate.Collect(
		validate.Required("userId", uid),
		validate.Required("workspaceId", req.WorkspaceID),
		validate.Required("apiType", req.APIType),
		validate.Required("operation", req.Operation),
		validate.MinInt("credits", req.Credits, 1),
	); errs != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing_parameter", services.ErrMissingParameter.Error(), errs)
		return
	}
	err = h.Credits.Consume(r.Context(), services.ConsumeInput{
		UserID:      uid,
		WorkspaceID: req.WorkspaceID,
		APIType:     req.APIType,
		Operation:   req.Operation,
		Credits:     req.Credits,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("consumed %d credits", req.Credits),
	})
}

func (h *Handler) CreditBalance(w http.ResponseWriter, r *http.Request) {
	uid, err := callerID(r, r.URL.Query().Get("userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bal, err := h.Credits.Balance(r.Context(), uid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"userId": uid, "balance": bal})
}

type grantReq struct {
	UserID      string `json:"userId"`
	WorkspaceID string `json:"workspaceId"`
	Credits     int64  `json:"credits"`
	Type        string `json:"type"`
}

// GrantCredits is admin only; the body names the beneficiary.
func (h *Handler) GrantCredits(w http.ResponseWriter, r *http.Request) {
	var req grantReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.Credits.Grant(r.Context(), services.GrantInput{
		UserID:      strings.TrimSpace(req.UserID),
		WorkspaceID: strings.TrimSpace(req.WorkspaceID),
		Credits:     req.Credits,
		Type:        models.CreditTxnType(strings.ToLower(strings.TrimSpace(req.Type))),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) ListUsage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, limitErr := validate.QueryInt("limit", q.Get("limit"), 0)
	offset, offsetErr := validate.QueryInt("offset", q.Get("offset"), 0)
	if errs := validate.Collect(validate.Required("workspaceId", q.Get("workspaceId")), limitErr, offsetErr); errs != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_parameter", "invalid query", errs)
		return
	}
	rows, err := h.Credits.ListUsage(r.Context(), q.Get("workspaceId"), limit, offset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}
