// internal/api/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	"github.com/baharkarakas/autoblog-backend/internal/auth"
)

// AuthHandler mints tokens for local development. Production tokens come from
// the auth platform; the route is only mounted in dev.
type AuthHandler struct {
	TM *auth.TokenManager
}

func NewAuthHandler(tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{TM: tm}
}

type devTokenReq struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

type tokenResp struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // saniye
}

func (h *AuthHandler) DevToken(w http.ResponseWriter, r *http.Request) {
	var req devTokenReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request", nil)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "missing_parameter", "userId is required", nil)
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}
	tok, exp, err := h.TM.Generate(req.UserID, req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken: tok,
		ExpiresIn:   int64(time.Until(exp).Truncate(time.Second).Seconds()),
	})
}
