package handlers

import (
	"net/http"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/baharkarakas/autoblog-backend/internal/services"
)

type competitorReq struct {
	Keyword     string `json:"keyword"`
	Country     string `json:"country"`
	UserID      string `json:"userId"`
	WorkspaceID string `json:"workspaceId"`
}

type competitorResp struct {
	Success  bool                      `json:"success"`
	Keyword  string                    `json:"keyword"`
	Country  string                    `json:"country"`
	Analysis models.CompetitorAnalysis `json:"analysis"`
}

type competitorErr struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CompetitorAnalysis keeps the {success, error} envelope the dashboard expects.
func (h *Handler) CompetitorAnalysis(w http.ResponseWriter, r *http.Request) {
	var req competitorReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, competitorErr{Error: err.Error()})
		return
	}
	uid, err := callerID(r, req.UserID)
	if err != nil {
		httpx.WriteJSON(w, http.StatusForbidden, competitorErr{Error: err.Error()})
		return
	}
	res, err := h.Competitors.Analyze(r.Context(), services.AnalyzeInput{
		Keyword:     req.Keyword,
		Country:     req.Country,
		UserID:      uid,
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		status, _, msg, _ := classify(err)
		if status >= http.StatusInternalServerError {
			h.logger(r).Error("competitor analysis failed", "keyword", req.Keyword, "err", err)
		}
		httpx.WriteJSON(w, status, competitorErr{Error: msg})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, competitorResp{
		Success:  true,
		Keyword:  res.Keyword,
		Country:  res.Country,
		Analysis: res.Analysis,
	})
}
