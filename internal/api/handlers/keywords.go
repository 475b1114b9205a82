package handlers

import (
	"net/http"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	"github.com/baharkarakas/autoblog-backend/internal/services"
)

type keywordsReq struct {
	Content        string `json:"content"`
	PrimaryCount   int    `json:"primaryCount"`
	SecondaryCount int    `json:"secondaryCount"`
	Note           string `json:"note"`
	UserID         string `json:"userId"`
	WorkspaceID    string `json:"workspaceId"`
}

func (h *Handler) GenerateKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	uid, err := callerID(r, req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Keywords.Generate(r.Context(), services.GenerateInput{
		Content:        req.Content,
		PrimaryCount:   req.PrimaryCount,
		SecondaryCount: req.SecondaryCount,
		Note:           req.Note,
		UserID:         uid,
		WorkspaceID:    req.WorkspaceID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
