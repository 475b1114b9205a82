package handlers

import (
	"net/http"

	"github.com/baharkarakas/autoblog-backend/internal/api/httpx"
	"github.com/baharkarakas/autoblog-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type workspaceReq struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

func (h *Handler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req workspaceReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	uid, err := callerID(r, req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ws, err := h.Workspaces.Create(r.Context(), services.CreateWorkspaceInput{Name: req.Name, OwnerID: uid})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ws)
}

type apiKeyReq struct {
	APIKey string `json:"apiKey"`
}

func (h *Handler) PutAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	err := h.Credentials.SetCredential(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "apiType"), req.APIKey)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.Credentials.DeactivateCredential(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "apiType")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
