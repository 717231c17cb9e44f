package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/services"
)

type MatchHandler struct {
	dbclient core.DbClient
	matcher  *services.MatchService
	cfg      *config.Config
}

func NewMatchHandler(dbclient core.DbClient, matcher *services.MatchService, cfg *config.Config) *MatchHandler {
	return &MatchHandler{dbclient: dbclient, matcher: matcher, cfg: cfg}
}

// MatchResume ranks stored companies against a parsed resume.
func (h *MatchHandler) MatchResume(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "X-User-ID header required", http.StatusBadRequest)
		return
	}

	limit := h.cfg.MatchLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rh := &ResumeHandler{dbclient: h.dbclient}
	resume, ok := rh.ownedResume(w, r)
	if !ok {
		return
	}
	if resume.Status != "parsed" {
		http.Error(w, fmt.Sprintf("resume not parsed yet (status %q)", resume.Status), http.StatusConflict)
		return
	}

	matches, err := h.matcher.MatchResume(r.Context(), resume.ID, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("match failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// ImportCompanies bulk-loads companies and their embeddings. Intended
// for seeding the outreach target pool.
func (h *MatchHandler) ImportCompanies(w http.ResponseWriter, r *http.Request) {
	var companies []models.Company
	if err := json.NewDecoder(r.Body).Decode(&companies); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(companies) == 0 {
		http.Error(w, "empty company list", http.StatusBadRequest)
		return
	}

	if err := h.matcher.ImportCompanies(r.Context(), companies); err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(companies)})
}
