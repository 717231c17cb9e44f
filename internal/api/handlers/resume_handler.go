package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/services"
)

type ResumeHandler struct {
	dbclient     core.DbClient
	objectclient core.ObjectClient
	parser       *services.ParseService
	cfg          *config.Config
}

func NewResumeHandler(dbclient core.DbClient, objectclient core.ObjectClient, parser *services.ParseService, cfg *config.Config) *ResumeHandler {
	return &ResumeHandler{dbclient: dbclient, objectclient: objectclient, parser: parser, cfg: cfg}
}

// userID reads the caller identity header. Authentication itself lives
// in front of this service.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// UploadResume handles file upload, DB insert, and background parsing.
func (h *ResumeHandler) UploadResume(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(32 << 20) // 32 MB

	uid := userID(r)
	if uid == "" {
		http.Error(w, "X-User-ID header required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read file", http.StatusBadRequest)
		return
	}

	// Sanitize filename to prevent path traversal or invalid characters
	cleanFilename := filepath.Base(header.Filename)
	resumeID := uuid.NewString()
	storageKey := fmt.Sprintf("%s/%s/%s", uid, resumeID, cleanFilename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	uploadCtx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if _, err := h.objectclient.UploadFile(uploadCtx, h.cfg.BucketName, storageKey, data, contentType); err != nil {
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	resume := &models.Resume{
		ID:          resumeID,
		UserID:      uid,
		FileName:    header.Filename,
		StorageKey:  storageKey,
		ContentType: contentType,
		Status:      "uploaded",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.dbclient.CreateResume(uploadCtx, resume); err != nil {
		log.Printf("DB insert failed for resume %s: %v", resumeID, err)
		http.Error(w, fmt.Sprintf("failed to store resume metadata: %v", err), http.StatusInternalServerError)
		return
	}

	if !h.parser.Enqueue(resumeID) {
		log.Printf("parse queue full, resume %s left in uploaded state", resumeID)
	}

	writeJSON(w, http.StatusAccepted, resume)
}

// GetResume returns one resume, including its latest parsed version.
func (h *ResumeHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := h.ownedResume(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

// ListResumes returns the caller's resumes, newest first.
func (h *ResumeHandler) ListResumes(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "X-User-ID header required", http.StatusBadRequest)
		return
	}

	resumes, err := h.dbclient.ListResumesByUser(r.Context(), uid)
	if err != nil {
		http.Error(w, fmt.Sprintf("list resumes: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resumes)
}

// ReparseResume re-enqueues an existing resume for parsing.
func (h *ResumeHandler) ReparseResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := h.ownedResume(w, r)
	if !ok {
		return
	}

	if !h.parser.Enqueue(resume.ID) {
		http.Error(w, "parse queue full, try again later", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": resume.ID, "status": "queued"})
}

// ParseHistory returns the append-only parse log for a resume.
func (h *ResumeHandler) ParseHistory(w http.ResponseWriter, r *http.Request) {
	resume, ok := h.ownedResume(w, r)
	if !ok {
		return
	}

	history, err := h.dbclient.ListParseHistory(r.Context(), resume.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("list history: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// ownedResume loads the path resume and confirms it belongs to the
// caller, writing the error response itself when it does not.
func (h *ResumeHandler) ownedResume(w http.ResponseWriter, r *http.Request) (*models.Resume, bool) {
	uid := userID(r)
	if uid == "" {
		http.Error(w, "X-User-ID header required", http.StatusBadRequest)
		return nil, false
	}

	id := chi.URLParam(r, "id")
	resume, err := h.dbclient.GetResumeByID(r.Context(), id)
	if err != nil || resume == nil {
		http.Error(w, "resume not found", http.StatusNotFound)
		return nil, false
	}
	if resume.UserID != uid {
		http.Error(w, "resume not found", http.StatusNotFound)
		return nil, false
	}
	return resume, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
