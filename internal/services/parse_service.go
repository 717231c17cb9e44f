package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
)

// ParseService orchestrates resume parsing around the layout pipeline:
//
// db:       persistence for resumes, versions, and parse history.
// obj:      object storage holding the uploaded bytes.
// pipeline: the deterministic layout-analysis engine (always tried first).
// fallback: the LLM-based extraction contract, used only when stage one
//           of the pipeline fails; may be nil.
// jobs:     in-memory queue of resume IDs; cmd/worker runs the same
//           loop fed from AMQP instead.
type ParseService struct {
	db       core.DbClient
	obj      core.ObjectClient
	pipeline *parse_engine.Pipeline
	fallback core.FallbackExtractor
	cfg      *config.Config
	jobs     chan string
}

// NewParseService constructs the service with a bounded job queue.
func NewParseService(db core.DbClient, obj core.ObjectClient, pipeline *parse_engine.Pipeline, fallback core.FallbackExtractor, cfg *config.Config) *ParseService {
	return &ParseService{
		db: db, obj: obj, pipeline: pipeline, fallback: fallback, cfg: cfg,
		jobs: make(chan string, 64),
	}
}

// Start launches numWorkers goroutines draining the job queue. Each
// resume is one independent pipeline invocation; workers share nothing.
func (s *ParseService) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case resumeID := <-s.jobs:
					if err := s.ProcessOne(ctx, resumeID); err != nil {
						log.Printf("parse failed for resume %s: %v", resumeID, err)
					}
				}
			}
		}()
	}
}

// Enqueue schedules a resume for parsing. Non-blocking; a full queue
// drops the job and the caller can re-trigger.
func (s *ParseService) Enqueue(resumeID string) bool {
	select {
	case s.jobs <- resumeID:
		return true
	default:
		return false
	}
}

// ProcessOne fetches the stored bytes, runs the pipeline, backfills
// degraded fields from the previous version, and persists the result
// with a version bump and history record. Marks the resume failed only
// when both the layout pipeline and the fallback cannot produce a
// document; best-effort partial output counts as success.
func (s *ParseService) ProcessOne(ctx context.Context, resumeID string) error {
	resume, err := s.db.GetResumeByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}
	if resume == nil {
		return fmt.Errorf("resume not found: %s", resumeID)
	}

	if err := s.db.UpdateResumeStatus(ctx, resumeID, "processing"); err != nil {
		return err
	}

	// The only I/O boundary: bytes are fetched once, before stage one.
	data, err := s.obj.GetFile(ctx, s.cfg.BucketName, resume.StorageKey)
	if err != nil {
		_ = s.db.UpdateResumeStatus(ctx, resumeID, "failed")
		return fmt.Errorf("fetch bytes: %w", err)
	}

	formatted, method, err := s.parse(ctx, data, resume.ContentType)
	if err != nil {
		_ = s.db.UpdateResumeStatus(ctx, resumeID, "failed")
		return fmt.Errorf("parse: %w", err)
	}

	if len(resume.Parsed) > 0 {
		var previous parse_engine.FormattedResume
		if err := json.Unmarshal(resume.Parsed, &previous); err == nil {
			backfillDegraded(formatted, &previous)
		}
	}

	payload, err := json.Marshal(formatted)
	if err != nil {
		return fmt.Errorf("marshal parse result: %w", err)
	}

	record := &models.ParseRecord{
		ID:          uuid.NewString(),
		ResumeID:    resumeID,
		Method:      method,
		CharCount:   textLength(formatted),
		FieldCounts: fieldCounts(formatted),
		CreatedAt:   time.Now(),
	}
	version, err := s.db.UpdateResumeParse(ctx, resumeID, payload, record)
	if err != nil {
		return fmt.Errorf("persist parse: %w", err)
	}

	log.Printf("resume %s parsed (version %d, method %s)", resumeID, version, method)
	return nil
}

// parse runs the layout pipeline for PDFs and the lenient text path for
// everything else. Stage-one failures trigger the LLM fallback contract
// when one is configured.
func (s *ParseService) parse(ctx context.Context, data []byte, contentType string) (*parse_engine.FormattedResume, string, error) {
	var (
		doc     *parse_engine.ResumeDocument
		method  string
		rawText string
		err     error
	)

	if contentType == "application/pdf" {
		method = "layout"
		doc, err = s.pipeline.Parse(data)
	} else {
		method = "text"
		rawText, err = parse_engine.ExtractPlainText(data, contentType)
		if err == nil {
			doc, err = s.pipeline.ParseText(rawText)
		}
	}

	if err == nil {
		return parse_engine.Format(doc), method, nil
	}

	if s.fallback == nil {
		return nil, "", err
	}

	// Stage one failed; hand whatever text we can salvage to the LLM path.
	if rawText == "" {
		rawText, _ = parse_engine.ExtractPlainText(data, contentType)
	}
	if rawText == "" {
		return nil, "", err
	}

	formatted, fbErr := s.fallback.ExtractResume(ctx, rawText)
	if fbErr != nil {
		return nil, "", fmt.Errorf("layout: %v; fallback: %w", err, fbErr)
	}
	return formatted, "llm", nil
}

// backfillDegraded copies the previous version's value into any field
// the new parse left empty, so a worse parse never erases good data.
func backfillDegraded(cur, prev *parse_engine.FormattedResume) {
	if cur.Name == "" {
		cur.Name = prev.Name
	}
	if cur.Email == "" {
		cur.Email = prev.Email
	}
	if cur.Phone == "" {
		cur.Phone = prev.Phone
	}
	if cur.Location == "" {
		cur.Location = prev.Location
	}
	if cur.URL == "" {
		cur.URL = prev.URL
	}
	if cur.Objective == "" {
		cur.Objective = prev.Objective
	}
	if len(cur.Skills) == 0 {
		cur.Skills = prev.Skills
	}
	if len(cur.Education) == 0 {
		cur.Education = prev.Education
	}
	if len(cur.Experience) == 0 {
		cur.Experience = prev.Experience
	}
	if len(cur.Projects) == 0 {
		cur.Projects = prev.Projects
	}
	if len(cur.Volunteer) == 0 {
		cur.Volunteer = prev.Volunteer
	}
	if len(cur.Achievements) == 0 {
		cur.Achievements = prev.Achievements
	}
}

func textLength(f *parse_engine.FormattedResume) int {
	n := len(f.Name) + len(f.Email) + len(f.Phone) + len(f.Location) + len(f.URL) + len(f.Objective)
	for _, s := range f.Skills {
		n += len(s)
	}
	for _, e := range f.Education {
		n += len(e.Name) + len(e.Degree) + len(e.GPA) + len(e.Date)
	}
	for _, e := range append(append([]parse_engine.FormattedExperience{}, f.Experience...), f.Volunteer...) {
		n += len(e.Company) + len(e.Title) + len(e.Date)
		for _, d := range e.Description {
			n += len(d)
		}
	}
	for _, p := range f.Projects {
		n += len(p.Name) + len(p.Technologies) + len(p.Date) + len(p.Description)
	}
	for _, a := range f.Achievements {
		n += len(a.Title) + len(a.Date) + len(a.Description)
	}
	return n
}

func fieldCounts(f *parse_engine.FormattedResume) string {
	return fmt.Sprintf("skills=%d education=%d experience=%d projects=%d volunteer=%d achievements=%d",
		len(f.Skills), len(f.Education), len(f.Experience), len(f.Projects), len(f.Volunteer), len(f.Achievements))
}
