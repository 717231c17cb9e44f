package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
)

// MatchService ranks companies/faculty against a parsed resume by
// embedding similarity. It consumes the formatted parse output stored
// on the resume row; it never re-runs the pipeline.
type MatchService struct {
	db       core.DbClient
	embedder core.EmbeddingProvider
}

func NewMatchService(db core.DbClient, embedder core.EmbeddingProvider) *MatchService {
	return &MatchService{db: db, embedder: embedder}
}

// MatchResume embeds a summary of the resume's parsed fields and
// returns the closest companies.
func (s *MatchService) MatchResume(ctx context.Context, resumeID string, limit int) ([]models.CompanyMatch, error) {
	resume, err := s.db.GetResumeByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, fmt.Errorf("resume not found: %s", resumeID)
	}
	if len(resume.Parsed) == 0 {
		return nil, fmt.Errorf("resume %s has no parsed version yet", resumeID)
	}

	var parsed parse_engine.FormattedResume
	if err := json.Unmarshal(resume.Parsed, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal parsed resume: %w", err)
	}

	summary := resumeSummary(&parsed)
	if summary == "" {
		return nil, fmt.Errorf("resume %s parsed to no matchable content", resumeID)
	}

	vecs, err := s.embedder.EmbedTexts(ctx, []string{summary})
	if err != nil {
		return nil, fmt.Errorf("embed resume summary: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}

	return s.db.MatchCompanies(ctx, vecs[0], limit)
}

// ImportCompanies embeds company descriptions in parallel batches and
// upserts them. Companies without an ID get one assigned.
func (s *MatchService) ImportCompanies(ctx context.Context, companies []models.Company) error {
	const batchSize = 16

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for start := 0; start < len(companies); start += batchSize {
		end := start + batchSize
		if end > len(companies) {
			end = len(companies)
		}
		batch := companies[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Name + "\n" + c.Domain + "\n" + c.Description
			}

			vecs, err := s.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				return fmt.Errorf("embed company batch: %w", err)
			}
			if len(vecs) != len(batch) {
				return fmt.Errorf("embedder returned %d vectors for %d companies", len(vecs), len(batch))
			}

			for i := range batch {
				c := batch[i]
				if c.ID == "" {
					c.ID = uuid.NewString()
				}
				if c.CreatedAt.IsZero() {
					c.CreatedAt = time.Now()
				}
				c.Embedding = vecs[i]
				if err := s.db.UpsertCompany(ctx, &c); err != nil {
					return fmt.Errorf("upsert company %s: %w", c.Name, err)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// resumeSummary flattens the fields the email generator also reads
// (skills, experience, projects, education) into one embeddable string.
func resumeSummary(f *parse_engine.FormattedResume) string {
	var parts []string

	if f.Objective != "" {
		parts = append(parts, f.Objective)
	}
	if len(f.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(f.Skills, ", "))
	}
	for _, e := range f.Experience {
		parts = append(parts, strings.TrimSpace(e.Title+" at "+e.Company))
	}
	for _, p := range f.Projects {
		entry := p.Name
		if p.Technologies != "" {
			entry += " (" + p.Technologies + ")"
		}
		parts = append(parts, entry)
	}
	for _, e := range f.Education {
		parts = append(parts, strings.TrimSpace(e.Degree+" "+e.Name))
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}
