package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for resumes

func (c *DatabaseClient) CreateResume(ctx context.Context, resume *models.Resume) error {
	if resume == nil {
		return errors.New("nil resume")
	}
	const q = `
		INSERT INTO resumes
			(id, user_id, file_name, storage_key, content_type, status, version, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, 0, COALESCE($7, now()), COALESCE($8, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		resume.ID, resume.UserID, resume.FileName, resume.StorageKey, resume.ContentType,
		resume.Status, resume.CreatedAt, resume.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetResumeByID(ctx context.Context, id string) (*models.Resume, error) {
	const q = `
		SELECT id, user_id, file_name, storage_key, content_type, status, version, parsed, created_at, updated_at
		FROM resumes
		WHERE id = $1
	`
	var r models.Resume
	var parsed sql.NullString
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.UserID, &r.FileName, &r.StorageKey, &r.ContentType,
		&r.Status, &r.Version, &parsed, &r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if parsed.Valid {
		r.Parsed = []byte(parsed.String)
	}
	return &r, nil
}

func (c *DatabaseClient) ListResumesByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	const q = `
		SELECT id, user_id, file_name, storage_key, content_type, status, version, created_at, updated_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Resume
	for rows.Next() {
		var r models.Resume
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.FileName, &r.StorageKey, &r.ContentType,
			&r.Status, &r.Version, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateResumeStatus(ctx context.Context, id string, status string) error {
	const q = `
		UPDATE resumes
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// UpdateResumeParse stores the parse output, bumps the version counter,
// and appends the history record in a single transaction.
func (c *DatabaseClient) UpdateResumeParse(ctx context.Context, id string, parsed []byte, record *models.ParseRecord) (int, error) {
	if record == nil {
		return 0, errors.New("nil parse record")
	}

	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}

	const updateQ = `
		UPDATE resumes
		SET parsed = $2, status = 'parsed', version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version
	`
	var version int
	if err := tx.QueryRowContext(ctx, updateQ, id, string(parsed)).Scan(&version); err != nil {
		_ = tx.Rollback()
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("resume not found: %s", id)
		}
		return 0, err
	}

	const historyQ = `
		INSERT INTO parse_history
			(id, resume_id, version, method, char_count, field_counts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
	`
	if _, err := tx.ExecContext(ctx, historyQ,
		record.ID, id, version, record.Method, record.CharCount, record.FieldCounts, record.CreatedAt,
	); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	return version, tx.Commit()
}

func (c *DatabaseClient) ListParseHistory(ctx context.Context, resumeID string) ([]models.ParseRecord, error) {
	const q = `
		SELECT id, resume_id, version, method, char_count, field_counts, created_at
		FROM parse_history
		WHERE resume_id = $1
		ORDER BY version ASC
	`
	rows, err := c.db.QueryContext(ctx, q, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ParseRecord
	for rows.Next() {
		var p models.ParseRecord
		if err := rows.Scan(
			&p.ID, &p.ResumeID, &p.Version, &p.Method, &p.CharCount, &p.FieldCounts, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Implementing the db interface for companies

func (c *DatabaseClient) UpsertCompany(ctx context.Context, company *models.Company) error {
	if company == nil {
		return errors.New("nil company")
	}
	const q = `
		INSERT INTO companies (id, name, domain, email, description, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, domain = EXCLUDED.domain, email = EXCLUDED.email,
		    description = EXCLUDED.description, embedding = EXCLUDED.embedding
	`
	_, err := c.db.ExecContext(ctx, q,
		company.ID, company.Name, company.Domain, company.Email, company.Description,
		pgvector.NewVector(company.Embedding), company.CreatedAt)
	return err
}

// MatchCompanies ranks companies by cosine similarity to the given
// embedding. pgvector's <=> is cosine distance, so similarity = 1 - distance.
func (c *DatabaseClient) MatchCompanies(ctx context.Context, embedding []float32, limit int) ([]models.CompanyMatch, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
		SELECT id, name, domain, email, description, created_at,
		       1 - (embedding <=> $1) AS score
		FROM companies
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := c.db.QueryContext(ctx, q, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CompanyMatch
	for rows.Next() {
		var m models.CompanyMatch
		if err := rows.Scan(
			&m.Company.ID, &m.Company.Name, &m.Company.Domain, &m.Company.Email,
			&m.Company.Description, &m.Company.CreatedAt, &m.Score,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
