package core

import (
	"context"
	"io"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
)

// DbClient defines all persistence operations the services need. It
// abstracts Postgres/pgvector so higher layers never depend on a
// specific DB.
type DbClient interface {
	CreateResume(ctx context.Context, resume *models.Resume) error
	GetResumeByID(ctx context.Context, id string) (*models.Resume, error)
	ListResumesByUser(ctx context.Context, userID string) ([]models.Resume, error)
	UpdateResumeStatus(ctx context.Context, id string, status string) error

	// UpdateResumeParse stores the formatted parse output, bumps the
	// version counter, and appends the parse-history record in one
	// transaction. It returns the new version.
	UpdateResumeParse(ctx context.Context, id string, parsed []byte, record *models.ParseRecord) (int, error)

	ListParseHistory(ctx context.Context, resumeID string) ([]models.ParseRecord, error)

	UpsertCompany(ctx context.Context, company *models.Company) error
	MatchCompanies(ctx context.Context, embedding []float32, limit int) ([]models.CompanyMatch, error)

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// Abstract so AWS can be swapped for MinIO, R2, etc.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)

	GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
