package models

import (
	"time"
)

// Resume represents one uploaded resume file and its latest parsed
// state. Parsed holds the formatted parse output as JSON; Version
// counts successful parses monotonically.
type Resume struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	ContentType string    `db:"content_type" json:"content_type"`
	Status      string    `db:"status" json:"status"` // uploaded | processing | parsed | failed
	Version     int       `db:"version" json:"version"`
	Parsed      []byte    `db:"parsed" json:"parsed,omitempty"` // FormattedResume JSON
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ParseRecord is one append-only parse-history entry, written together
// with the version bump on every successful parse.
type ParseRecord struct {
	ID          string    `db:"id" json:"id"`
	ResumeID    string    `db:"resume_id" json:"resume_id"`
	Version     int       `db:"version" json:"version"`
	Method      string    `db:"method" json:"method"` // layout | text | llm
	CharCount   int       `db:"char_count" json:"char_count"`
	FieldCounts string    `db:"field_counts" json:"field_counts"` // e.g. "skills=12 experience=3"
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Company is one outreach target: a company or an academic faculty
// entry, with an embedding of its description for similarity matching.
type Company struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Domain      string    `db:"domain" json:"domain"` // industry / research domain
	Email       string    `db:"email" json:"email"`
	Description string    `db:"description" json:"description"`
	Embedding   []float32 `db:"embedding" json:"-"` // pgvector column
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CompanyMatch pairs a company with its similarity to a resume.
type CompanyMatch struct {
	Company Company `json:"company"`
	Score   float64 `json:"score"` // cosine similarity, higher is better
}
