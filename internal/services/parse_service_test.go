package services

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/config"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/models"
)

// fakeDB is an in-memory DbClient for service tests.
type fakeDB struct {
	resumes map[string]*models.Resume
	history []models.ParseRecord
	status  []string
	matches []models.CompanyMatch
	upserts []models.Company
}

func newFakeDB() *fakeDB {
	return &fakeDB{resumes: map[string]*models.Resume{}}
}

func (f *fakeDB) CreateResume(_ context.Context, r *models.Resume) error {
	f.resumes[r.ID] = r
	return nil
}

func (f *fakeDB) GetResumeByID(_ context.Context, id string) (*models.Resume, error) {
	return f.resumes[id], nil
}

func (f *fakeDB) ListResumesByUser(_ context.Context, userID string) ([]models.Resume, error) {
	var out []models.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateResumeStatus(_ context.Context, id, status string) error {
	f.status = append(f.status, status)
	if r, ok := f.resumes[id]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeDB) UpdateResumeParse(_ context.Context, id string, parsed []byte, record *models.ParseRecord) (int, error) {
	r, ok := f.resumes[id]
	if !ok {
		return 0, nil
	}
	r.Parsed = parsed
	r.Version++
	r.Status = "parsed"
	record.Version = r.Version
	f.history = append(f.history, *record)
	return r.Version, nil
}

func (f *fakeDB) ListParseHistory(_ context.Context, resumeID string) ([]models.ParseRecord, error) {
	var out []models.ParseRecord
	for _, rec := range f.history {
		if rec.ResumeID == resumeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDB) UpsertCompany(_ context.Context, c *models.Company) error {
	f.upserts = append(f.upserts, *c)
	return nil
}

func (f *fakeDB) MatchCompanies(_ context.Context, _ []float32, limit int) ([]models.CompanyMatch, error) {
	if limit < len(f.matches) {
		return f.matches[:limit], nil
	}
	return f.matches, nil
}

func (f *fakeDB) Close() error { return nil }

// fakeObj serves stored bytes by key.
type fakeObj struct {
	files map[string][]byte
}

func (f *fakeObj) UploadFile(_ context.Context, _, key string, data []byte, _ string) (string, error) {
	f.files[key] = data
	return key, nil
}

func (f *fakeObj) DeleteFile(_ context.Context, _, key string) error {
	delete(f.files, key)
	return nil
}

func (f *fakeObj) GetFile(_ context.Context, _, key string) ([]byte, error) {
	return f.files[key], nil
}

func (f *fakeObj) GetObjectReader(_ context.Context, _, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(f.files[key]))), nil
}

// fakeFallback returns a fixed document.
type fakeFallback struct {
	result *parse_engine.FormattedResume
	calls  int
}

func (f *fakeFallback) ExtractResume(_ context.Context, _ string) (*parse_engine.FormattedResume, error) {
	f.calls++
	return f.result, nil
}

const sampleResumeText = `John Smith
john.smith@example.com

EDUCATION
MIT 2016 - 2020
Bachelor of Science in Computer Science

SKILLS
Technical: Go, Python
`

func newTestParseService(db *fakeDB, obj *fakeObj) *ParseService {
	cfg := &config.Config{BucketName: "test-bucket"}
	pipeline := parse_engine.New(parse_engine.Config{})
	return NewParseService(db, obj, pipeline, nil, cfg)
}

func TestProcessOneTextFlow(t *testing.T) {
	db := newFakeDB()
	obj := &fakeObj{files: map[string][]byte{
		"u1/r1/resume.txt": []byte(sampleResumeText),
	}}
	db.resumes["r1"] = &models.Resume{
		ID: "r1", UserID: "u1", StorageKey: "u1/r1/resume.txt",
		ContentType: "text/plain", Status: "uploaded",
	}

	svc := newTestParseService(db, obj)
	if err := svc.ProcessOne(context.Background(), "r1"); err != nil {
		t.Fatal(err)
	}

	r := db.resumes["r1"]
	if r.Status != "parsed" {
		t.Errorf("status = %q, want parsed", r.Status)
	}
	if r.Version != 1 {
		t.Errorf("version = %d, want 1", r.Version)
	}

	var parsed parse_engine.FormattedResume
	if err := json.Unmarshal(r.Parsed, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Name != "John Smith" {
		t.Errorf("Name = %q", parsed.Name)
	}
	if len(parsed.Education) != 1 {
		t.Errorf("education = %v", parsed.Education)
	}

	if len(db.history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(db.history))
	}
	rec := db.history[0]
	if rec.Method != "text" {
		t.Errorf("method = %q, want text", rec.Method)
	}
	if rec.CharCount == 0 {
		t.Error("CharCount should be non-zero")
	}
	if !strings.Contains(rec.FieldCounts, "education=1") {
		t.Errorf("FieldCounts = %q", rec.FieldCounts)
	}
}

func TestProcessOneReparseBumpsVersion(t *testing.T) {
	db := newFakeDB()
	obj := &fakeObj{files: map[string][]byte{
		"k": []byte(sampleResumeText),
	}}
	db.resumes["r1"] = &models.Resume{
		ID: "r1", StorageKey: "k", ContentType: "text/plain",
	}

	svc := newTestParseService(db, obj)
	for i := 0; i < 3; i++ {
		if err := svc.ProcessOne(context.Background(), "r1"); err != nil {
			t.Fatal(err)
		}
	}

	if db.resumes["r1"].Version != 3 {
		t.Errorf("version = %d, want 3", db.resumes["r1"].Version)
	}
	if len(db.history) != 3 {
		t.Errorf("history entries = %d, want 3", len(db.history))
	}
}

func TestProcessOneEmptyDocumentMarksFailed(t *testing.T) {
	db := newFakeDB()
	obj := &fakeObj{files: map[string][]byte{"k": []byte("   \n  ")}}
	db.resumes["r1"] = &models.Resume{ID: "r1", StorageKey: "k", ContentType: "text/plain"}

	svc := newTestParseService(db, obj)
	if err := svc.ProcessOne(context.Background(), "r1"); err == nil {
		t.Fatal("expected error for empty document")
	}
	if db.resumes["r1"].Status != "failed" {
		t.Errorf("status = %q, want failed", db.resumes["r1"].Status)
	}
}

func TestProcessOneFallsBackToLLM(t *testing.T) {
	db := newFakeDB()
	obj := &fakeObj{files: map[string][]byte{"k": []byte("too short")}}
	db.resumes["r1"] = &models.Resume{ID: "r1", StorageKey: "k", ContentType: "text/plain"}

	fb := &fakeFallback{result: &parse_engine.FormattedResume{Name: "From LLM"}}
	cfg := &config.Config{BucketName: "test-bucket"}
	pipeline := parse_engine.New(parse_engine.Config{MinChars: 500})
	svc := NewParseService(db, obj, pipeline, fb, cfg)

	if err := svc.ProcessOne(context.Background(), "r1"); err != nil {
		t.Fatal(err)
	}
	if fb.calls != 1 {
		t.Errorf("fallback calls = %d, want 1", fb.calls)
	}
	if db.history[0].Method != "llm" {
		t.Errorf("method = %q, want llm", db.history[0].Method)
	}
}

func TestBackfillDegraded(t *testing.T) {
	prev := &parse_engine.FormattedResume{
		Name:   "John Smith",
		Email:  "john@example.com",
		Skills: []string{"Go"},
		Education: []parse_engine.FormattedEducation{
			{Name: "MIT"},
		},
	}
	cur := &parse_engine.FormattedResume{
		Name:   "John Smith",
		Skills: []string{"Go", "Rust"},
	}

	backfillDegraded(cur, prev)

	if cur.Email != "john@example.com" {
		t.Errorf("Email not backfilled: %q", cur.Email)
	}
	if len(cur.Skills) != 2 {
		t.Errorf("non-empty Skills overwritten: %v", cur.Skills)
	}
	if len(cur.Education) != 1 {
		t.Errorf("Education not backfilled: %v", cur.Education)
	}
}

func TestEnqueueNonBlocking(t *testing.T) {
	svc := newTestParseService(newFakeDB(), &fakeObj{files: map[string][]byte{}})

	accepted := 0
	for i := 0; i < 100; i++ {
		if svc.Enqueue("r") {
			accepted++
		}
	}
	if accepted == 0 || accepted == 100 {
		t.Errorf("accepted = %d, want a bounded queue that eventually refuses", accepted)
	}
}

func TestFieldCounts(t *testing.T) {
	f := &parse_engine.FormattedResume{
		Skills:     []string{"Go", "Python"},
		Experience: []parse_engine.FormattedExperience{{Company: "Acme"}},
	}
	got := fieldCounts(f)
	if !strings.Contains(got, "skills=2") || !strings.Contains(got, "experience=1") {
		t.Errorf("fieldCounts = %q", got)
	}
}
