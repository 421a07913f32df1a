package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobport/internal/domain/application"
	"jobport/internal/domain/company"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"
	"jobport/internal/usecase/ownership"

	"github.com/google/uuid"
)

type mockApplicationRepo struct {
	byID      map[uuid.UUID]application.Application
	exists    bool
	existsErr error
	createErr error
	created   []application.Application

	jobRows       []application.JobRow
	candidateRows []application.CandidateRow
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, a)
	if m.byID == nil {
		m.byID = map[uuid.UUID]application.Application{}
	}
	m.byID[a.ID] = a
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) ExistsByJobAndApplicant(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	m.byID[id] = a
	return a, nil
}

func (m *mockApplicationRepo) UpdateFeedback(_ context.Context, id uuid.UUID, feedback string, at time.Time) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Feedback = &feedback
	a.FeedbackAt = &at
	m.byID[id] = a
	return a, nil
}

func (m *mockApplicationRepo) ListByJob(context.Context, uuid.UUID) ([]application.JobRow, error) {
	return m.jobRows, nil
}

func (m *mockApplicationRepo) ListByApplicant(context.Context, uuid.UUID) ([]application.CandidateRow, error) {
	return m.candidateRows, nil
}

func (m *mockApplicationRepo) CountByStatus(context.Context, application.Status) (int64, error) {
	return 0, nil
}

type mockJobRepo struct {
	postings map[uuid.UUID]job.Posting
}

func (m mockJobRepo) Create(context.Context, job.Posting) error { return nil }
func (m mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := m.postings[id]
	if !ok {
		return job.Posting{}, job.ErrNotFound
	}
	return p, nil
}
func (m mockJobRepo) Update(context.Context, job.Posting) error { return nil }
func (m mockJobRepo) List(context.Context, job.ListFilter) ([]job.ListRow, int64, error) {
	return nil, 0, nil
}
func (m mockJobRepo) GetRowByID(context.Context, uuid.UUID) (job.ListRow, error) {
	return job.ListRow{}, job.ErrNotFound
}
func (m mockJobRepo) ListHighestPaid(context.Context, int) ([]job.ListRow, error) { return nil, nil }
func (m mockJobRepo) ListMostRecent(context.Context, int) ([]job.ListRow, error)  { return nil, nil }
func (m mockJobRepo) ListByCompany(context.Context, uuid.UUID) ([]job.ManagerRow, error) {
	return nil, nil
}
func (m mockJobRepo) Count(context.Context) (int64, error) { return 0, nil }

type mockCompanyRepo struct {
	byID map[uuid.UUID]company.Company
}

func (m mockCompanyRepo) Create(context.Context, company.Company) error { return nil }
func (m mockCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := m.byID[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}
func (m mockCompanyRepo) GetByOwner(context.Context, uuid.UUID) (company.Company, error) {
	return company.Company{}, company.ErrNotFound
}
func (m mockCompanyRepo) List(context.Context, int, int) ([]company.Company, error) {
	return nil, nil
}
func (m mockCompanyRepo) Count(context.Context) (int64, error) { return 0, nil }

type fixture struct {
	svc     *Service
	apps    *mockApplicationRepo
	store   *mockStore
	now     time.Time
	ownerID uuid.UUID
	posting job.Posting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ownerID := uuid.New()
	comp := company.Company{ID: uuid.New(), OwnerID: ownerID, Name: "Acme"}
	posting := job.Posting{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Title:     "Backend Engineer",
		Salary:    9000,
		Deadline:  now.Add(48 * time.Hour),
	}

	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{}}
	store := &mockStore{ref: "https://files.example.com/resumes/abc.pdf"}
	owner := ownership.NewResolver(mockCompanyRepo{byID: map[uuid.UUID]company.Company{comp.ID: comp}})
	resumes := NewResumeResolver(store, mockUserRepo{})

	svc := NewService(apps, mockJobRepo{postings: map[uuid.UUID]job.Posting{posting.ID: posting}}, resumes, owner)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, apps: apps, store: store, now: now, ownerID: ownerID, posting: posting}
}

func candidate() user.Principal {
	return user.Principal{ID: uuid.New(), Email: "cand@example.com", Role: user.RoleCandidate}
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:       f.posting.ID,
		CoverLetter: "  I would love to join.  ",
		Upload:      &Upload{Data: []byte("%PDF"), MimeType: "application/pdf", Filename: "cv.pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("new application must be pending, got %q", a.Status)
	}
	if a.ResumeURL != f.store.ref {
		t.Fatalf("expected stored resume ref, got %q", a.ResumeURL)
	}
	if a.CoverLetter != "I would love to join." {
		t.Fatalf("cover letter not trimmed: %q", a.CoverLetter)
	}
	if len(f.apps.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(f.apps.created))
	}
	if got := f.apps.created[0]; got.JobID != f.posting.ID || got.ApplicantID == uuid.Nil {
		t.Fatalf("insert must carry both linkages")
	}
}

func TestSubmit_DeadlinePassed(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return f.posting.Deadline }

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:  f.posting.ID,
		Upload: &Upload{Data: []byte("x")},
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
	if len(f.apps.created) != 0 {
		t.Fatalf("nothing must be created after the deadline")
	}
}

func TestSubmit_JobNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:  uuid.New(),
		Upload: &Upload{Data: []byte("x")},
	})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestSubmit_AlreadyApplied(t *testing.T) {
	f := newFixture(t)
	f.apps.exists = true

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:  f.posting.ID,
		Upload: &Upload{Data: []byte("x")},
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if f.store.stored != 0 {
		t.Fatalf("duplicate must be rejected before touching storage")
	}
}

func TestSubmit_DuplicateRace(t *testing.T) {
	// The early existence check missed a concurrent insert; the unique
	// constraint converts the second insert into the same conflict.
	f := newFixture(t)
	f.apps.exists = false
	f.apps.createErr = application.ErrDuplicate

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:  f.posting.ID,
		Upload: &Upload{Data: []byte("x")},
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestSubmit_StorageFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("bucket down")

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{
		JobID:  f.posting.ID,
		Upload: &Upload{Data: []byte("x")},
	})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(f.apps.created) != 0 {
		t.Fatalf("storage failure must leave no application behind")
	}
}

func TestSubmit_ResumeRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), candidate(), SubmitInput{JobID: f.posting.ID})
	if !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected ErrResumeRequired, got %v", err)
	}
}

func seedApplication(f *fixture, status application.Status) application.Application {
	a := application.Application{
		ID:          uuid.New(),
		JobID:       f.posting.ID,
		ApplicantID: uuid.New(),
		ResumeURL:   "https://files.example.com/resumes/abc.pdf",
		Status:      status,
	}
	f.apps.byID[a.ID] = a
	return a
}

func TestSetStatus_Owner(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusAccepted)
	owner := user.Principal{ID: f.ownerID, Role: user.RoleHiringManager}

	// Moving backward is allowed; any of the four values is reachable.
	got, err := f.svc.SetStatus(context.Background(), owner, f.posting.ID, a.ID, "pending")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusPending {
		t.Fatalf("expected pending, got %q", got.Status)
	}

	// Setting the same value again is a harmless overwrite.
	got, err = f.svc.SetStatus(context.Background(), owner, f.posting.ID, a.ID, "pending")
	if err != nil {
		t.Fatalf("unexpected err on repeat: %v", err)
	}
	if got.Status != application.StatusPending {
		t.Fatalf("expected pending, got %q", got.Status)
	}
}

func TestSetStatus_InvalidValue(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusPending)
	owner := user.Principal{ID: f.ownerID, Role: user.RoleHiringManager}

	if _, err := f.svc.SetStatus(context.Background(), owner, f.posting.ID, a.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetStatus_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusPending)
	other := user.Principal{ID: uuid.New(), Role: user.RoleHiringManager}

	if _, err := f.svc.SetStatus(context.Background(), other, f.posting.ID, a.ID, "accepted"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSetStatus_AdminBypassesOwnership(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusPending)
	admin := user.Principal{ID: uuid.New(), Role: user.RoleAdmin}

	if _, err := f.svc.SetStatus(context.Background(), admin, f.posting.ID, a.ID, "reviewing"); err != nil {
		t.Fatalf("admin must be allowed: %v", err)
	}
}

func TestSetStatus_ApplicationOnDifferentJob(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusPending)
	a.JobID = uuid.New()
	f.apps.byID[a.ID] = a
	owner := user.Principal{ID: f.ownerID, Role: user.RoleHiringManager}

	if _, err := f.svc.SetStatus(context.Background(), owner, f.posting.ID, a.ID, "accepted"); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestSetFeedback(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusReviewing)
	owner := user.Principal{ID: f.ownerID, Role: user.RoleHiringManager}

	got, err := f.svc.SetFeedback(context.Background(), owner, f.posting.ID, a.ID, "  Strong portfolio.  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Feedback == nil || *got.Feedback != "Strong portfolio." {
		t.Fatalf("feedback not stored trimmed: %v", got.Feedback)
	}
	if got.FeedbackAt == nil || !got.FeedbackAt.Equal(f.now) {
		t.Fatalf("feedback timestamp not set to now")
	}
}

func TestSetFeedback_Empty(t *testing.T) {
	f := newFixture(t)
	a := seedApplication(f, application.StatusReviewing)
	owner := user.Principal{ID: f.ownerID, Role: user.RoleHiringManager}

	if _, err := f.svc.SetFeedback(context.Background(), owner, f.posting.ID, a.ID, "   "); !errors.Is(err, ErrEmptyFeedback) {
		t.Fatalf("expected ErrEmptyFeedback, got %v", err)
	}
}

func TestListForJob_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	other := user.Principal{ID: uuid.New(), Role: user.RoleHiringManager}

	if _, err := f.svc.ListForJob(context.Background(), other, f.posting.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListForCandidate(t *testing.T) {
	f := newFixture(t)
	f.apps.candidateRows = []application.CandidateRow{
		{Application: application.Application{ID: uuid.New()}, JobTitle: "Backend Engineer"},
	}

	rows, err := f.svc.ListForCandidate(context.Background(), candidate())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0].JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
