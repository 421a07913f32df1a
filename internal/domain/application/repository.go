package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("application not found")

	// ErrDuplicate surfaces the (job_id, applicant_id) unique constraint.
	// The storage layer is the authority for dedupe; the in-process check
	// before insert only exists to fail early with a cheaper query.
	ErrDuplicate = errors.New("application already exists")
)

// JobRow is an application joined with its applicant, as a manager reviews it.
type JobRow struct {
	Application
	ApplicantEmail     string
	ApplicantFirstName string
	ApplicantLastName  string
	ApplicantResumeURL string
}

// CandidateRow is an application joined with the posting it targets, as a
// candidate browses their own history.
type CandidateRow struct {
	Application
	JobTitle    string
	JobSalary   int64
	CompanyName string
}

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Application, error)
	UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string, at time.Time) (Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]JobRow, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]CandidateRow, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
