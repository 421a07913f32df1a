package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobport/internal/domain/application"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"
	"jobport/internal/usecase/ownership"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDeadlinePassed      = errors.New("application deadline is over")
	ErrAlreadyApplied      = errors.New("already applied for this job")
	ErrInvalidStatus       = errors.New("invalid status value")
	ErrEmptyFeedback       = errors.New("feedback cannot be empty")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal error")
)

type SubmitInput struct {
	JobID            uuid.UUID
	CoverLetter      string
	Upload           *Upload
	UseProfileResume bool
}

// Service is the application lifecycle: admission of new submissions and
// status/feedback transitions on existing ones.
type Service struct {
	applications application.Repository
	jobs         job.Repository
	resumes      *ResumeResolver
	owner        *ownership.Resolver

	now func() time.Time
}

func NewService(
	applications application.Repository,
	jobs job.Repository,
	resumes *ResumeResolver,
	owner *ownership.Resolver,
) *Service {
	return &Service{
		applications: applications,
		jobs:         jobs,
		resumes:      resumes,
		owner:        owner,
		now:          time.Now,
	}
}

// Submit admits a candidate's application: deadline gate, duplicate gate,
// resume resolution, then a single insert. The insert carries both linkages
// (job and applicant), so readers never see a partially linked application,
// and the unique constraint turns a lost duplicate race into ErrAlreadyApplied.
// Resume storage runs before the insert; its failure leaves no record behind.
func (s *Service) Submit(ctx context.Context, p user.Principal, in SubmitInput) (application.Application, error) {
	posting, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	if err := job.CanApply(posting, s.now()); err != nil {
		return application.Application{}, ErrDeadlinePassed
	}

	exists, err := s.applications.ExistsByJobAndApplicant(ctx, posting.ID, p.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	resumeRef, err := s.resumes.Resolve(ctx, p.ID, in.Upload, in.UseProfileResume)
	if err != nil {
		if errors.Is(err, ErrResumeRequired) {
			return application.Application{}, ErrResumeRequired
		}
		return application.Application{}, ErrStorage
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       posting.ID,
		ApplicantID: p.ID,
		ResumeURL:   resumeRef,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Status:      application.StatusPending,
	}

	if err := s.applications.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := s.applications.GetByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	return created, nil
}

// SetStatus overwrites the status after re-deriving ownership. Any of the
// four values is reachable from any other; last writer wins.
func (s *Service) SetStatus(ctx context.Context, p user.Principal, jobID, appID uuid.UUID, newStatus string) (application.Application, error) {
	status, ok := application.ParseStatus(newStatus)
	if !ok {
		return application.Application{}, ErrInvalidStatus
	}

	if err := s.verifyJobOwnership(ctx, p, jobID); err != nil {
		return application.Application{}, err
	}

	if err := s.requireApplicationOnJob(ctx, appID, jobID); err != nil {
		return application.Application{}, err
	}

	a, err := s.applications.UpdateStatus(ctx, appID, status)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// SetFeedback overwrites the feedback text and its timestamp, last writer
// wins, independently of any concurrent status update.
func (s *Service) SetFeedback(ctx context.Context, p user.Principal, jobID, appID uuid.UUID, text string) (application.Application, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return application.Application{}, ErrEmptyFeedback
	}

	if err := s.verifyJobOwnership(ctx, p, jobID); err != nil {
		return application.Application{}, err
	}

	if err := s.requireApplicationOnJob(ctx, appID, jobID); err != nil {
		return application.Application{}, err
	}

	a, err := s.applications.UpdateFeedback(ctx, appID, text, s.now().UTC())
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// ListForJob shows a job's applications to its owner or an admin.
func (s *Service) ListForJob(ctx context.Context, p user.Principal, jobID uuid.UUID) ([]application.JobRow, error) {
	if err := s.verifyJobOwnership(ctx, p, jobID); err != nil {
		return nil, err
	}

	rows, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

// ListForCandidate shows a candidate their own history; the principal id is
// the only filter, so nobody can list someone else's.
func (s *Service) ListForCandidate(ctx context.Context, p user.Principal) ([]application.CandidateRow, error) {
	rows, err := s.applications.ListByApplicant(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *Service) verifyJobOwnership(ctx context.Context, p user.Principal, jobID uuid.UUID) error {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	if err := s.owner.VerifyJobOwnership(ctx, p, posting); err != nil {
		if errors.Is(err, ownership.ErrNotOwner) {
			return ErrForbidden
		}
		return ErrInternal
	}
	return nil
}

func (s *Service) requireApplicationOnJob(ctx context.Context, appID, jobID uuid.UUID) error {
	a, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}
	if a.JobID != jobID {
		return ErrApplicationNotFound
	}
	return nil
}
