package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobport/internal/domain/application"
	"jobport/internal/domain/company"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"
	"jobport/internal/usecase/ownership"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDeadlinePast    = errors.New("deadline must be in the future")
	ErrCompanyRequired = errors.New("company details required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("job not found")
	ErrInternal        = errors.New("internal error")
)

type CreateJobInput struct {
	Title        string
	Description  string
	Salary       int64
	Nature       string
	Skills       []string
	Requirements []string
	Deadline     time.Time

	// Company fields are only consulted when the manager has no company
	// yet; the first posting creates it.
	CompanyName     string
	CompanyWebsite  string
	CompanyLocation string
}

type UpdateJobInput struct {
	Title        *string
	Description  *string
	Salary       *int64
	Nature       *string
	Skills       []string
	Requirements []string
	Deadline     *time.Time
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Service struct {
	jobs         job.Repository
	companies    company.Repository
	applications application.Repository
	users        user.Repository
	owner        *ownership.Resolver
	cache        Cache

	now func() time.Time
}

func NewService(
	jobs job.Repository,
	companies company.Repository,
	applications application.Repository,
	users user.Repository,
	owner *ownership.Resolver,
	cache Cache,
) *Service {
	return &Service{
		jobs:         jobs,
		companies:    companies,
		applications: applications,
		users:        users,
		owner:        owner,
		cache:        cache,
		now:          time.Now,
	}
}

// Create posts a new job under the manager's company. A manager without a
// company gets one created from the request, guarded by the one-company-per-
// owner constraint; this is the only path allowed to create a company
// implicitly.
func (s *Service) Create(ctx context.Context, p user.Principal, in CreateJobInput) (job.Posting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Salary <= 0 {
		return job.Posting{}, ErrInvalidInput
	}
	nature, ok := job.ParseNature(in.Nature)
	if !ok {
		return job.Posting{}, ErrInvalidInput
	}
	if err := job.CanPostWithDeadline(in.Deadline, s.now()); err != nil {
		return job.Posting{}, ErrDeadlinePast
	}

	c, err := s.managerCompanyOrCreate(ctx, p, in)
	if err != nil {
		return job.Posting{}, err
	}

	posting := job.Posting{
		ID:           uuid.New(),
		CompanyID:    c.ID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Salary:       in.Salary,
		Nature:       nature,
		Skills:       cleanList(in.Skills),
		Requirements: cleanList(in.Requirements),
		Deadline:     in.Deadline,
	}

	if err := s.jobs.Create(ctx, posting); err != nil {
		return job.Posting{}, ErrInternal
	}

	s.invalidateCatalogue(ctx)
	return posting, nil
}

// Update mutates a posting after re-deriving ownership.
func (s *Service) Update(ctx context.Context, p user.Principal, jobID uuid.UUID, in UpdateJobInput) (job.Posting, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}

	if err := s.owner.VerifyJobOwnership(ctx, p, posting); err != nil {
		if errors.Is(err, ownership.ErrNotOwner) {
			return job.Posting{}, ErrForbidden
		}
		return job.Posting{}, ErrInternal
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return job.Posting{}, ErrInvalidInput
		}
		posting.Title = t
	}
	if in.Description != nil {
		posting.Description = strings.TrimSpace(*in.Description)
	}
	if in.Salary != nil {
		if *in.Salary <= 0 {
			return job.Posting{}, ErrInvalidInput
		}
		posting.Salary = *in.Salary
	}
	if in.Nature != nil {
		nature, ok := job.ParseNature(*in.Nature)
		if !ok {
			return job.Posting{}, ErrInvalidInput
		}
		posting.Nature = nature
	}
	if in.Skills != nil {
		posting.Skills = cleanList(in.Skills)
	}
	if in.Requirements != nil {
		posting.Requirements = cleanList(in.Requirements)
	}
	if in.Deadline != nil {
		if err := job.CanPostWithDeadline(*in.Deadline, s.now()); err != nil {
			return job.Posting{}, ErrDeadlinePast
		}
		posting.Deadline = *in.Deadline
	}

	if err := s.jobs.Update(ctx, posting); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}

	s.invalidateCatalogue(ctx)
	return posting, nil
}

func (s *Service) managerCompanyOrCreate(ctx context.Context, p user.Principal, in CreateJobInput) (company.Company, error) {
	c, err := s.owner.ManagerCompany(ctx, p.ID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ownership.ErrNoCompany) {
		return company.Company{}, ErrInternal
	}

	name := strings.TrimSpace(in.CompanyName)
	website := strings.TrimSpace(in.CompanyWebsite)
	location := strings.TrimSpace(in.CompanyLocation)
	if name == "" || website == "" || location == "" {
		return company.Company{}, ErrCompanyRequired
	}

	c = company.Company{
		ID:       uuid.New(),
		OwnerID:  p.ID,
		Name:     name,
		Website:  website,
		Location: location,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, company.ErrDuplicate) {
			// Lost a race against another request from the same manager;
			// the existing company wins.
			existing, getErr := s.owner.ManagerCompany(ctx, p.ID)
			if getErr == nil {
				return existing, nil
			}
			return company.Company{}, ErrInvalidInput
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (s *Service) invalidateCatalogue(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteByPattern(ctx, "jobs:*")
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
