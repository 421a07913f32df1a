package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobport/internal/domain/application"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"
	"jobport/internal/usecase/ownership"

	"github.com/google/uuid"
)

const catalogueTTL = 5 * time.Minute

type CataloguePage struct {
	Jobs      []job.ListRow `json:"jobs"`
	TotalJobs int64         `json:"total_jobs"`
	PageCount int64         `json:"page_count"`
}

type PortalStats struct {
	Jobs       int64 `json:"jobs"`
	Companies  int64 `json:"companies"`
	Candidates int64 `json:"candidates"`
	Placements int64 `json:"placements"`
}

type ManagerJobDetail struct {
	Job          job.ListRow          `json:"job"`
	Applications []application.JobRow `json:"applications"`
}

// List serves the public catalogue. Reads go through the cache; a cache
// failure falls back to Postgres silently.
func (s *Service) List(ctx context.Context, f job.ListFilter) (CataloguePage, error) {
	key := fmt.Sprintf("jobs:list:%d:%d", f.Limit, f.Offset)

	var page CataloguePage
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, key, &page); err == nil && found {
			return page, nil
		}
	}

	rows, total, err := s.jobs.List(ctx, f)
	if err != nil {
		return CataloguePage{}, ErrInternal
	}

	limit := int64(f.Limit)
	if limit <= 0 {
		limit = 20
	}
	page = CataloguePage{
		Jobs:      rows,
		TotalJobs: total,
		PageCount: (total + limit - 1) / limit,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, page, catalogueTTL)
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.ListRow, error) {
	row, err := s.jobs.GetRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ListRow{}, ErrNotFound
		}
		return job.ListRow{}, ErrInternal
	}
	return row, nil
}

func (s *Service) HighestPaid(ctx context.Context) ([]job.ListRow, error) {
	return s.cachedRows(ctx, "jobs:highest-paid", func(ctx context.Context) ([]job.ListRow, error) {
		return s.jobs.ListHighestPaid(ctx, 10)
	})
}

func (s *Service) MostRecent(ctx context.Context) ([]job.ListRow, error) {
	return s.cachedRows(ctx, "jobs:most-recent", func(ctx context.Context) ([]job.ListRow, error) {
		return s.jobs.ListMostRecent(ctx, 10)
	})
}

func (s *Service) Stats(ctx context.Context) (PortalStats, error) {
	jobs, err := s.jobs.Count(ctx)
	if err != nil {
		return PortalStats{}, ErrInternal
	}
	companies, err := s.companies.Count(ctx)
	if err != nil {
		return PortalStats{}, ErrInternal
	}
	candidates, err := s.users.CountByRole(ctx, user.RoleCandidate)
	if err != nil {
		return PortalStats{}, ErrInternal
	}
	placements, err := s.applications.CountByStatus(ctx, application.StatusAccepted)
	if err != nil {
		return PortalStats{}, ErrInternal
	}
	return PortalStats{Jobs: jobs, Companies: companies, Candidates: candidates, Placements: placements}, nil
}

// ManagerJobs lists the manager's own postings with application counts.
func (s *Service) ManagerJobs(ctx context.Context, p user.Principal) ([]job.ManagerRow, error) {
	c, err := s.owner.ManagerCompany(ctx, p.ID)
	if err != nil {
		if errors.Is(err, ownership.ErrNoCompany) {
			return []job.ManagerRow{}, nil
		}
		return nil, ErrInternal
	}
	rows, err := s.jobs.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

// ManagerJobDetail returns one posting with its applications, only to the
// owner or an admin.
func (s *Service) ManagerJobDetail(ctx context.Context, p user.Principal, jobID uuid.UUID) (ManagerJobDetail, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ManagerJobDetail{}, ErrNotFound
		}
		return ManagerJobDetail{}, ErrInternal
	}

	if err := s.owner.VerifyJobOwnership(ctx, p, posting); err != nil {
		if errors.Is(err, ownership.ErrNotOwner) {
			return ManagerJobDetail{}, ErrForbidden
		}
		return ManagerJobDetail{}, ErrInternal
	}

	row, err := s.jobs.GetRowByID(ctx, jobID)
	if err != nil {
		return ManagerJobDetail{}, ErrInternal
	}

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return ManagerJobDetail{}, ErrInternal
	}

	return ManagerJobDetail{Job: row, Applications: apps}, nil
}

func (s *Service) cachedRows(ctx context.Context, key string, load func(context.Context) ([]job.ListRow, error)) ([]job.ListRow, error) {
	var rows []job.ListRow
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, key, &rows); err == nil && found {
			return rows, nil
		}
	}

	rows, err := load(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, rows, catalogueTTL)
	}
	return rows, nil
}
