package ownership

import (
	"context"
	"errors"

	"jobport/internal/domain/company"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"

	"github.com/google/uuid"
)

var (
	// ErrNoCompany means the manager has not posted anything yet. Only the
	// job-creation path may react to it by creating a company; every other
	// caller treats it as a hard failure.
	ErrNoCompany = errors.New("manager has no company")

	ErrNotOwner = errors.New("principal does not own this job")
)

// Resolver re-derives the ownership chain Job -> Company -> owning principal
// on every call. Nothing caches the owner on the job or the application, so
// reassigning a company's owner can never leave a stale authorization
// decision behind.
type Resolver struct {
	companies company.Repository
}

func NewResolver(companies company.Repository) *Resolver {
	return &Resolver{companies: companies}
}

// ManagerCompany resolves the single company owned by the principal.
func (r *Resolver) ManagerCompany(ctx context.Context, principalID uuid.UUID) (company.Company, error) {
	c, err := r.companies.GetByOwner(ctx, principalID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNoCompany
		}
		return company.Company{}, err
	}
	return c, nil
}

// VerifyJobOwnership fails with ErrNotOwner unless the principal owns the
// company the job belongs to. Admins bypass the chain.
func (r *Resolver) VerifyJobOwnership(ctx context.Context, p user.Principal, posting job.Posting) error {
	if p.Role == user.RoleAdmin {
		return nil
	}

	c, err := r.companies.GetByID(ctx, posting.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return ErrNotOwner
		}
		return err
	}

	if c.OwnerID != p.ID {
		return ErrNotOwner
	}
	return nil
}
