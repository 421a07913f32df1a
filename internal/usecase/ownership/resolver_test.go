package ownership

import (
	"context"
	"errors"
	"testing"

	"jobport/internal/domain/company"
	"jobport/internal/domain/job"
	"jobport/internal/domain/user"

	"github.com/google/uuid"
)

type mockCompanyRepo struct {
	byID    map[uuid.UUID]company.Company
	byOwner map[uuid.UUID]company.Company
	err     error
}

func (m mockCompanyRepo) Create(context.Context, company.Company) error { return nil }
func (m mockCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	if m.err != nil {
		return company.Company{}, m.err
	}
	c, ok := m.byID[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}
func (m mockCompanyRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (company.Company, error) {
	if m.err != nil {
		return company.Company{}, m.err
	}
	c, ok := m.byOwner[ownerID]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}
func (m mockCompanyRepo) List(context.Context, int, int) ([]company.Company, error) {
	return nil, nil
}
func (m mockCompanyRepo) Count(context.Context) (int64, error) { return 0, nil }

func TestManagerCompany(t *testing.T) {
	ownerID := uuid.New()
	c := company.Company{ID: uuid.New(), OwnerID: ownerID, Name: "Acme"}
	r := NewResolver(mockCompanyRepo{byOwner: map[uuid.UUID]company.Company{ownerID: c}})

	got, err := r.ManagerCompany(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("unexpected company")
	}

	if _, err := r.ManagerCompany(context.Background(), uuid.New()); !errors.Is(err, ErrNoCompany) {
		t.Fatalf("expected ErrNoCompany, got %v", err)
	}
}

func TestVerifyJobOwnership_Owner(t *testing.T) {
	ownerID := uuid.New()
	c := company.Company{ID: uuid.New(), OwnerID: ownerID}
	r := NewResolver(mockCompanyRepo{byID: map[uuid.UUID]company.Company{c.ID: c}})

	posting := job.Posting{ID: uuid.New(), CompanyID: c.ID}
	p := user.Principal{ID: ownerID, Role: user.RoleHiringManager}

	if err := r.VerifyJobOwnership(context.Background(), p, posting); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
}

func TestVerifyJobOwnership_NotOwner(t *testing.T) {
	c := company.Company{ID: uuid.New(), OwnerID: uuid.New()}
	r := NewResolver(mockCompanyRepo{byID: map[uuid.UUID]company.Company{c.ID: c}})

	posting := job.Posting{ID: uuid.New(), CompanyID: c.ID}
	other := user.Principal{ID: uuid.New(), Role: user.RoleHiringManager}

	if err := r.VerifyJobOwnership(context.Background(), other, posting); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestVerifyJobOwnership_AdminBypass(t *testing.T) {
	r := NewResolver(mockCompanyRepo{})

	posting := job.Posting{ID: uuid.New(), CompanyID: uuid.New()}
	admin := user.Principal{ID: uuid.New(), Role: user.RoleAdmin}

	if err := r.VerifyJobOwnership(context.Background(), admin, posting); err != nil {
		t.Fatalf("admin must bypass ownership: %v", err)
	}
}

func TestVerifyJobOwnership_MissingCompany(t *testing.T) {
	r := NewResolver(mockCompanyRepo{})

	posting := job.Posting{ID: uuid.New(), CompanyID: uuid.New()}
	p := user.Principal{ID: uuid.New(), Role: user.RoleHiringManager}

	if err := r.VerifyJobOwnership(context.Background(), p, posting); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for missing company, got %v", err)
	}
}
