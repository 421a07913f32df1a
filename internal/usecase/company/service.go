package company

import (
	"context"
	"errors"

	"jobport/internal/domain/company"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("company not found")
	ErrInternal = errors.New("internal error")
)

type Service struct {
	companies company.Repository
}

func NewService(companies company.Repository) *Service {
	return &Service{companies: companies}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	out, err := s.companies.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}
