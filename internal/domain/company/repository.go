package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("company not found")
	ErrDuplicate = errors.New("company already exists")
)

type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Count(ctx context.Context) (int64, error)
}
