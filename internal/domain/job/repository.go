package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type ListFilter struct {
	Limit  int
	Offset int
}

// ListRow is a catalogue row: the posting plus the company columns public
// listings always show alongside it.
type ListRow struct {
	Posting
	CompanyName     string
	CompanyLocation string
	CompanyWebsite  string
}

type ManagerRow struct {
	Posting
	ApplicationsCount int64
}

type Repository interface {
	Create(ctx context.Context, p Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	Update(ctx context.Context, p Posting) error
	List(ctx context.Context, f ListFilter) ([]ListRow, int64, error)
	GetRowByID(ctx context.Context, id uuid.UUID) (ListRow, error)
	ListHighestPaid(ctx context.Context, limit int) ([]ListRow, error)
	ListMostRecent(ctx context.Context, limit int) ([]ListRow, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]ManagerRow, error)
	Count(ctx context.Context) (int64, error)
}
