package postgres

import (
	"context"
	"errors"
	"strings"

	"jobport/internal/database"
	"jobport/internal/domain/company"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type CompanyRepository struct {
	db database.DB
}

func NewCompanyRepository(db database.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, owner_id, name, website, location, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, owner_id, name, website, location)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.OwnerID, strings.ToLower(strings.TrimSpace(c.Name)), c.Website, c.Location,
	)
	if isUniqueViolation(err) {
		return company.ErrDuplicate
	}
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

// GetByOwner resolves the single company a manager owns; owner_id is unique
// so at most one row can match.
func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID)
	return scanCompany(row)
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+`
		 FROM companies
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Location, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Location, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
