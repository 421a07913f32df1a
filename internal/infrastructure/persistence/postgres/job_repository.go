package postgres

import (
	"context"
	"errors"

	"jobport/internal/database"
	"jobport/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, title, description, salary, nature,
	skills, requirements, deadline, created_at, updated_at`

const jobRowColumns = `j.id, j.company_id, j.title, j.description, j.salary, j.nature,
	j.skills, j.requirements, j.deadline, j.created_at, j.updated_at,
	c.name, c.location, c.website`

func (r *JobRepository) Create(ctx context.Context, p job.Posting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, salary, nature, skills, requirements, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.CompanyID, p.Title, p.Description, p.Salary, p.Nature, p.Skills, p.Requirements, p.Deadline,
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) Update(ctx context.Context, p job.Posting) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, salary = $4, nature = $5,
		     skills = $6, requirements = $7, deadline = $8, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Salary, p.Nature, p.Skills, p.Requirements, p.Deadline,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f job.ListFilter) ([]job.ListRow, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobRowColumns+`
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 ORDER BY j.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectJobRows(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *JobRepository) GetRowByID(ctx context.Context, id uuid.UUID) (job.ListRow, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobRowColumns+`
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`,
		id,
	)
	return scanJobRow(row)
}

func (r *JobRepository) ListHighestPaid(ctx context.Context, limit int) ([]job.ListRow, error) {
	return r.listRows(ctx, `ORDER BY j.salary DESC`, limit)
}

func (r *JobRepository) ListMostRecent(ctx context.Context, limit int) ([]job.ListRow, error) {
	return r.listRows(ctx, `ORDER BY j.created_at DESC`, limit)
}

func (r *JobRepository) listRows(ctx context.Context, orderBy string, limit int) ([]job.ListRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobRowColumns+`
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 `+orderBy+`
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectJobRows(rows)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.ManagerRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`,
		        (SELECT COUNT(*) FROM applications a WHERE a.job_id = jobs.id)
		 FROM jobs
		 WHERE company_id = $1
		 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.ManagerRow, 0)
	for rows.Next() {
		var m job.ManagerRow
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.Title, &m.Description, &m.Salary, &m.Nature,
			&m.Skills, &m.Requirements, &m.Deadline, &m.CreatedAt, &m.UpdatedAt,
			&m.ApplicationsCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Salary, &p.Nature,
		&p.Skills, &p.Requirements, &p.Deadline, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func scanJobRow(row database.Row) (job.ListRow, error) {
	var jr job.ListRow
	if err := row.Scan(&jr.ID, &jr.CompanyID, &jr.Title, &jr.Description, &jr.Salary, &jr.Nature,
		&jr.Skills, &jr.Requirements, &jr.Deadline, &jr.CreatedAt, &jr.UpdatedAt,
		&jr.CompanyName, &jr.CompanyLocation, &jr.CompanyWebsite); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.ListRow{}, job.ErrNotFound
		}
		return job.ListRow{}, err
	}
	return jr, nil
}

func collectJobRows(rows database.Rows) ([]job.ListRow, error) {
	defer rows.Close()

	out := make([]job.ListRow, 0)
	for rows.Next() {
		var jr job.ListRow
		if err := rows.Scan(&jr.ID, &jr.CompanyID, &jr.Title, &jr.Description, &jr.Salary, &jr.Nature,
			&jr.Skills, &jr.Requirements, &jr.Deadline, &jr.CreatedAt, &jr.UpdatedAt,
			&jr.CompanyName, &jr.CompanyLocation, &jr.CompanyWebsite); err != nil {
			return nil, err
		}
		out = append(out, jr)
	}
	return out, rows.Err()
}
