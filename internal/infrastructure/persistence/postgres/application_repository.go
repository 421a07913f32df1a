package postgres

import (
	"context"
	"errors"
	"time"

	"jobport/internal/database"
	"jobport/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, resume_url, cover_letter,
	status, feedback, feedback_at, created_at, updated_at`

// Create inserts the application row. The row itself carries both linkages
// (job_id, applicant_id), so a single insert is atomic with respect to any
// reader; the UNIQUE(job_id, applicant_id) constraint is the authoritative
// dedupe guard and closes the read-then-write race between concurrent
// submissions.
func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, resume_url, cover_letter, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.ApplicantID, a.ResumeURL, a.CoverLetter, a.Status,
	)
	if isUniqueViolation(err) {
		return application.ErrDuplicate
	}
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus overwrites the status unconditionally; last writer wins.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, status,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string, at time.Time) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET feedback = $2, feedback_at = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, feedback, at,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.JobRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter,
		        a.status, a.feedback, a.feedback_at, a.created_at, a.updated_at,
		        u.email, u.first_name, u.last_name, u.resume_url
		 FROM applications a
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.JobRow, 0)
	for rows.Next() {
		var jr application.JobRow
		if err := rows.Scan(&jr.ID, &jr.JobID, &jr.ApplicantID, &jr.ResumeURL, &jr.CoverLetter,
			&jr.Status, &jr.Feedback, &jr.FeedbackAt, &jr.CreatedAt, &jr.UpdatedAt,
			&jr.ApplicantEmail, &jr.ApplicantFirstName, &jr.ApplicantLastName, &jr.ApplicantResumeURL); err != nil {
			return nil, err
		}
		out = append(out, jr)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.CandidateRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter,
		        a.status, a.feedback, a.feedback_at, a.created_at, a.updated_at,
		        j.title, j.salary, c.name
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.CandidateRow, 0)
	for rows.Next() {
		var cr application.CandidateRow
		if err := rows.Scan(&cr.ID, &cr.JobID, &cr.ApplicantID, &cr.ResumeURL, &cr.CoverLetter,
			&cr.Status, &cr.Feedback, &cr.FeedbackAt, &cr.CreatedAt, &cr.UpdatedAt,
			&cr.JobTitle, &cr.JobSalary, &cr.CompanyName); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status application.Status) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, status)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeURL, &a.CoverLetter,
		&a.Status, &a.Feedback, &a.FeedbackAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}
