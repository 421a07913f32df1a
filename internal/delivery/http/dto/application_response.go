package dto

import (
	"time"

	"jobport/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"job_id"`
	ApplicantID uuid.UUID  `json:"applicant_id"`
	ResumeURL   string     `json:"resume_url"`
	CoverLetter string     `json:"cover_letter,omitempty"`
	Status      string     `json:"status"`
	Feedback    *string    `json:"feedback,omitempty"`
	FeedbackAt  *time.Time `json:"feedback_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		Feedback:    a.Feedback,
		FeedbackAt:  a.FeedbackAt,
		CreatedAt:   a.CreatedAt,
	}
}

type JobApplicationResponse struct {
	ApplicationResponse
	Applicant ApplicantSummary `json:"applicant"`
}

type ApplicantSummary struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ResumeURL string `json:"resume_url,omitempty"`
}

func NewJobApplicationResponses(rows []application.JobRow) []JobApplicationResponse {
	out := make([]JobApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobApplicationResponse{
			ApplicationResponse: NewApplicationResponse(r.Application),
			Applicant: ApplicantSummary{
				Email:     r.ApplicantEmail,
				FirstName: r.ApplicantFirstName,
				LastName:  r.ApplicantLastName,
				ResumeURL: r.ApplicantResumeURL,
			},
		})
	}
	return out
}

type CandidateApplicationResponse struct {
	ApplicationResponse
	JobTitle    string `json:"job_title"`
	JobSalary   int64  `json:"job_salary"`
	CompanyName string `json:"company_name"`
}

func NewCandidateApplicationResponses(rows []application.CandidateRow) []CandidateApplicationResponse {
	out := make([]CandidateApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CandidateApplicationResponse{
			ApplicationResponse: NewApplicationResponse(r.Application),
			JobTitle:            r.JobTitle,
			JobSalary:           r.JobSalary,
			CompanyName:         r.CompanyName,
		})
	}
	return out
}
