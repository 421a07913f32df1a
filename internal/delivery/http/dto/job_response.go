package dto

import (
	"time"

	"jobport/internal/domain/job"

	"github.com/google/uuid"
)

type CompanySummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

type JobResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Salary       int64          `json:"salary"`
	Nature       string         `json:"nature"`
	Skills       []string       `json:"skills"`
	Requirements []string       `json:"requirements"`
	Deadline     time.Time      `json:"deadline"`
	Company      CompanySummary `json:"company"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewJobResponse(row job.ListRow) JobResponse {
	return JobResponse{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Salary:       row.Salary,
		Nature:       string(row.Nature),
		Skills:       row.Skills,
		Requirements: row.Requirements,
		Deadline:     row.Deadline,
		Company: CompanySummary{
			Name:     row.CompanyName,
			Location: row.CompanyLocation,
			Website:  row.CompanyWebsite,
		},
		CreatedAt: row.CreatedAt,
	}
}

func NewJobResponses(rows []job.ListRow) []JobResponse {
	out := make([]JobResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewJobResponse(r))
	}
	return out
}

type ManagerJobResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Salary            int64     `json:"salary"`
	Nature            string    `json:"nature"`
	Deadline          time.Time `json:"deadline"`
	ApplicationsCount int64     `json:"applications_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewManagerJobResponses(rows []job.ManagerRow) []ManagerJobResponse {
	out := make([]ManagerJobResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ManagerJobResponse{
			ID:                r.ID,
			Title:             r.Title,
			Salary:            r.Salary,
			Nature:            string(r.Nature),
			Deadline:          r.Deadline,
			ApplicationsCount: r.ApplicationsCount,
			CreatedAt:         r.CreatedAt,
		})
	}
	return out
}
