package application

import (
	"time"

	"github.com/google/uuid"
)

// Status is the closed four-value set an application can be in. Any
// authorized transition between the four values is allowed, including
// moving backward; managers correct mis-clicks this way.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	ResumeURL   string
	CoverLetter string
	Status      Status
	Feedback    *string
	FeedbackAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
