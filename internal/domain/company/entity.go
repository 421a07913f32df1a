package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is owned by exactly one hiring manager. Ownership is the root of
// the authorization chain for jobs and applications: whoever owns the
// company owns every job posted under it.
type Company struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Website   string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
