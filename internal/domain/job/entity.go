package job

import (
	"time"

	"github.com/google/uuid"
)

type Nature string

const (
	NatureRemote Nature = "remote"
	NatureOnsite Nature = "onsite"
)

func ParseNature(s string) (Nature, bool) {
	switch Nature(s) {
	case NatureRemote, NatureOnsite:
		return Nature(s), true
	default:
		return "", false
	}
}

type Posting struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Title        string
	Description  string
	Salary       int64
	Nature       Nature
	Skills       []string
	Requirements []string
	Deadline     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Open reports whether the posting still admits applications at the given
// instant. A deadline equal to now counts as passed.
func (p Posting) Open(now time.Time) bool {
	return now.Before(p.Deadline)
}
