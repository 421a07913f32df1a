package application

import (
	"context"
	"errors"
	"strings"

	"jobport/internal/domain/user"
	"jobport/internal/infrastructure/storage"

	"github.com/google/uuid"
)

var (
	ErrResumeRequired = errors.New("resume required")
	ErrStorage        = errors.New("document store failed")
)

// Upload is a freshly submitted resume file, already read into memory by
// the handler.
type Upload struct {
	Data     []byte
	MimeType string
	Filename string
}

// ResumeResolver decides which resume reference an application persists:
// an upload stored through the document-store collaborator, or the
// candidate's own saved profile resume. The profile branch re-fetches the
// stored reference server-side; a URL in the request body is never trusted.
type ResumeResolver struct {
	store storage.DocumentStore
	users user.Repository
}

func NewResumeResolver(store storage.DocumentStore, users user.Repository) *ResumeResolver {
	return &ResumeResolver{store: store, users: users}
}

// Resolve executes exactly one branch per call. A storage failure aborts
// the whole submission; the caller must not have created anything yet.
func (r *ResumeResolver) Resolve(ctx context.Context, applicantID uuid.UUID, upload *Upload, useProfileResume bool) (string, error) {
	if upload != nil && len(upload.Data) > 0 {
		ref, err := r.store.Store(ctx, upload.Data, upload.MimeType, upload.Filename)
		if err != nil {
			return "", ErrStorage
		}
		return ref, nil
	}

	if useProfileResume {
		u, err := r.users.GetByID(ctx, applicantID)
		if err != nil {
			return "", ErrStorage
		}
		ref := strings.TrimSpace(u.ResumeURL)
		if ref == "" {
			return "", ErrResumeRequired
		}
		return ref, nil
	}

	return "", ErrResumeRequired
}
