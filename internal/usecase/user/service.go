package user

import (
	"context"
	"errors"
	"strings"

	"jobport/internal/domain/user"
	"jobport/internal/infrastructure/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("user not found")
	ErrWrongPassword     = errors.New("password is not correct")
	ErrPasswordUnchanged = errors.New("new password must differ from the old one")
	ErrStorage           = errors.New("document store failed")
	ErrInternal          = errors.New("internal error")
)

type UpdateMeInput struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
}

type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

type Service struct {
	users user.Repository
	store storage.DocumentStore
}

func NewService(users user.Repository, store storage.DocumentStore) *Service {
	return &Service{users: users, store: store}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.ContactNumber != nil {
		u.ContactNumber = strings.TrimSpace(*in.ContactNumber)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error {
	if in.OldPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return ErrInvalidInput
	}
	if in.NewPassword != in.ConfirmPassword {
		return ErrInvalidInput
	}
	if in.OldPassword == in.NewPassword {
		return ErrPasswordUnchanged
	}
	if len(strings.TrimSpace(in.NewPassword)) < 8 {
		return ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	u.PasswordHash = string(hash)

	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

// UploadProfileResume stores the file and saves its reference on the
// profile, where the submit path's profile-resume branch reads it back.
func (s *Service) UploadProfileResume(ctx context.Context, userID uuid.UUID, data []byte, mimeType, filename string) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidInput
	}

	ref, err := s.store.Store(ctx, data, mimeType, filename)
	if err != nil {
		return "", ErrStorage
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", ErrInternal
	}
	u.ResumeURL = ref

	if err := s.users.Update(ctx, u); err != nil {
		return "", ErrInternal
	}
	return ref, nil
}

// UploadProfileImage stores a profile photo and saves its reference.
func (s *Service) UploadProfileImage(ctx context.Context, userID uuid.UUID, data []byte, mimeType, filename string) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidInput
	}

	ref, err := s.store.Store(ctx, data, mimeType, filename)
	if err != nil {
		return "", ErrStorage
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", ErrInternal
	}
	u.ImageURL = ref

	if err := s.users.Update(ctx, u); err != nil {
		return "", ErrInternal
	}
	return ref, nil
}

// CheckEmail reports whether an address is already registered.
func (s *Service) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, ErrInvalidInput
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, ErrInternal
	}
	return exists, nil
}

func (s *Service) ListCandidates(ctx context.Context) ([]user.User, error) {
	return s.listByRole(ctx, user.RoleCandidate)
}

func (s *Service) ListManagers(ctx context.Context) ([]user.User, error) {
	return s.listByRole(ctx, user.RoleHiringManager)
}

func (s *Service) GetCandidate(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	if u.Role != user.RoleCandidate {
		return user.User{}, ErrNotFound
	}
	return sanitizeUser(u), nil
}

func (s *Service) listByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return out, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
