package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobport/internal/domain/user"
	"jobport/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
	created []user.User

	roleUpdates map[uuid.UUID]user.Role
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.created = append(m.created, u)
	if m.byEmail == nil {
		m.byEmail = map[string]user.User{}
	}
	if m.byID == nil {
		m.byID = map[uuid.UUID]user.User{}
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}
func (m *mockUserRepo) Update(context.Context, user.User) error { return nil }
func (m *mockUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role user.Role) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Role = role
	m.byID[id] = u
	if m.roleUpdates == nil {
		m.roleUpdates = map[uuid.UUID]user.Role{}
	}
	m.roleUpdates[id] = role
	return nil
}
func (m *mockUserRepo) ListByRole(context.Context, user.Role) ([]user.User, error) {
	return nil, nil
}
func (m *mockUserRepo) CountByRole(context.Context, user.Role) (int64, error) { return 0, nil }

type mockRevoker struct {
	revoked     []string
	revokedAll  []uuid.UUID
	revokeErr   error
	revokeAllFn func(uuid.UUID) error
}

func (m *mockRevoker) Revoke(_ context.Context, token string, _ jwt.Claims) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	m.revoked = append(m.revoked, token)
	return nil
}
func (m *mockRevoker) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	if m.revokeAllFn != nil {
		return m.revokeAllFn(userID)
	}
	m.revokedAll = append(m.revokedAll, userID)
	return nil
}

func newTestService(repo *mockUserRepo, revoker Revoker) *Service {
	jwtSvc := jwt.NewHMACService("access", "refresh", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtSvc, revoker)
}

func TestSignup(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestService(repo, &mockRevoker{})

	u, pair, err := svc.Signup(context.Background(), SignupInput{
		Email:     "  Dina@Example.com ",
		Password:  "correct-horse",
		FirstName: "Dina",
		LastName:  "Putri",
		Role:      "candidate",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "dina@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must never leave the usecase")
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens")
	}
	if len(repo.created) != 1 || repo.created[0].PasswordHash == "correct-horse" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"dina@example.com": {ID: uuid.New(), Email: "dina@example.com"},
	}}
	svc := newTestService(repo, &mockRevoker{})

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "DINA@example.com",
		Password: "correct-horse",
		Role:     "candidate",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestSignup_AdminRoleRejected(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockRevoker{})

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "dina@example.com",
		Password: "correct-horse",
		Role:     "admin",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("admin signup must be rejected, got %v", err)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockRevoker{})

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "dina@example.com",
		Password: "short",
		Role:     "candidate",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	stored := user.User{ID: uuid.New(), Email: "dina@example.com", PasswordHash: string(hash), Role: user.RoleCandidate}
	repo := &mockUserRepo{byEmail: map[string]user.User{stored.Email: stored}}
	svc := newTestService(repo, &mockRevoker{})

	u, pair, err := svc.Login(context.Background(), LoginInput{Email: "Dina@Example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID != stored.ID || pair.Access == "" {
		t.Fatalf("unexpected login result")
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: stored.Email, Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct-horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	revoker := &mockRevoker{}
	svc := newTestService(&mockUserRepo{}, revoker)

	if err := svc.Logout(context.Background(), "the-token", jwt.Claims{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "the-token" {
		t.Fatalf("token not revoked")
	}
}

func TestPromote_RevokesSessions(t *testing.T) {
	target := user.User{ID: uuid.New(), Email: "mgr@example.com", Role: user.RoleHiringManager}
	repo := &mockUserRepo{byID: map[uuid.UUID]user.User{target.ID: target}}
	revoker := &mockRevoker{}
	svc := newTestService(repo, revoker)

	u, err := svc.Promote(context.Background(), target.ID, "admin")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleAdmin {
		t.Fatalf("role not updated, got %q", u.Role)
	}
	if len(revoker.revokedAll) != 1 || revoker.revokedAll[0] != target.ID {
		t.Fatalf("promotion must revoke the target's sessions")
	}
}

func TestPromote_UnknownUser(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockRevoker{})

	if _, err := svc.Promote(context.Background(), uuid.New(), "admin"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPromote_InvalidRole(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockRevoker{})

	if _, err := svc.Promote(context.Background(), uuid.New(), "superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
