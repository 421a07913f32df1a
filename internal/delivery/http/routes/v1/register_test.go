package v1

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"jobport/internal/config"
	"jobport/internal/database"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/domain/user"
	"jobport/internal/pkg/jwt"
	"jobport/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// stubRow scans a zero count or a "not exists" flag and reports every other
// lookup as missing, so requests that clear the gates land on 200 or 404
// instead of 401/403.
type stubRow struct{}

func (stubRow) Scan(dest ...any) error {
	if len(dest) == 1 {
		switch d := dest[0].(type) {
		case *bool:
			*d = false
			return nil
		case *int64:
			*d = 0
			return nil
		}
	}
	return pgx.ErrNoRows
}

type stubRows struct{}

func (stubRows) Close()            {}
func (stubRows) Next() bool        { return false }
func (stubRows) Scan(...any) error { return pgx.ErrNoRows }
func (stubRows) Err() error        { return nil }

type stubDB struct{}

func (stubDB) Ping(context.Context) error                          { return nil }
func (stubDB) Close() error                                        { return nil }
func (stubDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (stubDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return stubRows{}, nil
}
func (stubDB) QueryRow(context.Context, string, ...any) database.Row { return stubRow{} }
func (stubDB) Begin(context.Context) (database.Tx, error)            { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (stubTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return stubRows{}, nil
}
func (stubTx) QueryRow(context.Context, string, ...any) database.Row { return stubRow{} }
func (stubTx) Commit(context.Context) error                          { return nil }
func (stubTx) Rollback(context.Context) error                        { return nil }

type memoryCache struct {
	values map[string]string
}

func (m *memoryCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (m *memoryCache) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}
func (m *memoryCache) DeleteByPattern(context.Context, string) error { return nil }
func (m *memoryCache) SetWithTTL(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}
func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

type stubStore struct{}

func (stubStore) Store(context.Context, []byte, string, string) (string, error) {
	return "https://files.test/doc.pdf", nil
}

func newTestApp(t *testing.T) (*fiber.App, jwt.Service) {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	cfg := config.Config{
		JWT: config.JWTConfig{
			AccessSecret:     "access",
			RefreshSecret:    "refresh",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 7 * 24 * time.Hour,
		},
	}

	f := fiber.New()
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	api := f.Group("/api")
	Register(api.Group("/v1"), Deps{
		Config: cfg,
		DB:     stubDB{},
		Cache:  &memoryCache{values: make(map[string]string)},
		Store:  stubStore{},
		Hub:    ws.NewHub(logger),
		Logger: logger,
	})

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn,
	)
	return f, jwtSvc
}

// TestRegister_RoleSurface walks the mounted route table as each role and
// checks where the gates cut in. want==0 means the request must get past
// authentication and authorization, whatever the handler then says about
// the (empty) backing data.
func TestRegister_RoleSurface(t *testing.T) {
	app, jwtSvc := newTestApp(t)

	tokens := map[user.Role]string{}
	for _, role := range []user.Role{user.RoleCandidate, user.RoleHiringManager, user.RoleAdmin} {
		token, err := jwtSvc.GenerateAccessToken(uuid.New(), string(role)+"@example.com", role)
		if err != nil {
			t.Fatalf("generate %s token: %v", role, err)
		}
		tokens[role] = token
	}

	jobID := uuid.New()
	appID := uuid.New()
	userID := uuid.New()

	cases := []struct {
		name   string
		method string
		path   string
		role   user.Role
		want   int
	}{
		{"public job list", "GET", "/api/v1/jobs", "", 0},
		{"public stats", "GET", "/api/v1/jobs/stats", "", 0},
		{"public company list", "GET", "/api/v1/companies", "", 0},
		{"public check email", "GET", "/api/v1/users/check-email/dina@example.com", "", 0},

		{"anonymous job create", "POST", "/api/v1/jobs", "", fiber.StatusUnauthorized},
		{"candidate job create", "POST", "/api/v1/jobs", user.RoleCandidate, fiber.StatusForbidden},
		{"manager job create", "POST", "/api/v1/jobs", user.RoleHiringManager, 0},
		{"admin job create", "POST", "/api/v1/jobs", user.RoleAdmin, 0},

		{"anonymous apply", "POST", "/api/v1/jobs/" + jobID.String() + "/apply", "", fiber.StatusUnauthorized},
		{"candidate apply", "POST", "/api/v1/jobs/" + jobID.String() + "/apply", user.RoleCandidate, 0},
		{"manager apply", "POST", "/api/v1/jobs/" + jobID.String() + "/apply", user.RoleHiringManager, fiber.StatusForbidden},
		{"admin apply", "POST", "/api/v1/jobs/" + jobID.String() + "/apply", user.RoleAdmin, fiber.StatusForbidden},

		{"candidate own applications", "GET", "/api/v1/users/me/applications", user.RoleCandidate, 0},
		{"manager own applications", "GET", "/api/v1/users/me/applications", user.RoleHiringManager, fiber.StatusForbidden},

		{"anonymous manager jobs", "GET", "/api/v1/manager/jobs", "", fiber.StatusUnauthorized},
		{"candidate manager jobs", "GET", "/api/v1/manager/jobs", user.RoleCandidate, fiber.StatusForbidden},
		{"manager manager jobs", "GET", "/api/v1/manager/jobs", user.RoleHiringManager, 0},

		{"candidate status change", "PATCH", "/api/v1/jobs/" + jobID.String() + "/applications/" + appID.String() + "/status", user.RoleCandidate, fiber.StatusForbidden},
		{"manager status change", "PATCH", "/api/v1/jobs/" + jobID.String() + "/applications/" + appID.String() + "/status", user.RoleHiringManager, 0},

		{"candidate promote", "PUT", "/api/v1/users/" + userID.String() + "/promote", user.RoleCandidate, fiber.StatusForbidden},
		{"manager promote", "PUT", "/api/v1/users/" + userID.String() + "/promote", user.RoleHiringManager, fiber.StatusForbidden},
		{"admin promote", "PUT", "/api/v1/users/" + userID.String() + "/promote", user.RoleAdmin, 0},

		{"candidate candidate directory", "GET", "/api/v1/users/candidates", user.RoleCandidate, fiber.StatusForbidden},
		{"admin candidate directory", "GET", "/api/v1/users/candidates", user.RoleAdmin, 0},
		{"manager manager directory", "GET", "/api/v1/users/managers", user.RoleHiringManager, fiber.StatusForbidden},
		{"admin manager directory", "GET", "/api/v1/users/managers", user.RoleAdmin, 0},

		{"anonymous me", "GET", "/api/v1/users/me", "", fiber.StatusUnauthorized},
		{"candidate me", "GET", "/api/v1/users/me", user.RoleCandidate, 0},

		{"anonymous session socket", "GET", "/api/v1/ws/session", "", fiber.StatusUnauthorized},
		{"candidate session socket", "GET", "/api/v1/ws/session", user.RoleCandidate, 0},

		// Logout revokes the shared candidate token, so it runs last.
		{"anonymous logout", "POST", "/api/v1/auth/logout", "", fiber.StatusUnauthorized},
		{"candidate logout", "POST", "/api/v1/auth/logout", user.RoleCandidate, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.role != "" {
				req.Header.Set("Authorization", "Bearer "+tokens[tc.role])
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("test: %v", err)
			}

			if tc.want == 0 {
				if resp.StatusCode == fiber.StatusUnauthorized || resp.StatusCode == fiber.StatusForbidden {
					t.Fatalf("%s %s as %q must clear the gates, got %d", tc.method, tc.path, tc.role, resp.StatusCode)
				}
				return
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("%s %s as %q: expected %d, got %d", tc.method, tc.path, tc.role, tc.want, resp.StatusCode)
			}
		})
	}
}
