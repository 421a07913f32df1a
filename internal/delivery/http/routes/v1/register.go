package v1

import (
	"log"

	"jobport/internal/config"
	"jobport/internal/database"
	"jobport/internal/delivery/http/handler"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/domain/user"
	"jobport/internal/infrastructure/persistence/postgres"
	"jobport/internal/infrastructure/storage"
	"jobport/internal/pkg/jwt"
	"jobport/internal/session"
	ucapplication "jobport/internal/usecase/application"
	ucauth "jobport/internal/usecase/auth"
	uccompany "jobport/internal/usecase/company"
	ucjob "jobport/internal/usecase/job"
	"jobport/internal/usecase/ownership"
	ucuser "jobport/internal/usecase/user"
	"jobport/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Cache is the shared cache surface the v1 services draw on: the catalogue
// cache and the session denylist ride the same backend.
type Cache interface {
	ucjob.Cache
	session.Denylist
}

// Deps carries the shared infrastructure the v1 routes are built on.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  Cache
	Store  storage.DocumentStore
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	sessions := session.NewService(deps.Cache, deps.Hub, deps.Config.JWT.RefreshExpiresIn, deps.Logger)
	authMw := middleware.NewAuthMiddleware(jwtSvc, sessions)

	userRepo := postgres.NewUserRepository(deps.DB)
	companyRepo := postgres.NewCompanyRepository(deps.DB)
	jobRepo := postgres.NewJobRepository(deps.DB)
	appRepo := postgres.NewApplicationRepository(deps.DB)

	owner := ownership.NewResolver(companyRepo)
	resumes := ucapplication.NewResumeResolver(deps.Store, userRepo)

	authUC := ucauth.NewService(userRepo, jwtSvc, sessions)
	userUC := ucuser.NewService(userRepo, deps.Store)
	companyUC := uccompany.NewService(companyRepo)
	jobUC := ucjob.NewService(jobRepo, companyRepo, appRepo, userRepo, owner, deps.Cache)
	applicationUC := ucapplication.NewService(appRepo, jobRepo, resumes, owner)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC, authUC)
	companyHandler := handler.NewCompanyHandler(companyUC)
	jobHandler := handler.NewJobHandler(jobUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	authed := authMw.Middleware()
	adminOnly := middleware.RequireRoles(user.RoleAdmin)
	candidateOnly := middleware.RequireRoles(user.RoleCandidate)
	managerOrAdmin := middleware.RequireRoles(user.RoleHiringManager, user.RoleAdmin)

	// Gates ride per route, ahead of the terminal handler. Group-level
	// middleware is a prefix-wide Use; the jobs and users prefixes mix
	// public, candidate and manager routes, so a group gate on either
	// prefix would intercept routes it was never meant to guard.
	jobs := r.Group("/jobs")
	users := r.Group("/users")

	authHandler.RegisterRoutes(r.Group("/auth"), authed)
	companyHandler.RegisterRoutes(r.Group("/companies"))
	jobHandler.RegisterRoutes(jobs, authed, managerOrAdmin)
	userHandler.RegisterRoutes(users, authed, adminOnly)
	applicationHandler.RegisterRoutes(jobs, users, authed, candidateOnly, managerOrAdmin)

	// Sole group on the prefix; every route under it is manager-only.
	jobHandler.RegisterManagerRoutes(r.Group("/manager", authed, managerOrAdmin))

	r.Get("/ws/session", authed, wsHandler.HandleSessionWS)
}
