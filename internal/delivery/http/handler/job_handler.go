package handler

import (
	"errors"
	"strconv"
	"time"

	"jobport/internal/delivery/http/dto"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/domain/job"
	"jobport/internal/pkg/response"
	ucjob "jobport/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc *ucjob.Service
}

func NewJobHandler(uc *ucjob.Service) *JobHandler {
	return &JobHandler{uc: uc}
}

type createJobRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Salary       int64     `json:"salary"`
	Nature       string    `json:"nature"`
	Skills       []string  `json:"skills"`
	Requirements []string  `json:"requirements"`
	Deadline     time.Time `json:"deadline"`

	CompanyName     string `json:"company_name"`
	CompanyWebsite  string `json:"company_website"`
	CompanyLocation string `json:"company_location"`
}

type updateJobRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Salary       *int64     `json:"salary"`
	Nature       *string    `json:"nature"`
	Skills       []string   `json:"skills"`
	Requirements []string   `json:"requirements"`
	Deadline     *time.Time `json:"deadline"`
}

// RegisterRoutes mounts the public catalogue reads and the gated posting
// writes on the same prefix. Literal paths go before the :id route; gates
// precede the terminal handler.
func (h *JobHandler) RegisterRoutes(r fiber.Router, authed, managerOrAdmin fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/highest-paid", h.HighestPaid)
	// most-applied is the published path; the listing itself is by recency.
	r.Get("/most-applied", h.MostRecent)
	r.Get("/stats", h.Stats)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)

	r.Post("/", authed, managerOrAdmin, h.Create)
	r.Patch("/:id", authed, managerOrAdmin, h.Update)
}

// RegisterManagerRoutes mounts the manager-only views; the caller gates the
// whole prefix.
func (h *JobHandler) RegisterManagerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.ManagerJobs)
	r.Get("/jobs/:id", h.ManagerJobDetail)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	pageData, err := h.uc.List(c.Context(), job.ListFilter{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return mapJobError(err)
	}

	data := map[string]any{
		"jobs":       dto.NewJobResponses(pageData.Jobs),
		"total_jobs": pageData.TotalJobs,
		"page_count": pageData.PageCount,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	row, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(row))
}

func (h *JobHandler) HighestPaid(c fiber.Ctx) error {
	rows, err := h.uc.HighestPaid(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(rows))
}

func (h *JobHandler) MostRecent(c fiber.Ctx) error {
	rows, err := h.uc.MostRecent(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(rows))
}

func (h *JobHandler) Stats(c fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	posting, err := h.uc.Create(c.Context(), p, ucjob.CreateJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Salary:          req.Salary,
		Nature:          req.Nature,
		Skills:          req.Skills,
		Requirements:    req.Requirements,
		Deadline:        req.Deadline,
		CompanyName:     req.CompanyName,
		CompanyWebsite:  req.CompanyWebsite,
		CompanyLocation: req.CompanyLocation,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job created successfully", posting)
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	posting, err := h.uc.Update(c.Context(), p, id, ucjob.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Salary:       req.Salary,
		Nature:       req.Nature,
		Skills:       req.Skills,
		Requirements: req.Requirements,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated successfully", posting)
}

func (h *JobHandler) ManagerJobs(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	rows, err := h.uc.ManagerJobs(c.Context(), p)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewManagerJobResponses(rows))
}

func (h *JobHandler) ManagerJobDetail(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	detail, err := h.uc.ManagerJobDetail(c.Context(), p, id)
	if err != nil {
		return mapJobError(err)
	}

	data := map[string]any{
		"job":          dto.NewJobResponse(detail.Job),
		"applications": dto.NewJobApplicationResponses(detail.Applications),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucjob.ErrDeadlinePast):
		return middleware.NewAppError(fiber.StatusBadRequest, "Deadline must be in the future", nil, err)
	case errors.Is(err, ucjob.ErrCompanyRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Company not found. Please provide company name, website, and location", nil, err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not authorized to modify this job", nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
