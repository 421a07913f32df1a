package handler

import (
	"errors"
	"strconv"

	"jobport/internal/delivery/http/dto"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/pkg/response"
	ucapplication "jobport/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc *ucapplication.Service
}

func NewApplicationHandler(uc *ucapplication.Service) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type setFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// RegisterRoutes mounts the lifecycle endpoints on the shared jobs and users
// prefixes. Each route carries its own gate chain ahead of the terminal
// handler; prefix-wide middleware would apply one group's gate to every
// route under the prefix.
func (h *ApplicationHandler) RegisterRoutes(jobs, users fiber.Router, authed, candidate, managerOrAdmin fiber.Handler) {
	if jobs != nil {
		jobs.Post("/:id/apply", authed, candidate, h.Submit)
		jobs.Get("/:jobID/applications", authed, managerOrAdmin, h.ListForJob)
		jobs.Patch("/:jobID/applications/:appID/status", authed, managerOrAdmin, h.SetStatus)
		jobs.Patch("/:jobID/applications/:appID/feedback", authed, managerOrAdmin, h.SetFeedback)
	}
	if users != nil {
		users.Get("/me/applications", authed, candidate, h.MyApplications)
	}
}

// Submit accepts a multipart form: an optional "resume" PDF, an optional
// "use_profile_resume" flag, and an optional "cover_letter" field. One of
// the two resume sources must resolve.
func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	upload, err := resumeFileFromRequest(c)
	if err != nil {
		return err
	}

	useProfileResume, _ := strconv.ParseBool(c.FormValue("use_profile_resume"))

	a, err := h.uc.Submit(c.Context(), p, ucapplication.SubmitInput{
		JobID:            jobID,
		CoverLetter:      c.FormValue("cover_letter"),
		Upload:           upload,
		UseProfileResume: useProfileResume,
	})
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job applied successfully", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) MyApplications(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	rows, err := h.uc.ListForCandidate(c.Context(), p)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateApplicationResponses(rows))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	rows, err := h.uc.ListForJob(c.Context(), p, jobID)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobApplicationResponses(rows))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, appID, err := jobAndAppIDs(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.SetStatus(c.Context(), p, jobID, appID, req.Status)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) SetFeedback(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, appID, err := jobAndAppIDs(c)
	if err != nil {
		return err
	}

	var req setFeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.SetFeedback(c.Context(), p, jobID, appID, req.Feedback)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func jobAndAppIDs(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	appID, err := uuid.Parse(c.Params("appID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}
	return jobID, appID, nil
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, ucapplication.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapplication.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapplication.ErrDeadlinePassed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application deadline is over", nil, err)
	case errors.Is(err, ucapplication.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job", nil, err)
	case errors.Is(err, ucapplication.ErrResumeRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload your resume or save one to your profile first", nil, err)
	case errors.Is(err, ucapplication.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status value", nil, err)
	case errors.Is(err, ucapplication.ErrEmptyFeedback):
		return middleware.NewAppError(fiber.StatusBadRequest, "Feedback cannot be empty", nil, err)
	case errors.Is(err, ucapplication.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not authorized to manage this application", nil, err)
	case errors.Is(err, ucapplication.ErrStorage):
		return middleware.NewAppError(fiber.StatusBadGateway, "Resume upload failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
