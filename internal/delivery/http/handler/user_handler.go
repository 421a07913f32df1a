package handler

import (
	"errors"
	"strings"

	"jobport/internal/delivery/http/dto"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/pkg/response"
	ucauth "jobport/internal/usecase/auth"
	ucuser "jobport/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc   *ucuser.Service
	auth *ucauth.Service
}

func NewUserHandler(uc *ucuser.Service, auth *ucauth.Service) *UserHandler {
	return &UserHandler{uc: uc, auth: auth}
}

type updateMeRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type promoteRequest struct {
	Role string `json:"role"`
}

// RegisterRoutes mounts the user routes. Gates are passed ahead of the
// terminal handler; fiber v3 keeps handler order as given, so a gate listed
// after the terminal would never run.
func (h *UserHandler) RegisterRoutes(r fiber.Router, authed, admin fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/check-email/:email", h.CheckEmail)

	r.Get("/me", authed, h.GetMe)
	r.Patch("/me", authed, h.UpdateMe)
	r.Patch("/me/password", authed, h.ChangePassword)
	r.Post("/me/resume", authed, h.UploadResume)
	r.Post("/me/image", authed, h.UploadImage)

	r.Get("/candidates", authed, admin, h.ListCandidates)
	r.Get("/candidates/:id", authed, admin, h.GetCandidate)
	r.Get("/managers", authed, admin, h.ListManagers)
	r.Put("/:id/promote", authed, admin, h.Promote)
}

// CheckEmail is public; the signup form polls it while the address is typed.
func (h *UserHandler) CheckEmail(c fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Email is required", nil, nil)
	}

	exists, err := h.uc.CheckEmail(c.Context(), email)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"exists": exists})
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), p.ID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.UpdateMe(c.Context(), p.ID, ucuser.UpdateMeInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewUserResponse(usr))
}

func (h *UserHandler) ChangePassword(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.ChangePassword(c.Context(), p.ID, ucuser.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password changed", nil)
}

func (h *UserHandler) UploadResume(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	upload, err := resumeFileFromRequest(c)
	if err != nil {
		return err
	}
	if upload == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please attach a resume file", nil, nil)
	}

	ref, err := h.uc.UploadProfileResume(c.Context(), p.ID, upload.Data, upload.MimeType, upload.Filename)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume uploaded", map[string]any{"resume_url": ref})
}

func (h *UserHandler) UploadImage(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	upload, err := imageFileFromRequest(c)
	if err != nil {
		return err
	}
	if upload == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please attach an image file", nil, nil)
	}

	ref, err := h.uc.UploadProfileImage(c.Context(), p.ID, upload.Data, upload.MimeType, upload.Filename)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "Image uploaded", map[string]any{"image_url": ref})
}

func (h *UserHandler) ListCandidates(c fiber.Ctx) error {
	users, err := h.uc.ListCandidates(c.Context())
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(users))
}

func (h *UserHandler) GetCandidate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	usr, err := h.uc.GetCandidate(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) ListManagers(c fiber.Ctx) error {
	users, err := h.uc.ListManagers(c.Context())
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(users))
}

func (h *UserHandler) Promote(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	var req promoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.auth.Promote(c.Context(), id, req.Role)
	if err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, "Role updated", dto.NewUserResponse(usr))
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucuser.ErrPasswordUnchanged):
		return middleware.NewAppError(fiber.StatusBadRequest, "New password must differ from the old one", nil, err)
	case errors.Is(err, ucuser.ErrWrongPassword):
		return middleware.NewAppError(fiber.StatusForbidden, "Password is not correct", nil, err)
	case errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrStorage):
		return middleware.NewAppError(fiber.StatusBadGateway, "File upload failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
