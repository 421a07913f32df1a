package handler

import (
	"errors"
	"strconv"

	"jobport/internal/delivery/http/dto"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/pkg/response"
	uccompany "jobport/internal/usecase/company"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	uc *uccompany.Service
}

func NewCompanyHandler(uc *uccompany.Service) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	companies, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapCompanyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponses(companies))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid company id", nil, err)
	}

	cmp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompanyError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(cmp))
}

func mapCompanyError(err error) error {
	switch {
	case errors.Is(err, uccompany.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
