package handler

import (
	"errors"

	"jobport/internal/delivery/http/dto"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/pkg/jwt"
	"jobport/internal/pkg/response"
	ucauth "jobport/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc *ucauth.Service
}

func NewAuthHandler(uc *ucauth.Service) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, authed fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", authed, h.Logout)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, pair, err := h.uc.Signup(c.Context(), ucauth.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return mapAuthError(err)
	}

	data := map[string]any{
		"user":          dto.NewUserResponse(usr),
		"access_token":  pair.Access,
		"refresh_token": pair.Refresh,
	}
	return response.Success(c, fiber.StatusOK, "Successfully signed up", data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	data := map[string]any{
		"user":          dto.NewUserResponse(usr),
		"access_token":  pair.Access,
		"refresh_token": pair.Refresh,
	}
	return response.Success(c, fiber.StatusOK, "Successfully logged in", data)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token, _ := c.Locals(middleware.CtxTokenKey).(string)
	claims, ok := c.Locals(middleware.CtxClaimsKey).(jwt.Claims)
	if token == "" || !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	if err := h.uc.Logout(c.Context(), token, claims); err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, "Logged out", nil)
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
