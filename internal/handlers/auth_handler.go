package handlers

import (
	"errors"
	"net/http"

	"rideway/internal/models"
	"rideway/internal/services"
	"rideway/internal/utils"
	"rideway/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	debug       bool
}

func NewAuthHandler(authService services.AuthService, debug bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		debug:       debug,
	}
}

// Register creates a new rider or driver account.
func (h *AuthHandler) Register(c *gin.Context) {
	var request validators.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRegister(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &services.RegisterRequest{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
		Password:  request.Password,
		UserType:  models.UserType(request.UserType),
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	utils.CreatedResponse(c, "Registration successful", response)
}

// Login authenticates a user and issues a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var request validators.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateLogin(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &services.LoginRequest{
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

// RefreshToken exchanges a refresh token for a fresh token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request validators.RefreshTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRefreshToken(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, toAPIErrors(errs))
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed successfully", tokens)
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", user)
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrUserSuspended):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	default:
		utils.InternalServerErrorResponse(c, err, h.debug)
	}
}
