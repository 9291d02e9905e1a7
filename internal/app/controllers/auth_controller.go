package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/services"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
	"github.com/studybuddy/backend/internal/pkg/auth"
)

// AuthController handles registration, login and token endpoints
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Home handles GET /. Signed-in callers land on the dashboard, everyone
// else on the login form.
func (c *AuthController) Home(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader != "" {
		if tokenString, err := auth.ExtractBearerToken(authHeader); err == nil {
			if _, err := c.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
				ctx.Redirect(http.StatusFound, "/dashboard")
				return
			}
		}
	}
	ctx.Redirect(http.StatusFound, "/login")
}

// ShowRegisterForm handles GET /register
func (c *AuthController) ShowRegisterForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FormDescriptor{
		Action: "/register",
		Method: http.MethodPost,
		Fields: []string{"username", "email", "password"},
	}})
}

// Register handles POST /register. Success redirects to the login form;
// validation and conflict failures redirect back with a notice.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.Redirect(http.StatusSeeOther, "/register?notice="+dto.NoticeMissingFields)
		return
	}

	_, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidationFailed):
			ctx.Redirect(http.StatusSeeOther, "/register?notice="+dto.NoticeMissingFields)
		case errors.Is(err, apperrors.ErrUsernameAlreadyExists), errors.Is(err, apperrors.ErrEmailAlreadyExists):
			ctx.Redirect(http.StatusSeeOther, "/register?notice="+dto.NoticeUserExists)
		default:
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/login?notice="+dto.NoticeRegistered)
}

// ShowLoginForm handles GET /login
func (c *AuthController) ShowLoginForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FormDescriptor{
		Action: "/login",
		Method: http.MethodPost,
		Fields: []string{"username", "password"},
	}})
}

// Login handles POST /login. Success returns the token pair; bad
// credentials redirect back to the form with a notice.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.Redirect(http.StatusSeeOther, "/login?notice="+dto.NoticeInvalidCredentials)
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			ctx.Redirect(http.StatusSeeOther, "/login?notice="+dto.NoticeInvalidCredentials)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// RefreshToken handles POST /refresh
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.FormatBindingError(err)})
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// Logout handles GET /logout. All refresh tokens of the caller are revoked
// and the caller is sent back to the login form.
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/login?notice="+dto.NoticeLoggedOut)
}
