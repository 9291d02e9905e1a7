package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/services"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
)

// SessionController handles study session endpoints
type SessionController struct {
	sessionService *services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// ListSessions handles GET /sessions: every upcoming session of the
// caller's enrolled courses.
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	sessions, err := c.sessionService.ListUpcomingForUser(ctx.Request.Context(), userID, 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.SessionListResponse{
		Sessions: sessions,
		Notice:   ctx.Query("notice"),
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ShowCreateForm handles GET /create_session: the caller's enrolled courses
// to pick from.
func (c *SessionController) ShowCreateForm(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	resp, err := c.sessionService.GetCreateForm(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// CreateSession handles POST /create_session. Success lands on the session
// list; invalid input returns to the form with a notice.
func (c *SessionController) CreateSession(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	var req dto.CreateSessionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.Redirect(http.StatusSeeOther, "/create_session?notice="+dto.NoticeMissingFields)
		return
	}

	_, err := c.sessionService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidationFailed):
			ctx.Redirect(http.StatusSeeOther, "/create_session?notice="+dto.NoticeMissingFields)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			ctx.Redirect(http.StatusSeeOther, "/create_session?notice="+dto.NoticeCourseNotFound)
		default:
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeSessionCreated)
}

// JoinSession handles GET /join_session/:id
func (c *SessionController) JoinSession(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	sessionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeSessionNotFound)
		return
	}

	err = c.sessionService.Join(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyJoined):
			ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeAlreadyJoined)
		case errors.Is(err, apperrors.ErrSessionNotFound):
			ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeSessionNotFound)
		default:
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeJoined)
}

// LeaveSession handles GET /leave_session/:id. Leaving a session the
// caller never joined still lands on the list with the left notice.
func (c *SessionController) LeaveSession(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	sessionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeSessionNotFound)
		return
	}

	if err := c.sessionService.Leave(ctx.Request.Context(), userID, sessionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/sessions?notice="+dto.NoticeLeft)
}
