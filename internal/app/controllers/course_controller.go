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

// CourseController handles the course catalog and enrollment endpoints
type CourseController struct {
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{enrollmentService: enrollmentService}
}

// ListCourses handles GET /courses: the full catalog with the caller's
// enrollment flags. A notice from a preceding redirect is echoed back.
func (c *CourseController) ListCourses(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	resp, err := c.enrollmentService.ListCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp.Notice = ctx.Query("notice")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Enroll handles GET /enroll_course/:id. All outcomes land back on the
// catalog view with a notice.
func (c *CourseController) Enroll(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeCourseNotFound)
		return
	}

	err = c.enrollmentService.Enroll(ctx.Request.Context(), userID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeAlreadyEnrolled)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeCourseNotFound)
		default:
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeEnrolled)
}

// Drop handles GET /drop_course/:id. Dropping a course the caller is not
// enrolled in still lands on the catalog with the dropped notice.
func (c *CourseController) Drop(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeCourseNotFound)
		return
	}

	if err := c.enrollmentService.Drop(ctx.Request.Context(), userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/courses?notice="+dto.NoticeDropped)
}
