package handlers

import (
	"net/http"
	"net/url"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/codeelevater/alumni-connect/internal/views"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// DashboardPage is the data passed to the dashboard template
type DashboardPage struct {
	Dashboard *models.Dashboard
	Students  []models.Student
	StudentID string
}

type DashboardHandler struct {
	directory   services.DirectoryServiceInterface
	mentorships services.MentorshipServiceInterface
}

func NewDashboardHandler(directory services.DirectoryServiceInterface, mentorships services.MentorshipServiceInterface) *DashboardHandler {
	return &DashboardHandler{directory: directory, mentorships: mentorships}
}

// GetDashboard handles GET /api/v1/dashboard?studentId=&search=&department=
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var query models.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	dashboard, err := h.directory.Dashboard(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "Student not found")
		return
	}

	metrics.DashboardViews.WithLabelValues("json").Inc()
	c.JSON(http.StatusOK, dashboard)
}

// RenderDashboard handles GET /dashboard
func (h *DashboardHandler) RenderDashboard(c *gin.Context) {
	var query models.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	dashboard, err := h.directory.Dashboard(c.Request.Context(), query)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	metrics.DashboardViews.WithLabelValues("html").Inc()
	c.HTML(http.StatusOK, views.Dashboard, DashboardPage{
		Dashboard: dashboard,
		Students:  h.directory.ListStudents(c.Request.Context()),
		StudentID: query.StudentID,
	})
}

// RequestMentorship handles the dashboard form POST and redirects back to the
// dashboard with the same filters
func (h *DashboardHandler) RequestMentorship(c *gin.Context) {
	var req models.RequestMentorshipRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if _, err := h.mentorships.Request(c.Request.Context(), req.StudentID, req.AlumniID); err != nil {
		h.renderServiceError(c, err)
		return
	}

	params := url.Values{}
	params.Set("studentId", req.StudentID)
	if search := c.PostForm("search"); search != "" {
		params.Set("search", search)
	}
	if department := c.PostForm("department"); department != "" {
		params.Set("department", department)
	}

	c.Redirect(http.StatusSeeOther, "/dashboard?"+params.Encode())
}

func (h *DashboardHandler) renderServiceError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		h.renderError(c, http.StatusNotFound, "Not found", err)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		h.renderError(c, http.StatusBadRequest, "Invalid request", err)
	default:
		h.renderError(c, http.StatusInternalServerError, "Something went wrong", err)
	}
}

func (h *DashboardHandler) renderError(c *gin.Context, status int, title string, err error) {
	attachError(c, err)

	message := "Please try again later."
	if status < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}
	c.HTML(status, views.Error, gin.H{"Title": title, "Message": message})
}
