package handlers

import (
	"net/http"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/gin-gonic/gin"
)

type MentorshipHandler struct {
	service services.MentorshipServiceInterface
}

func NewMentorshipHandler(service services.MentorshipServiceInterface) *MentorshipHandler {
	return &MentorshipHandler{service: service}
}

func (h *MentorshipHandler) RequestMentorship(c *gin.Context) {
	var req models.RequestMentorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mentorship, err := h.service.Request(c.Request.Context(), req.StudentID, req.AlumniID)
	if err != nil {
		respondServiceError(c, err, "Student or alumni not found")
		return
	}
	c.JSON(http.StatusCreated, mentorship)
}

// ListMentorships handles GET /mentorships?userId=&role=student|alumni
func (h *MentorshipHandler) ListMentorships(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), c.Query("userId"), c.Query("role"))
	if err != nil {
		respondServiceError(c, err, "Mentorships not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}
