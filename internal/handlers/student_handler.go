package handlers

import (
	"net/http"

	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	directory services.DirectoryServiceInterface
	admin     services.AdminServiceInterface
}

func NewStudentHandler(directory services.DirectoryServiceInterface, admin services.AdminServiceInterface) *StudentHandler {
	return &StudentHandler{directory: directory, admin: admin}
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	students := h.directory.ListStudents(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"students": students, "total": len(students)})
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.directory.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Student not found")
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent is idempotent: an unknown id still yields 204
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.admin.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Student not found")
		return
	}
	c.Status(http.StatusNoContent)
}
