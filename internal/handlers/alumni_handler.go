package handlers

import (
	"net/http"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/gin-gonic/gin"
)

type AlumniHandler struct {
	directory services.DirectoryServiceInterface
	admin     services.AdminServiceInterface
}

func NewAlumniHandler(directory services.DirectoryServiceInterface, admin services.AdminServiceInterface) *AlumniHandler {
	return &AlumniHandler{directory: directory, admin: admin}
}

func (h *AlumniHandler) ListAlumni(c *gin.Context) {
	alumni := h.directory.ListAlumni(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"alumni": alumni, "total": len(alumni)})
}

func (h *AlumniHandler) ListNotableAlumni(c *gin.Context) {
	alumni := h.directory.NotableAlumni(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"alumni": alumni, "total": len(alumni)})
}

func (h *AlumniHandler) GetAlumni(c *gin.Context) {
	alumni, err := h.directory.GetAlumni(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Alumni not found")
		return
	}
	c.JSON(http.StatusOK, alumni)
}

func (h *AlumniHandler) UpdateAlumniProfile(c *gin.Context) {
	var req models.AlumniUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	alumni, err := h.admin.UpdateAlumniProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Alumni not found")
		return
	}
	c.JSON(http.StatusOK, alumni)
}

func (h *AlumniHandler) DeleteAlumni(c *gin.Context) {
	if err := h.admin.DeleteAlumni(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Alumni not found")
		return
	}
	c.Status(http.StatusNoContent)
}
