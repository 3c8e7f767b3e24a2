package handlers

import (
	"net/http"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	directory services.DirectoryServiceInterface
	admin     services.AdminServiceInterface
}

func NewEventHandler(directory services.DirectoryServiceInterface, admin services.AdminServiceInterface) *EventHandler {
	return &EventHandler{directory: directory, admin: admin}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events := h.directory.ListEvents(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.NewEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.admin.AddEvent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.admin.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	c.Status(http.StatusNoContent)
}
