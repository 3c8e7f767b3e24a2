package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	service services.ExportServiceInterface
	now     func() time.Time
}

func NewExportHandler(service services.ExportServiceInterface) *ExportHandler {
	return &ExportHandler{service: service, now: time.Now}
}

func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	data, err := h.service.Workbook(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to build export", err)
		return
	}

	filename := fmt.Sprintf("alumni-connect-%s.xlsx", h.now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
