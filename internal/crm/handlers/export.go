package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velora/crm/internal/crm/export"
	"github.com/velora/crm/internal/crm/models"
	"go.uber.org/zap"
)

// exportPipeline streams the current enquiry pipeline as an XLSX workbook.
func (h *Handler) exportPipeline(c *gin.Context) {
	enquiries, err := h.enquiries.ListEnquiries(c.Request.Context(), &models.EnquiryFilter{})
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("pipeline-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WritePipeline(c.Writer, enquiries); err != nil {
		// Headers are gone already; all we can do is log.
		h.logger.Error("failed to write pipeline export", zap.Error(err))
	}
}
