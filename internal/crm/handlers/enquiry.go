package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/velora/crm/internal/crm/validate"
)

func enquiryID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		ve := &errs.ValidationError{}
		ve.Add("id", "must be a positive integer")
		return 0, ve
	}
	return id, nil
}

func (h *Handler) createEnquiry(c *gin.Context) {
	var req createEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	enquiry, err := req.toModel()
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	created, err := h.enquiries.CreateEnquiry(c.Request.Context(), enquiry)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toEnquiryView(created))
}

func (h *Handler) getEnquiry(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	enquiry, err := h.enquiries.GetEnquiry(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toEnquiryView(enquiry))
}

func (h *Handler) listEnquiries(c *gin.Context) {
	ve := &errs.ValidationError{}
	filter := &models.EnquiryFilter{}
	if s := c.Query("status"); s != "" {
		status := models.EnquiryStatus(s)
		validate.Enum("status", status, ve)
		filter.Status = &status
	}
	if s := c.Query("companyId"); s != "" {
		id := validate.UUID("companyId", s, ve)
		filter.CompanyID = &id
	}
	if s := c.Query("priority"); s != "" {
		priority := models.Priority(s)
		validate.Enum("priority", priority, ve)
		filter.Priority = &priority
	}
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	enquiries, err := h.enquiries.ListEnquiries(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	views := make([]enquiryView, 0, len(enquiries))
	for i := range enquiries {
		views = append(views, toEnquiryView(&enquiries[i]))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) updateEnquiry(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	var req updateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	update, err := req.toUpdate(id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	updated, err := h.enquiries.UpdateEnquiry(c.Request.Context(), update)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toEnquiryView(updated))
}

// updateEnquiryStatus is the dedicated status operation; it is the only
// route through which an enquiry's status and PO fields move.
func (h *Handler) updateEnquiryStatus(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	fields, err := req.toFields()
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	updated, err := h.enquiries.UpdateEnquiryStatus(c.Request.Context(), id, models.EnquiryStatus(req.Status), fields)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toEnquiryView(updated))
}

func (h *Handler) deleteEnquiry(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	if err := h.enquiries.DeleteEnquiry(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
