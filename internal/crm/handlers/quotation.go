package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/velora/crm/internal/crm/validate"
)

func (h *Handler) createQuotation(c *gin.Context) {
	var req createQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	quotation, err := req.toModel()
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	created, err := h.quotations.CreateQuotation(c.Request.Context(), quotation)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toQuotationView(created))
}

func (h *Handler) getQuotation(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	quotation, err := h.quotations.GetQuotation(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationView(quotation))
}

func (h *Handler) listQuotations(c *gin.Context) {
	ve := &errs.ValidationError{}
	filter := &models.QuotationFilter{}
	if s := c.Query("status"); s != "" {
		status := models.QuotationStatus(s)
		validate.Enum("status", status, ve)
		filter.Status = &status
	}
	if s := c.Query("enquiryId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			ve.Add("enquiryId", "must be a positive integer")
		} else {
			filter.EnquiryID = &id
		}
	}
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	quotations, err := h.quotations.ListQuotations(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	views := make([]quotationView, 0, len(quotations))
	for i := range quotations {
		views = append(views, toQuotationView(&quotations[i]))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) updateQuotation(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	var req updateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	update, err := req.toUpdate(id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	updated, err := h.quotations.UpdateQuotation(c.Request.Context(), update)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationView(updated))
}

// updateQuotationStatus is the dedicated status operation on the quotation
// side.
func (h *Handler) updateQuotationStatus(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
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

	updated, err := h.quotations.UpdateQuotationStatus(c.Request.Context(), id, models.QuotationStatus(req.Status), fields)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toQuotationView(updated))
}

func (h *Handler) deleteQuotation(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	if err := h.quotations.DeleteQuotation(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
