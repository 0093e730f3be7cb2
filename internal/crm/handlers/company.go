package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/validate"
)

func (h *Handler) createCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	company, err := req.toModel()
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	created, err := h.companies.CreateCompany(c.Request.Context(), company)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCompanyView(created))
}

func (h *Handler) getCompany(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	company, err := h.companies.GetCompany(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyView(company))
}

func (h *Handler) listCompanies(c *gin.Context) {
	companies, err := h.companies.ListCompanies(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	views := make([]companyView, 0, len(companies))
	for i := range companies {
		views = append(views, toCompanyView(&companies[i]))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) updateCompany(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	updated, err := h.companies.UpdateCompany(c.Request.Context(), req.toUpdate(id))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyView(updated))
}

func (h *Handler) deleteCompany(c *gin.Context) {
	ve := &errs.ValidationError{}
	id := validate.UUID("id", c.Param("id"), ve)
	if err := ve.OrNil(); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	if err := h.companies.DeleteCompany(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
