package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createCommunication(c *gin.Context) {
	var req createCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	comm, err := req.toModel()
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	created, err := h.communications.LogCommunication(c.Request.Context(), comm)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCommunicationView(created))
}

func (h *Handler) listCommunications(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	comms, err := h.communications.ListCommunications(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	views := make([]communicationView, 0, len(comms))
	for i := range comms {
		views = append(views, toCommunicationView(&comms[i]))
	}
	c.JSON(http.StatusOK, views)
}
