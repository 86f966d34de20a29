package handlers

import (
	"net/http"

	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/models"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

type ClientRequestHandler struct {
	responder
	requestService services.ClientRequestService
}

func NewClientRequestHandler(requestService services.ClientRequestService, m *metrics.Metrics) *ClientRequestHandler {
	return &ClientRequestHandler{responder: responder{metrics: m}, requestService: requestService}
}

// createdClientRequest keeps lastInsertRowid for older frontend builds.
type createdClientRequest struct {
	*models.ClientRequest
	LastInsertRowID uint `json:"lastInsertRowid"`
}

func (h *ClientRequestHandler) List(c *gin.Context) {
	requests, err := h.requestService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *ClientRequestHandler) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	request, err := h.requestService.Submit(c.Request.Context(), body)
	h.countSubmission("client_request", err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdClientRequest{ClientRequest: request, LastInsertRowID: request.ID})
}

type requestStatusRequest struct {
	Status string `json:"status"`
}

func (h *ClientRequestHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "Request not found")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req requestStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.requestService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request status updated successfully"})
}
