package handlers

import (
	"net/http"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

const workerNotFound = "Worker not found"

type WorkerHandler struct {
	responder
	workerService services.WorkerService
}

func NewWorkerHandler(workerService services.WorkerService, m *metrics.Metrics) *WorkerHandler {
	return &WorkerHandler{responder: responder{metrics: m}, workerService: workerService}
}

func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.workerService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

func (h *WorkerHandler) Get(c *gin.Context) {
	id, err := parseID(c, workerNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	worker, err := h.workerService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

func (h *WorkerHandler) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	worker, err := h.workerService.Register(c.Request.Context(), body)
	h.countSubmission("worker", err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, worker)
}

type workerStatusRequest struct {
	Status string `json:"status"`
}

func (h *WorkerHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, workerNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req workerStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.workerService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker status updated successfully"})
}

type workerVerificationRequest struct {
	Verified *bool `json:"verified"`
}

func (h *WorkerHandler) UpdateVerification(c *gin.Context) {
	id, err := parseID(c, workerNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req workerVerificationRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if req.Verified == nil {
		h.fail(c, apperrors.Validation("verified is required"))
		return
	}
	if err := h.workerService.UpdateVerification(c.Request.Context(), id, *req.Verified); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker verification updated successfully"})
}

func (h *WorkerHandler) Statistics(c *gin.Context) {
	stats, err := h.workerService.Statistics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Analytics answers {"period","data":[],"implemented":false} for daily,
// weekly, monthly or yearly. Older frontends expecting a bare [] for any
// period must read data instead; unknown periods get 400.
func (h *WorkerHandler) Analytics(c *gin.Context) {
	report, err := h.workerService.Analytics(c.Request.Context(), c.Param("period"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
