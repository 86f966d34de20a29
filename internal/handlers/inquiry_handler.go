package handlers

import (
	"net/http"

	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

// InquiryHandler serves the public contact and franchise forms.
type InquiryHandler struct {
	responder
	inquiryService services.InquiryService
}

func NewInquiryHandler(inquiryService services.InquiryService, m *metrics.Metrics) *InquiryHandler {
	return &InquiryHandler{responder: responder{metrics: m}, inquiryService: inquiryService}
}

func (h *InquiryHandler) CreateContact(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg, err := h.inquiryService.SubmitContact(c.Request.Context(), body)
	h.countSubmission("contact_message", err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *InquiryHandler) ListContacts(c *gin.Context) {
	msgs, err := h.inquiryService.ListContacts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *InquiryHandler) CreateFranchise(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	app, err := h.inquiryService.SubmitFranchise(c.Request.Context(), body)
	h.countSubmission("franchise_application", err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *InquiryHandler) ListFranchise(c *gin.Context) {
	apps, err := h.inquiryService.ListFranchise(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
