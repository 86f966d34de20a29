package handlers

import (
	"net/http"
	"strconv"

	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler backs the database viewer in the admin panel.
type AdminHandler struct {
	responder
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{responder: responder{metrics: m}, adminService: adminService}
}

func (h *AdminHandler) Tables(c *gin.Context) {
	c.JSON(http.StatusOK, h.adminService.Tables())
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TableData reads ?limit and ?offset; unparsable values fall back to defaults.
func (h *AdminHandler) TableData(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	page, err := h.adminService.TableData(c.Request.Context(), c.Param("tableName"), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
