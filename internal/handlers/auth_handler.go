package handlers

import (
	"net/http"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	responder
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{responder: responder{metrics: m}, authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.fail(c, apperrors.Validation("Email and password are required"))
		return
	}

	token, user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.KindInvalidCredentials) && h.metrics != nil {
			h.metrics.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}
