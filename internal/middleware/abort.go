package middleware

import (
	"shramsiddhi/internal/apperrors"

	"github.com/gin-gonic/gin"
)

func abortWith(c *gin.Context, err *apperrors.Error) {
	c.AbortWithStatusJSON(err.Status(), gin.H{"error": err.Message})
}
