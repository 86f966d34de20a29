package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/logger"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/middleware"
	"shramsiddhi/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// responder is the single place where errors become HTTP responses.
type responder struct {
	metrics *metrics.Metrics
}

func (r responder) fail(c *gin.Context, err error) {
	appErr := r.classify(c, err)

	body := gin.H{"error": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.Status(), body)
}

func (r responder) classify(c *gin.Context, err error) *apperrors.Error {
	var appErr *apperrors.Error
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &appErr) && appErr.Kind != apperrors.KindInternal:
		return appErr
	case errors.As(err, &maxBytes):
		return apperrors.Validation("Request body too large")
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("Not found")
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperrors.Wrap(apperrors.KindDuplicateKey, "Record already exists", err)
	case errors.Is(err, repository.ErrInvalidTarget):
		return apperrors.Wrap(apperrors.KindInvalidTarget, "Invalid table name", err)
	case errors.Is(err, repository.ErrStoreUnavailable):
		if r.metrics != nil {
			r.metrics.StoreUnavailable.Inc()
		}
	}

	logger.FromContext(c).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	return apperrors.Internal(err)
}

func (r responder) countSubmission(entity string, err error) {
	if r.metrics == nil {
		return
	}
	outcome := "created"
	if err != nil {
		outcome = string(apperrors.KindOf(err))
	}
	r.metrics.Submissions.WithLabelValues(entity, outcome).Inc()
}

// readBody returns the raw request body, enforcing the body limit.
func readBody(c *gin.Context) ([]byte, error) {
	body, err := c.GetRawData()
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, apperrors.Validation("Request body too large")
		}
		return nil, apperrors.Validation("Invalid JSON in request body")
	}
	return body, nil
}

// parseID treats anything but a positive integer as an unknown record.
func parseID(c *gin.Context, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound(notFound)
	}
	return uint(id), nil
}

func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return apperrors.Validation("Request body too large")
		}
		return apperrors.Validation("Invalid JSON in request body")
	}
	return nil
}
