package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/logger"
)

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// queryString returns a pointer to a non-empty query parameter, or nil.
func queryString(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+key+": must be true or false")
	}
	return &b, nil
}

// queryUint parses an optional positive integer query parameter.
func queryUint(c *gin.Context, key string) (*uint, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+key)
	}
	u := uint(n)
	return &u, nil
}

// queryTime parses an optional RFC 3339 timestamp or YYYY-MM-DD date. A bare
// date means midnight UTC of that day.
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+key+": use RFC 3339 or YYYY-MM-DD")
}

// respondWithError writes the failure envelope. If the error is an *AppError
// it uses the error's status code and message. Otherwise it logs the
// unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"error":   appErr.Message,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"success": false,
		"error":   apperrors.ErrInternalServer.Message,
	})
}
