package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/pagination"
	"guardrails/internal/services"
)

// AuditHandler handles audit log requests.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs handles paginated audit log listing.
// @Summary     List audit logs
// @Description List audit entries newest first. pagination.total counts all entries regardless of filters.
// @Tags        audit
// @Produce     json
// @Param       user_id   query int    false "Filter by user"
// @Param       tool      query string false "Filter by tool invoked"
// @Param       blocked   query bool   false "Filter by blocked flag"
// @Param       date_from query string false "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param       date_to   query string false "Inclusive upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param       limit     query int    false "Page size (default 50, max 1000)"
// @Param       offset    query int    false "Rows to skip"
// @Success     200 {object} AuditLogListResponse "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseAuditFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.auditService.ListAuditLogs(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       resp.Data,
		"pagination": resp.Pagination,
	})
}

// GetAuditLog handles fetching one audit entry.
// @Summary     Get an audit log entry
// @Tags        audit
// @Produce     json
// @Param       id path int true "Audit log ID"
// @Success     200 {object} AuditLogResponse "Audit entry"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Audit log not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs/{id} [get]
func (h *AuditHandler) GetAuditLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.auditService.GetAuditLog(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

func parseAuditFilter(c *gin.Context) (services.AuditLogFilter, error) {
	var f services.AuditLogFilter
	var err error

	if f.UserID, err = queryUint(c, "user_id"); err != nil {
		return f, err
	}
	if f.Blocked, err = queryBool(c, "blocked"); err != nil {
		return f, err
	}
	if f.DateFrom, err = queryTime(c, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryTime(c, "date_to"); err != nil {
		return f, err
	}
	f.Tool = queryString(c, "tool")
	return f, nil
}
