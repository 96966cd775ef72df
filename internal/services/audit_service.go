package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/models"
	"guardrails/internal/pagination"
	"guardrails/internal/querybuilder"
)

const auditLogColumns = "al.id, al.user_id, COALESCE(u.username, al.username) AS username, al.query, al.tool_invoked, " +
	"al.hooks_triggered, al.action_taken, al.data_masked, al.blocked, al.risk_score, al.response_summary, " +
	"al.metadata, al.timestamp, u.role AS user_role"

const auditLogJoin = " FROM audit_log al LEFT JOIN users u ON al.user_id = u.id"

// auditService reads the audit log written by the agent engine.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// ListAuditLogs returns one page of entries matching filter, newest first.
// Pagination.Total counts every row in the table and ignores filter.
func (s *auditService) ListAuditLogs(ctx context.Context, filter AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLogView], error) {
	page.Defaults()

	q := querybuilder.New("SELECT "+auditLogColumns+auditLogJoin).
		Where(
			querybuilder.Eq("al.user_id", filter.UserID),
			querybuilder.Eq("al.tool_invoked", filter.Tool),
			querybuilder.Eq("al.blocked", filter.Blocked),
			querybuilder.When("al.timestamp", ">=", filter.DateFrom),
			querybuilder.When("al.timestamp", "<=", filter.DateTo),
		).
		OrderBy("al.timestamp DESC").
		Paginate(page.Limit, page.Offset).
		Build()

	db := s.db.WithContext(ctx)

	logs := []models.AuditLogView{}
	if err := db.Raw(q.SQL, q.Args...).Scan(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchAuditLogs, err)
	}

	var total int64
	if err := db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchAuditLogs, err)
	}

	resp := pagination.NewPageResponse(logs, page, total)
	return &resp, nil
}

// GetAuditLog returns a single entry with the issuing user's role and department.
func (s *auditService) GetAuditLog(ctx context.Context, id uint) (*models.AuditLogView, error) {
	q := querybuilder.New("SELECT "+auditLogColumns+", u.department"+auditLogJoin).
		Where(querybuilder.Eq("al.id", &id)).
		Build()

	var logs []models.AuditLogView
	if err := s.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchAuditLog, err)
	}
	if len(logs) == 0 {
		return nil, apperrors.ErrAuditLogNotFound
	}
	return &logs[0], nil
}
