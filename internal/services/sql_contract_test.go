package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guardrails/internal/pagination"
)

// newMockDB opens gorm on the Postgres dialect over sqlmock so the exact
// statement text and bind order can be asserted.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestListRules_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuardrailService(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM guardrail_rules WHERE 1=1 AND enabled = $1 AND action = $2 ORDER BY priority ASC`)).
		WithArgs(false, "mask").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rule_name", "rule_type", "action", "priority", "enabled"}).
			AddRow(4, "mask_email", "post_hook", "mask", 10, false))

	rules, err := svc.ListRules(context.Background(), RuleFilter{Enabled: boolPtr(false), Action: strPtr("mask")})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "mask_email", rules[0].RuleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogs_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditService(db)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+auditLogColumns+auditLogJoin+
			" WHERE 1=1 AND al.user_id = $1 AND al.blocked = $2 AND al.timestamp >= $3"+
			" ORDER BY al.timestamp DESC LIMIT $4 OFFSET $5")).
		WithArgs(uint(7), true, from, 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "query", "blocked"}).
			AddRow(1, "alice", "q", true))
	mock.ExpectQuery(`^` + regexp.QuoteMeta(`SELECT count(*) FROM "audit_log"`) + `$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

	resp, err := svc.ListAuditLogs(context.Background(),
		AuditLogFilter{UserID: uintPtr(7), Blocked: boolPtr(true), DateFrom: &from},
		pagination.PageRequest{Limit: 10, Offset: 20})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 1)
	assert.Equal(t, pagination.Meta{Total: 120, Limit: 10, Offset: 20, Count: 1}, resp.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboard_PostgresUnnest(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	since := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	svc := NewStatsServiceWithClock(db, func() time.Time { return now })

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) AS total_queries, COALESCE(SUM(CASE WHEN blocked THEN 1 ELSE 0 END), 0) AS blocked_queries FROM audit_log WHERE 1=1 AND timestamp >= $1`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"total_queries", "blocked_queries"}).AddRow(9, 2))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT hook, COUNT(*) AS count FROM (SELECT UNNEST(hooks_triggered) AS hook FROM audit_log WHERE 1=1 AND timestamp >= $1) h GROUP BY hook ORDER BY count DESC, hook ASC LIMIT 5`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"hook", "count"}).
			AddRow("pii_check", 5).
			AddRow("salary_guard", 3))

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(9), stats.TotalQueries)
	assert.Equal(t, int64(2), stats.BlockedQueries)
	assert.Equal(t, []HookCount{{Hook: "pii_check", Count: 5}, {Hook: "salary_guard", Count: 3}}, stats.TopHooks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}
