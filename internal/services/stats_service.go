package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/models"
	"guardrails/internal/querybuilder"
)

const topHooksLimit = 5

// statsService computes dashboard statistics from the audit log.
type statsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatsService creates a new StatsServicer using the wall clock.
func NewStatsService(db *gorm.DB) StatsServicer {
	return NewStatsServiceWithClock(db, time.Now)
}

// NewStatsServiceWithClock creates a StatsServicer whose notion of "today"
// comes from now.
func NewStatsServiceWithClock(db *gorm.DB, now func() time.Time) StatsServicer {
	return &statsService{db: db, now: now}
}

// Dashboard reports query counts and the most triggered hooks since local
// midnight.
func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	db := s.db.WithContext(ctx)

	q := querybuilder.New("SELECT COUNT(*) AS total_queries, " +
		"COALESCE(SUM(CASE WHEN blocked THEN 1 ELSE 0 END), 0) AS blocked_queries FROM audit_log").
		Where(querybuilder.When("timestamp", ">=", &since)).
		Build()

	var counts struct {
		TotalQueries   int64
		BlockedQueries int64
	}
	if err := db.Raw(q.SQL, q.Args...).Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchStats, err)
	}

	hooks, err := s.topHooks(db, since)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchStats, err)
	}

	return &DashboardStats{
		TotalQueries:   counts.TotalQueries,
		BlockedQueries: counts.BlockedQueries,
		TopHooks:       hooks,
		UpdatedAt:      now,
	}, nil
}

// topHooks unnests hooks_triggered in SQL on Postgres. Other dialects store
// the array as text, so the tally happens here instead.
func (s *statsService) topHooks(db *gorm.DB, since time.Time) ([]HookCount, error) {
	hooks := []HookCount{}

	if db.Dialector.Name() == "postgres" {
		q := querybuilder.New("SELECT UNNEST(hooks_triggered) AS hook FROM audit_log").
			Where(querybuilder.When("timestamp", ">=", &since)).
			Build()
		sql := "SELECT hook, COUNT(*) AS count FROM (" + q.SQL + ") h GROUP BY hook ORDER BY count DESC, hook ASC LIMIT " + strconv.Itoa(topHooksLimit)
		if err := db.Raw(sql, q.Args...).Scan(&hooks).Error; err != nil {
			return nil, err
		}
		return hooks, nil
	}

	var rows []models.StringArray
	err := db.Model(&models.AuditLog{}).
		Where("timestamp >= ?", since).
		Pluck("hooks_triggered", &rows).Error
	if err != nil {
		return nil, err
	}

	tally := map[string]int64{}
	for _, row := range rows {
		for _, hook := range row {
			tally[hook]++
		}
	}
	for hook, n := range tally {
		hooks = append(hooks, HookCount{Hook: hook, Count: n})
	}
	sort.Slice(hooks, func(i, j int) bool {
		if hooks[i].Count != hooks[j].Count {
			return hooks[i].Count > hooks[j].Count
		}
		return hooks[i].Hook < hooks[j].Hook
	})
	if len(hooks) > topHooksLimit {
		hooks = hooks[:topHooksLimit]
	}
	return hooks, nil
}
