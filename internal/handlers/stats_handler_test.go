package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"guardrails/internal/services"
)

type mockStatsService struct {
	dashboardFn func(ctx context.Context) (*services.DashboardStats, error)
}

func (m *mockStatsService) Dashboard(ctx context.Context) (*services.DashboardStats, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &services.DashboardStats{TopHooks: []services.HookCount{}}, nil
}

var _ services.StatsServicer = (*mockStatsService)(nil)

func TestStatsHandler_Dashboard(t *testing.T) {
	svc := &mockStatsService{
		dashboardFn: func(_ context.Context) (*services.DashboardStats, error) {
			return &services.DashboardStats{
				TotalQueries:   12,
				BlockedQueries: 3,
				TopHooks:       []services.HookCount{{Hook: "pii_check", Count: 4}},
				UpdatedAt:      time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	r := gin.New()
	r.GET("/stats/dashboard", NewStatsHandler(svc).Dashboard)

	rec := doRequest(r, http.MethodGet, "/stats/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := parseJSON(t, rec)["data"].(map[string]interface{})
	if data["total_queries"] != float64(12) || data["blocked_queries"] != float64(3) {
		t.Errorf("unexpected totals %v", data)
	}
	if data["updated_at"] != "2024-05-10T09:00:00Z" {
		t.Errorf("unexpected updated_at %v", data["updated_at"])
	}
	hooks, _ := data["top_hooks"].([]interface{})
	if len(hooks) != 1 || hooks[0].(map[string]interface{})["hook"] != "pii_check" {
		t.Errorf("unexpected top_hooks %v", data["top_hooks"])
	}
}
