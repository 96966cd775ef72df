package services

import (
	"context"
	"testing"
	"time"

	"guardrails/internal/pagination"
	"guardrails/internal/testutil"
)

func TestListAuditLogs(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("newest_first_with_user_join", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db, "manager")
		testutil.CreateTestAuditLog(t, db, user, testutil.WithTimestamp(base.Add(-2*time.Hour)))
		newest := testutil.CreateTestAuditLog(t, db, user, testutil.WithTimestamp(base))

		resp, err := svc.ListAuditLogs(ctx, AuditLogFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(resp.Data) != 2 {
			t.Fatalf("expected 2 logs, got %d", len(resp.Data))
		}
		if resp.Data[0].ID != newest.ID {
			t.Errorf("expected newest entry first, got id %d", resp.Data[0].ID)
		}
		if resp.Data[0].Username != user.Username {
			t.Errorf("expected username %s, got %s", user.Username, resp.Data[0].Username)
		}
		if resp.Data[0].UserRole == nil || *resp.Data[0].UserRole != "manager" {
			t.Errorf("expected user_role manager, got %v", resp.Data[0].UserRole)
		}
		if resp.Pagination.Limit != 50 || resp.Pagination.Offset != 0 {
			t.Errorf("expected default paging 50/0, got %d/%d", resp.Pagination.Limit, resp.Pagination.Offset)
		}
	})

	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		alice := testutil.CreateTestUser(t, db, "employee")
		bob := testutil.CreateTestUser(t, db, "intern")

		testutil.CreateTestAuditLog(t, db, alice, testutil.WithTimestamp(base.Add(-48*time.Hour)))
		testutil.CreateTestAuditLog(t, db, alice, testutil.WithBlocked(), testutil.WithTimestamp(base.Add(-24*time.Hour)))
		testutil.CreateTestAuditLog(t, db, bob, testutil.WithTool("file_search"), testutil.WithTimestamp(base))
		testutil.CreateTestAuditLog(t, db, bob, testutil.WithBlocked(), testutil.WithTool("file_search"), testutil.WithTimestamp(base.Add(time.Hour)))

		from := base.Add(-25 * time.Hour)
		to := base

		tests := []struct {
			name   string
			filter AuditLogFilter
			want   int
		}{
			{"none", AuditLogFilter{}, 4},
			{"user_id", AuditLogFilter{UserID: &alice.ID}, 2},
			{"tool", AuditLogFilter{Tool: strPtr("file_search")}, 2},
			{"blocked", AuditLogFilter{Blocked: boolPtr(true)}, 2},
			{"not_blocked", AuditLogFilter{Blocked: boolPtr(false)}, 2},
			{"date_from", AuditLogFilter{DateFrom: &from}, 3},
			{"date_to_inclusive", AuditLogFilter{DateTo: &to}, 3},
			{"date_range", AuditLogFilter{DateFrom: &from, DateTo: &to}, 2},
			{"combined", AuditLogFilter{UserID: &bob.ID, Blocked: boolPtr(true)}, 1},
			{"no_match", AuditLogFilter{UserID: &alice.ID, Tool: strPtr("file_search")}, 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, err := svc.ListAuditLogs(ctx, tt.filter, pagination.PageRequest{})
				testutil.AssertNoError(t, err)
				if len(resp.Data) != tt.want {
					t.Errorf("expected %d logs, got %d", tt.want, len(resp.Data))
				}
				if resp.Pagination.Count != len(resp.Data) {
					t.Errorf("count %d does not match page size %d", resp.Pagination.Count, len(resp.Data))
				}
			})
		}
	})

	// The total deliberately counts the whole table. Pinned so a change to
	// filtered totals is a visible decision.
	t.Run("total_ignores_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db, "employee")
		for i := 0; i < 35; i++ {
			opts := []testutil.AuditOption{testutil.WithTimestamp(base.Add(time.Duration(i) * time.Minute))}
			if i%5 == 0 {
				opts = append(opts, testutil.WithBlocked())
			}
			testutil.CreateTestAuditLog(t, db, user, opts...)
		}

		resp, err := svc.ListAuditLogs(ctx, AuditLogFilter{}, pagination.PageRequest{Limit: 10, Offset: 20})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 10 {
			t.Errorf("expected 10 rows, got %d", len(resp.Data))
		}
		if resp.Pagination.Total != 35 {
			t.Errorf("expected total 35, got %d", resp.Pagination.Total)
		}
		if resp.Pagination.Limit != 10 || resp.Pagination.Offset != 20 {
			t.Errorf("unexpected paging %+v", resp.Pagination)
		}

		resp, err = svc.ListAuditLogs(ctx, AuditLogFilter{Blocked: boolPtr(true)}, pagination.PageRequest{Limit: 10, Offset: 0})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 7 {
			t.Errorf("expected 7 blocked rows, got %d", len(resp.Data))
		}
		if resp.Pagination.Total != 35 {
			t.Errorf("expected unfiltered total 35, got %d", resp.Pagination.Total)
		}

		resp, err = svc.ListAuditLogs(ctx, AuditLogFilter{}, pagination.PageRequest{Limit: 10, Offset: 30})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 5 {
			t.Errorf("expected 5 rows on last page, got %d", len(resp.Data))
		}
	})

	t.Run("deleted_user_falls_back_to_stored_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db, "employee")
		testutil.CreateTestAuditLog(t, db, user)
		if err := db.Delete(user).Error; err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		resp, err := svc.ListAuditLogs(ctx, AuditLogFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 1 {
			t.Fatalf("expected 1 log, got %d", len(resp.Data))
		}
		if resp.Data[0].Username != user.Username {
			t.Errorf("expected stored username %s, got %s", user.Username, resp.Data[0].Username)
		}
		if resp.Data[0].UserRole != nil {
			t.Errorf("expected nil role, got %v", *resp.Data[0].UserRole)
		}
	})
}

func TestGetAuditLog(t *testing.T) {
	ctx := context.Background()

	t.Run("found_with_department", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db, "manager")
		entry := testutil.CreateTestAuditLog(t, db, user, testutil.WithHooks("pii_check"))

		got, err := svc.GetAuditLog(ctx, entry.ID)
		testutil.AssertNoError(t, err)

		if got.Query != entry.Query {
			t.Errorf("expected query %q, got %q", entry.Query, got.Query)
		}
		if got.Department == nil || *got.Department != "Engineering" {
			t.Errorf("expected department Engineering, got %v", got.Department)
		}
		if len(got.HooksTriggered) != 1 || got.HooksTriggered[0] != "pii_check" {
			t.Errorf("unexpected hooks %v", got.HooksTriggered)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)

		_, err := svc.GetAuditLog(ctx, 404)
		testutil.AssertAppError(t, err, "AUDIT_LOG_NOT_FOUND")
	})
}
