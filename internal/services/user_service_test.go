package services

import (
	"context"
	"testing"

	"guardrails/internal/testutil"
)

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)

	emp := testutil.CreateTestEmployee(t, db, "Carol Jones", "Finance")
	testutil.CreateTestUserWithName(t, db, "zoe", "employee", nil)
	testutil.CreateTestUserWithName(t, db, "carol", "manager", &emp.ID)
	testutil.CreateTestUserWithName(t, db, "adam", "employee", nil)

	users, err := svc.ListUsers(context.Background())
	testutil.AssertNoError(t, err)

	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"adam", "zoe", "carol"} {
		if users[i].Username != want {
			t.Errorf("position %d: expected %s, got %s", i, want, users[i].Username)
		}
	}
	if users[2].EmployeeName == nil || *users[2].EmployeeName != "Carol Jones" {
		t.Errorf("expected employee name Carol Jones, got %v", users[2].EmployeeName)
	}
	if users[0].EmployeeName != nil {
		t.Errorf("expected nil employee name for unlinked user, got %v", *users[0].EmployeeName)
	}
}
