package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesBody = `{"success":true,"count":2,"data":[` +
	`{"id":1,"rule_name":"block_salary_queries","rule_type":"pre_hook","action":"block","target_roles":["employee","intern"],"priority":10,"enabled":true},` +
	`{"id":2,"rule_name":"mask_salary_data","rule_type":"post_hook","action":"mask","target_roles":["manager"],"priority":50,"enabled":false}]}`

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRulesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pre_hook", r.URL.Query().Get("rule_type"))
		_, _ = w.Write([]byte(rulesBody))
	}))
	defer srv.Close()

	out, err := run(t, srv, "rules", "list", "--type", "pre_hook")
	require.NoError(t, err)
	assert.Contains(t, out, "block_salary_queries")
	assert.Contains(t, out, "employee,intern")
	assert.Contains(t, out, "PRIORITY")
}

func TestRulesList_BadEnabledFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	_, err := run(t, srv, "rules", "list", "--enabled", "sometimes")
	assert.EqualError(t, err, `invalid --enabled "sometimes"`)
}

func TestRulesToggle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				_, _ = w.Write([]byte(`{"success":true,"data":{"id":2,"rule_name":"mask_salary_data","enabled":true}}`))
				return
			}
			_, _ = w.Write([]byte(rulesBody))
		}))
		defer srv.Close()

		out, err := run(t, srv, "rules", "toggle", "2")
		require.NoError(t, err)
		assert.Equal(t, "rule 2 enabled=true\n", out)
	})

	t.Run("server failure is reported", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"success":false,"error":"Failed to update guardrail"}`))
				return
			}
			_, _ = w.Write([]byte(rulesBody))
		}))
		defer srv.Close()

		_, err := run(t, srv, "rules", "toggle", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to update guardrail")
	})
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"total_queries":12,"blocked_queries":3,` +
			`"top_hooks":[{"hook":"block_salary_queries","count":3}],"updated_at":"2024-05-10T09:00:00Z"}}`))
	}))
	defer srv.Close()

	out, err := run(t, srv, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Queries today: 12")
	assert.Contains(t, out, "block_salary_queries")
}

func TestQuery_RequiresUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	_, err := run(t, srv, "query", "hello")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
