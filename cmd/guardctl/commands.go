package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"guardrails/internal/console"
)

const defaultAPIURL = "http://localhost:3000"

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:           "guardctl",
		Short:         "Operate guardrail rules and inspect agent activity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	envURL := os.Getenv("GUARDRAILS_API_URL")
	if envURL == "" {
		envURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&apiURL, "api", envURL, "guardrails API base URL (env GUARDRAILS_API_URL)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	client := func() *console.Client {
		return console.NewClient(apiURL, &http.Client{Timeout: timeout})
	}

	root.AddCommand(
		newRulesCmd(client),
		newQueryCmd(client),
		newAuditCmd(client),
		newStatsCmd(client),
	)

	return root
}

func newRulesCmd(client func() *console.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List and toggle guardrail rules",
	}

	var ruleType, action, enabled string
	list := &cobra.Command{
		Use:   "list",
		Short: "List rules in priority order",
		Example: `  guardctl rules list
  guardctl rules list --type pre_hook --enabled true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := console.RuleFilter{RuleType: ruleType, Action: action}
			if enabled != "" {
				b, err := strconv.ParseBool(enabled)
				if err != nil {
					return fmt.Errorf("invalid --enabled %q", enabled)
				}
				f.Enabled = &b
			}

			rules, err := client().ListRules(cmd.Context(), f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tACTION\tPRIORITY\tENABLED\tROLES")
			for _, r := range rules {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%t\t%s\n",
					r.ID, r.RuleName, r.RuleType, r.Action, r.Priority, r.Enabled, strings.Join(r.TargetRoles, ","))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&ruleType, "type", "", "filter by rule type (pre_hook, post_hook)")
	list.Flags().StringVar(&action, "action", "", "filter by action")
	list.Flags().StringVar(&enabled, "enabled", "", "filter by enabled flag (true, false)")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a rule's enabled flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid rule id %q", args[0])
			}

			board := console.NewRuleBoard(client())
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}
			now, err := board.Toggle(cmd.Context(), uint(id))
			if err != nil {
				return fmt.Errorf("toggling rule %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rule %d enabled=%t\n", id, now)
			return nil
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func newQueryCmd(client func() *console.Client) *cobra.Command {
	var (
		userID uint
		tools  []string
	)

	cmd := &cobra.Command{
		Use:     "query <text>",
		Short:   "Send a query to the agent through the API",
		Example: `  guardctl query --user 3 "How many people work in Finance?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().Query(cmd.Context(), userID, strings.Join(args, " "), tools)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "id of the user issuing the query")
	cmd.Flags().StringSliceVar(&tools, "tool", nil, "tools to allow (repeatable)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newAuditCmd(client func() *console.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the query audit log",
	}

	var (
		f       console.AuditFilter
		blocked string
		since   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if blocked != "" {
				b, err := strconv.ParseBool(blocked)
				if err != nil {
					return fmt.Errorf("invalid --blocked %q", blocked)
				}
				f.Blocked = &b
			}
			if since != "" {
				t, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: use YYYY-MM-DD", since)
				}
				f.DateFrom = t
			}

			page, err := client().ListAuditLogs(cmd.Context(), f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tUSER\tTOOL\tBLOCKED\tHOOKS\tQUERY")
			for _, e := range page.Entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\t%s\n",
					e.ID, e.Timestamp.Format(time.DateTime), e.Username, e.ToolInvoked, e.Blocked,
					strings.Join(e.HooksTriggered, ","), truncate(e.Query, 60))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			p := page.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "showing %d from offset %d (%d entries in log)\n", p.Count, p.Offset, p.Total)
			return nil
		},
	}
	list.Flags().UintVar(&f.UserID, "user", 0, "filter by user id")
	list.Flags().StringVar(&f.Tool, "tool", "", "filter by tool invoked")
	list.Flags().StringVar(&blocked, "blocked", "", "filter by blocked flag (true, false)")
	list.Flags().StringVar(&since, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	list.Flags().IntVar(&f.Limit, "limit", 0, "page size (server default 50)")
	list.Flags().IntVar(&f.Offset, "offset", 0, "entries to skip")

	cmd.AddCommand(list)
	return cmd
}

func newStatsCmd(client func() *console.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client().Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Queries today: %d\n", stats.TotalQueries)
			fmt.Fprintf(out, "Blocked:       %d\n", stats.BlockedQueries)
			if len(stats.TopHooks) > 0 {
				fmt.Fprintln(out, "Top hooks:")
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, h := range stats.TopHooks {
					fmt.Fprintf(w, "  %s\t%d\n", h.Hook, h.Count)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Updated: %s\n", stats.UpdatedAt.Format(time.RFC3339))
			return nil
		},
	}
}

func printJSON(w io.Writer, data json.RawMessage) error {
	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
