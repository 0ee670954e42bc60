package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/llm"
	"github.com/abhisek/codegenome/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded AI requests, replies and spend",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var opts store.QueryOpts
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		if purpose == "" {
			// Purpose filtering happens after the query, so the limit
			// can only be pushed down without one.
			opts.Limit = limit
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := newReport("ID", "Time", "Purpose", "Provider", "Model", "In", "Out", "Ms", "Result").
			alignRight(0, 5, 6, 7)
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if limit > 0 && len(out.rows) >= limit {
				break
			}
			out.add(e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, e.Provider,
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, outcome(e))
		}
		if len(out.rows) == 0 {
			fmt.Println("No AI requests recorded.")
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func outcome(e store.LLMRequestEvent) string {
	switch {
	case !e.Success:
		return "✗ failed"
	case e.Cached:
		return "✓ cached"
	default:
		return "✓"
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one AI request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Purpose", e.Purpose},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Result", outcome(*e)},
		}
		if cost, ok := llm.LookupCost(e.Model); ok && !e.Cached {
			fields = append(fields, [2]string{"Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens))})
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Printf("%-9s %s\n", f[0]+":", f[1])
		}

		printBlock("PROMPT", e.RequestBody)
		printBlock("REPLY", e.ResponseBody)
		return nil
	},
}

func printBlock(title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage per purpose and estimated spend per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No AI usage recorded yet.")
			return nil
		}

		usage := newReport("Purpose", "Calls", "Input", "Output", "Total", "Avg ms").alignRight(1, 2, 3, 4, 5)
		var calls, in, out int
		for _, st := range byPurpose {
			usage.add(st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		usage.total("total", calls, in, out, in+out, "")
		fmt.Println("Usage by purpose")
		fmt.Println(usage)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		spend := newReport("Model", "Calls", "Input", "Output", "Cost").alignRight(1, 2, 3, 4)
		var sum float64
		var unpriced []string
		for _, mu := range byModel {
			price := "?"
			if cost, ok := llm.LookupCost(mu.Model); ok {
				c := cost.Cost(mu.InputTokens, mu.OutputTokens)
				sum += c
				price = formatCost(c)
			} else {
				unpriced = append(unpriced, mu.Model)
			}
			spend.add(truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, price)
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		spend.total(label, "", "", "", formatCost(sum))

		fmt.Println()
		fmt.Println("Estimated spend (USD)")
		fmt.Println(spend)
		if len(unpriced) > 0 {
			fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this, e.g. 24h")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose: profile, journey, quiz, assessment or report")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
