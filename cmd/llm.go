package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/abhisek/speakflow/internal/llm"
	"github.com/abhisek/speakflow/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded scoring and tutor requests",
	Long: `Every request SpeakFlow sends to a language model is journaled with its
prompt, reply, token counts and latency. These commands read that journal.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			kept := events[:0]
			for _, e := range events {
				if !e.Success {
					kept = append(kept, e)
				}
			}
			events = kept
		}
		if len(events) == 0 {
			fmt.Println("No model requests recorded.")
			return nil
		}
		return writeEventTable(os.Stdout, events)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no model request with id %d", id)
		}
		writeEventDetail(os.Stdout, e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No model requests recorded.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		writePurposeUsage(os.Stdout, byPurpose)
		fmt.Println()
		writeModelSpend(os.Stdout, byModel)
		return nil
	},
}

func writeEventTable(out io.Writer, events []store.LLMRequestEventRecord) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tPURPOSE\tMODEL\tTOKENS\tLATENCY\tRESULT")
	for _, e := range events {
		result := "ok"
		if !e.Success {
			result = "failed"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			e.ID,
			e.Timestamp.Local().Format("01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens, e.OutputTokens,
			time.Duration(e.LatencyMs)*time.Millisecond,
			result)
	}
	return tw.Flush()
}

func writeEventDetail(out io.Writer, e *store.LLMRequestEventRecord) {
	fmt.Fprintf(out, "Request #%d  %s\n", e.ID, e.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(out, "  %s / %s for %s\n", e.Provider, e.Model, e.Purpose)
	fmt.Fprintf(out, "  %d input + %d output tokens in %s", e.InputTokens, e.OutputTokens,
		time.Duration(e.LatencyMs)*time.Millisecond)
	if usd, ok := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); ok {
		fmt.Fprintf(out, ", about %s", formatCost(usd))
	}
	fmt.Fprintln(out)
	if !e.Success {
		fmt.Fprintf(out, "  failed: %s\n", e.ErrorMessage)
	}

	section(out, "prompt", e.RequestBody)
	section(out, "reply", e.ResponseBody)
}

func section(out io.Writer, title, body string) {
	fmt.Fprintf(out, "\n== %s %s\n", title, strings.Repeat("=", 56-len(title)))
	if body == "" {
		body = "(empty)"
	}
	fmt.Fprintln(out, body)
}

func writePurposeUsage(out io.Writer, stats []store.LLMUsageStat) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG LATENCY\t")
	var calls, in, outTokens int
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", st.Purpose, st.Calls, st.InputTokens, st.OutputTokens,
			time.Duration(st.AvgLatencyMs)*time.Millisecond)
		calls += st.Calls
		in += st.InputTokens
		outTokens += st.OutputTokens
	}
	fmt.Fprintf(tw, "all\t%d\t%d\t%d\t\t\n", calls, in, outTokens)
	_ = tw.Flush()
}

func writeModelSpend(out io.Writer, stats []store.LLMUsageStat) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tEST. COST\t")
	var total float64
	var unpriced []string
	for _, st := range stats {
		usd, ok := llm.EstimateCost(st.Model, st.InputTokens, st.OutputTokens)
		cost := "n/a"
		if ok {
			cost = formatCost(usd)
			total += usd
		} else {
			unpriced = append(unpriced, st.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", truncate(st.Model, 32), st.Calls, cost)
	}
	fmt.Fprintf(tw, "total\t\t%s\t\n", formatCost(total))
	_ = tw.Flush()

	if len(unpriced) > 0 {
		fmt.Fprintf(out, "No price list for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
	}
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().Duration("since", 0, "Only requests newer than this, e.g. 24h")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only requests for this purpose (pronunciation-score or chat-reply)")
	llmListCmd.Flags().Bool("failed", false, "Only failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
