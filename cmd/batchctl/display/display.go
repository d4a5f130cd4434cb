// Package display provides output formatting for batchctl.
//
// Every function honours the global --output flag: table output is written
// with text/tabwriter for operators, json output is the daemon's response
// re-encoded with indentation for scripts.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/cmd/batchctl/utils"
	"github.com/concave-dev/batchd/internal/api/handlers"
	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
)

// out is where all command output goes. Tests replace it.
var out io.Writer = os.Stdout

var (
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func styleStatus(status string) string {
	switch status {
	case string(batching.StatusSucceeded), "healthy":
		return succeededStyle.Render(status)
	case string(batching.StatusFailed):
		return failedStyle.Render(status)
	default:
		return pendingStyle.Render(status)
	}
}

func printJSON(v any) {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(out, "Error encoding JSON output")
	}
}

// DisplayTask shows one task's status and, once terminal, its outcome.
func DisplayTask(task *handlers.TaskResponse) {
	if config.Global.Output == "json" {
		printJSON(task)
		return
	}

	fmt.Fprintf(out, "Task Information:\n")
	fmt.Fprintf(out, "  ID:        %s\n", task.TaskID)
	fmt.Fprintf(out, "  Status:    %s\n", styleStatus(string(task.Status)))
	if !task.EnqueuedAt.IsZero() {
		fmt.Fprintf(out, "  Enqueued:  %s (%s)\n", task.EnqueuedAt.Format(time.RFC3339), utils.FormatAge(task.EnqueuedAt))
	}

	switch task.Status {
	case batching.StatusSucceeded:
		result, err := json.Marshal(task.Result)
		if err != nil {
			result = []byte(fmt.Sprintf("%v", task.Result))
		}
		if config.Global.Verbose {
			if pretty, err := json.MarshalIndent(task.Result, "             ", "  "); err == nil {
				result = pretty
			}
		} else {
			result = []byte(utils.Truncate(string(result), 120))
		}
		fmt.Fprintf(out, "  Result:    %s\n", result)
	case batching.StatusFailed:
		fmt.Fprintf(out, "  Reason:    %s\n", task.Reason)
		if task.Message != "" {
			fmt.Fprintf(out, "  Message:   %s\n", task.Message)
		}
	}
}

// DisplayFlush shows how many batches a flush sealed.
func DisplayFlush(res *batching.FlushResult) {
	if config.Global.Output == "json" {
		printJSON(res)
		return
	}

	if res.Tasks == 0 {
		fmt.Fprintln(out, "Nothing pending to flush")
		return
	}
	fmt.Fprintf(out, "Flushed %d tasks into %d batches\n", res.Tasks, res.Batches)
}

// DisplayStats shows queue, dispatch and outcome counters.
func DisplayStats(stats *batching.Stats) {
	if config.Global.Output == "json" {
		printJSON(stats)
		return
	}

	maxInflight := "unlimited"
	if stats.MaxInflightBatches > 0 {
		maxInflight = fmt.Sprintf("%d", stats.MaxInflightBatches)
	}

	fmt.Fprintf(out, "Batcher Statistics:\n")
	fmt.Fprintf(out, "  Queue:            %s\n", utils.FormatFill(stats.QueueDepth, stats.QueueCapacity))
	fmt.Fprintf(out, "  In-flight:        %d (max %s)\n", stats.InflightBatches, maxInflight)
	fmt.Fprintf(out, "  Batch triggers:   size=%d, wait=%s\n", stats.MaxBatchSize, time.Duration(stats.MaxWaitMs)*time.Millisecond)
	if stats.Draining {
		fmt.Fprintf(out, "  State:            %s\n", failedStyle.Render("draining"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Tasks:\n")
	fmt.Fprintf(out, "  Accepted:         %s\n", utils.FormatCount(stats.TasksAccepted))
	fmt.Fprintf(out, "  Succeeded:        %s\n", utils.FormatCount(stats.TasksSucceeded))
	fmt.Fprintf(out, "  Failed:           %s\n", utils.FormatCount(stats.TasksFailed))
	fmt.Fprintf(out, "  Pending:          %d\n", stats.TasksPending)
	fmt.Fprintf(out, "  Results retained: %d\n", stats.RetainedResults)
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BATCHES BY TRIGGER\tCOUNT\n")
	for _, trigger := range []batching.Trigger{batching.TriggerSize, batching.TriggerTime, batching.TriggerFlush, batching.TriggerShutdown} {
		fmt.Fprintf(w, "%s\t%s\n", trigger, utils.FormatCount(stats.BatchesByTrigger[trigger]))
	}
	fmt.Fprintf(w, "total\t%s\n", utils.FormatCount(stats.BatchesFormed))
	w.Flush()
	fmt.Fprintln(out)

	reasons := make([]string, 0, len(stats.Rejections))
	for reason := range stats.Rejections {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "REJECTIONS\tCOUNT\n")
	for _, reason := range reasons {
		fmt.Fprintf(w, "%s\t%s\n", reason, utils.FormatCount(stats.Rejections[batching.Reason(reason)]))
	}
	w.Flush()
}

// Info combines health and stats for the info command.
type Info struct {
	APIAddr string                   `json:"api_addr"`
	Health  *handlers.HealthResponse `json:"health"`
	Stats   *batching.Stats          `json:"stats,omitempty"`
}

// DisplayInfo shows a one-screen overview of the daemon.
func DisplayInfo(info Info) {
	if config.Global.Output == "json" {
		printJSON(info)
		return
	}

	h := info.Health
	fmt.Fprintf(out, "batchd Information:\n")
	fmt.Fprintf(out, "  API:         %s\n", info.APIAddr)
	fmt.Fprintf(out, "  Version:     %s\n", h.Version)
	fmt.Fprintf(out, "  Status:      %s\n", styleStatus(h.Status))
	fmt.Fprintf(out, "  Uptime:      %s\n", h.Uptime)
	fmt.Fprintf(out, "  Queue depth: %d\n", h.QueueDepth)
	fmt.Fprintf(out, "  In-flight:   %d\n", h.Inflight)

	if s := info.Stats; s != nil {
		fmt.Fprintf(out, "  Accepted:    %s (%s succeeded, %s failed)\n",
			utils.FormatCount(s.TasksAccepted), utils.FormatCount(s.TasksSucceeded), utils.FormatCount(s.TasksFailed))
		fmt.Fprintf(out, "  Batches:     %s\n", utils.FormatCount(s.BatchesFormed))
	}
}
