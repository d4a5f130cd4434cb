package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// Task command (parent)
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Submit tasks and check their status",
	Long: `Submit individual tasks to batchd and follow them to a result.

A submitted task is pending until the batch it lands in has run, then it is
either succeeded (with the backend's result) or failed (with a reason).`,
}

// Task submit command
var taskSubmitCmd = &cobra.Command{
	Use:   "submit NAME",
	Short: "Submit a task",
	Long: `Submit one task. Task data comes from --json and/or repeated --data key=value
flags; values that are valid JSON keep their type.

A full queue rejects the submission with QueueFull; retry after a short wait.`,
	Example: `  # Submit with typed data
  batchctl task submit resize --data width=100 --data crop=true

  # Submit a JSON object and wait up to 30s for the result
  batchctl task submit embed --json '{"text": "hello"}' --wait --wait-timeout=30s`,
	Args: cobra.ExactArgs(1),
}

// Task status command
var taskStatusCmd = &cobra.Command{
	Use:   "status TASK_ID",
	Short: "Show a task's status and result",
	Example: `  # Current status
  batchctl task status 3f1c9a2e-7b4d-4c1e-9a55-1d2f3e4a5b6c

  # Block until the task finishes
  batchctl task status 3f1c9a2e-7b4d-4c1e-9a55-1d2f3e4a5b6c --wait`,
	Args: cobra.ExactArgs(1),
}

// GetTaskCommands returns the task subcommands for flag and handler setup
func GetTaskCommands() (*cobra.Command, *cobra.Command) {
	return taskSubmitCmd, taskStatusCmd
}

// SetupTaskFlags configures flags for task commands
func SetupTaskFlags(submitCmd, statusCmd *cobra.Command, dataPtr *[]string, jsonPtr *string,
	waitPtr *bool, waitForPtr *time.Duration, defaultWait time.Duration) {
	submitCmd.Flags().StringArrayVar(dataPtr, "data", nil,
		"Task data entry in key=value form (repeatable)")
	submitCmd.Flags().StringVar(jsonPtr, "json", "",
		"Task data as a JSON object")

	for _, cmd := range []*cobra.Command{submitCmd, statusCmd} {
		cmd.Flags().BoolVarP(waitPtr, "wait", "w", false,
			"Wait for the task to succeed or fail")
		cmd.Flags().DurationVar(waitForPtr, "wait-timeout", defaultWait,
			"Maximum time to wait with --wait")
	}
}
