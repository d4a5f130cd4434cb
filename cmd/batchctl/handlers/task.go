package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/concave-dev/batchd/cmd/batchctl/client"
	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/cmd/batchctl/display"
	"github.com/concave-dev/batchd/cmd/batchctl/utils"
	apihandlers "github.com/concave-dev/batchd/internal/api/handlers"
	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/spf13/cobra"
)

// HandleTaskSubmit handles `batchctl task submit NAME`.
func HandleTaskSubmit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	name := args[0]
	data, err := ParseTaskData(config.Task.JSONData, config.Task.Data)
	if err != nil {
		return err
	}

	logging.Info("Submitting task '%s' to API server: %s", name, config.Global.APIAddr)

	apiClient := client.CreateAPIClient(waitBudget())
	task, err := apiClient.SubmitTask(name, data)
	if err != nil {
		if hint := client.RejectionHint(err); hint != "" {
			return fmt.Errorf("%w (%s)", err, hint)
		}
		return err
	}

	if config.Task.Wait {
		task, err = waitForTask(apiClient, task.TaskID)
		if err != nil {
			return err
		}
	}

	display.DisplayTask(task)
	logging.Success("Submitted task %s", task.TaskID)
	return nil
}

// HandleTaskStatus handles `batchctl task status ID`.
func HandleTaskStatus(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	taskID := args[0]
	logging.Info("Fetching task %s from API server: %s", logging.FormatTaskID(taskID), config.Global.APIAddr)

	apiClient := client.CreateAPIClient(waitBudget())

	var (
		task *apihandlers.TaskResponse
		err  error
	)
	if config.Task.Wait {
		task, err = waitForTask(apiClient, taskID)
	} else {
		task, err = apiClient.GetTask(taskID, 0)
	}
	if err != nil {
		return err
	}

	display.DisplayTask(task)
	return nil
}

// waitBudget is the extra client timeout needed for --wait.
func waitBudget() time.Duration {
	if !config.Task.Wait {
		return 0
	}
	return config.Task.WaitFor
}

// waitForTask long-polls until the task is terminal or --wait-timeout
// elapses. The server caps each poll, so several polls may be needed.
func waitForTask(apiClient *client.BatchdAPIClient, taskID string) (*apihandlers.TaskResponse, error) {
	deadline := time.Now().Add(config.Task.WaitFor)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			remaining = time.Millisecond
		}

		task, err := apiClient.GetTask(taskID, remaining)
		if err != nil {
			return nil, err
		}
		if task.Status != batching.StatusPending {
			return task, nil
		}
		if time.Now().After(deadline) {
			logging.Warn("Task %s still pending after %s", logging.FormatTaskID(taskID), config.Task.WaitFor)
			return task, nil
		}
	}
}

// ParseTaskData builds task_data from --json and repeated --data key=value
// flags. Values that parse as JSON (numbers, booleans, null, objects, arrays,
// quoted strings) keep their type; anything else is taken as a plain string.
// --data entries override keys from --json.
func ParseTaskData(raw string, pairs []string) (map[string]any, error) {
	data := make(map[string]any)

	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("invalid --json task data, expected a JSON object: %w", err)
		}
		if data == nil {
			return nil, errors.New("invalid --json task data, expected a JSON object, got null")
		}
	}

	for _, item := range pairs {
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data format '%s', expected key=value", item)
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("invalid data '%s', key must be non-empty", item)
		}

		var value any
		if err := json.Unmarshal([]byte(parts[1]), &value); err != nil {
			value = parts[1]
		}
		data[key] = value
	}

	return data, nil
}
