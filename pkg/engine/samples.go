package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"taskdesk/pkg/model"
)

// SampleTasksURL is where ImportSampleTasks fetches seed data from.
var SampleTasksURL = "https://jsonplaceholder.typicode.com/todos"

const sampleTaskCount = 5

// ImportSampleTasks fetches a handful of placeholder todos and stores them
// as tasks, for demos and fresh installs. Admin only. Each imported task
// gets a ledger entry and is pushed to the sheet like any other creation.
func (e *Engine) ImportSampleTasks(sess model.Session) ([]model.Task, error) {
	if !sess.Admin {
		return nil, permissionf("only admins may import sample tasks")
	}

	resp, err := http.Get(SampleTasksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample tasks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch sample tasks: status %s", resp.Status)
	}

	var todos []struct {
		ID        int    `json:"id"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("failed to decode sample tasks: %w", err)
	}
	if len(todos) > sampleTaskCount {
		todos = todos[:sampleTaskCount]
	}

	now := time.Now()
	var imported []model.Task
	for _, todo := range todos {
		status := model.StatusTodo
		if todo.Completed {
			status = model.StatusDone
		}
		t := model.Task{
			ID:             uuid.NewString(),
			Title:          todo.Title,
			Description:    fmt.Sprintf("Sample task %d", todo.ID),
			Assignee:       "Unassigned User",
			ProjectName:    "Default Project",
			Status:         status,
			Deadline:       model.DefaultDeadline(now),
			CreatedAt:      model.FormatTime(now),
			CreatedBy:      model.SystemUser,
			LastModifiedBy: model.SystemUser,
			LastModifiedAt: model.FormatTime(now),
		}
		e.tasks = append(e.tasks, t)
		e.logHistory("Created (Sample)", t, sess.Username)
		imported = append(imported, t)

		if e.taskSheet != nil {
			if err := e.pushTask(t); err != nil {
				e.logger.Printf("WARNING: failed to push sample task %s: %v", t.ID, err)
			}
		}
	}
	e.saveTasks()

	return imported, nil
}
