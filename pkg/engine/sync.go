package engine

import (
	"errors"
	"fmt"
	"time"

	"taskdesk/pkg/model"
)

// Sync runs a full reconciliation: pull then push, users then tasks. A pull
// failure aborts its own pass (there is nothing safe to merge), but the two
// collections reconcile independently: a login sheet outage does not stop
// tasks from converging. Per-record push failures are logged and counted but
// never stop the pass, and the next sync is the retry mechanism.
func (e *Engine) Sync() error {
	if e.loginSheet == nil || e.taskSheet == nil {
		return fmt.Errorf("remote store is not configured")
	}

	userErr := e.pullUsers()
	if userErr == nil {
		e.pushUsers()
	}

	taskErr := e.pullTasks()
	if taskErr == nil {
		e.pushTasks()
	}

	return errors.Join(userErr, taskErr)
}

// pullUsers merges the login sheet into the local user collection. A sheet
// with no header row gets the canonical header written and nothing merged.
func (e *Engine) pullUsers() error {
	rows, err := e.loginSheet.Rows()
	if err != nil {
		return remote("fetch users", err)
	}
	if len(rows) == 0 {
		return remote("write login header", e.loginSheet.Append(model.LoginHeader))
	}

	for _, row := range rows[1:] {
		username, u, ok := model.UserFromRow(row)
		if !ok {
			continue
		}
		// Any tracked field differing means the remote record replaces
		// the local one wholesale. Last writer wins.
		if cur, exists := e.users[username]; !exists || cur != u {
			e.users[username] = u
		}
	}

	e.saveUsers()
	return nil
}

// pushUsers writes every local account up to the login sheet: appended when
// absent, overwritten in place when present.
func (e *Engine) pushUsers() {
	var failed int
	for username, u := range e.users {
		if err := e.pushUser(username, u); err != nil {
			e.logger.Printf("WARNING: failed to push user %s: %v", username, err)
			failed++
		}
	}
	if failed > 0 {
		e.logger.Printf("user push finished with %d failure(s); will retry next sync", failed)
	}
}

func (e *Engine) pushUser(username string, u model.User) error {
	row, err := e.loginSheet.Find(username)
	if err != nil {
		return remote("find user", err)
	}
	cells := model.UserToRow(username, u)
	if row == 0 {
		return remote("append user", e.loginSheet.Append(cells))
	}
	return remote("update user", e.loginSheet.Update(row, cells))
}

// pullTasks merges the task sheet into the local task collection, defaulting
// malformed cells as it goes.
func (e *Engine) pullTasks() error {
	rows, err := e.taskSheet.Rows()
	if err != nil {
		return remote("fetch tasks", err)
	}
	if len(rows) == 0 {
		return remote("write task header", e.taskSheet.Append(model.TaskHeader))
	}

	now := time.Now()
	for _, row := range rows[1:] {
		t, ok := model.TaskFromRow(row, now)
		if !ok {
			continue
		}
		i := e.findTask(t.ID)
		if i < 0 {
			e.tasks = append(e.tasks, t)
			continue
		}
		if taskDiffers(e.tasks[i], t) {
			// Whole-record replacement, not a per-field merge: a local
			// edit that has not round-tripped yet is discarded here.
			e.tasks[i] = t
		}
	}

	e.saveTasks()
	return nil
}

// taskDiffers compares the tracked field set used by the merge policy.
// Created/modified metadata is deliberately not part of the comparison.
func taskDiffers(a, b model.Task) bool {
	return a.Title != b.Title ||
		a.Description != b.Description ||
		a.Assignee != b.Assignee ||
		a.ProjectName != b.ProjectName ||
		a.Status != b.Status ||
		a.Deadline != b.Deadline ||
		a.Notes != b.Notes
}

// pushTasks writes every local task up to the task sheet.
func (e *Engine) pushTasks() {
	var failed int
	for _, t := range e.tasks {
		if err := e.pushTask(t); err != nil {
			e.logger.Printf("WARNING: failed to push task %s (%s): %v", t.ID, t.Title, err)
			failed++
		}
	}
	if failed > 0 {
		e.logger.Printf("task push finished with %d failure(s); will retry next sync", failed)
	}
}

// pushTask is the single-record push used both by the push pass and by every
// mutation entry point. The row index is resolved fresh on every call.
func (e *Engine) pushTask(t model.Task) error {
	row, err := e.taskSheet.Find(t.ID)
	if err != nil {
		return remote("find task", err)
	}
	if row == 0 {
		return e.appendTask(t)
	}
	return remote("update task", e.taskSheet.Update(row, model.TaskToRow(t)))
}

// appendTask adds a task as a new row, writing the canonical header first if
// the sheet is completely empty.
func (e *Engine) appendTask(t model.Task) error {
	rows, err := e.taskSheet.Rows()
	if err != nil {
		return remote("fetch tasks", err)
	}
	if len(rows) == 0 {
		if err := e.taskSheet.Append(model.TaskHeader); err != nil {
			return remote("write task header", err)
		}
	}
	return remote("append task", e.taskSheet.Append(model.TaskToRow(t)))
}
