package engine

import (
	"time"

	"github.com/google/uuid"

	"taskdesk/pkg/model"
)

// TaskInput carries the caller-editable fields of a task. Identity and audit
// fields are owned by the engine.
type TaskInput struct {
	Title       string
	Description string
	Assignee    string
	ProjectName string
	Status      string
	Deadline    string
	Notes       string
}

// capability is what a session may do to one particular task.
type capability int

const (
	capNone capability = iota
	capStatusOnly
	capFull
)

// capabilityFor derives the per-task capability: admins and the creator may
// edit every field, the assignee may change status, anyone else nothing.
func capabilityFor(sess model.Session, t model.Task) capability {
	if sess.Admin || t.CreatedBy == sess.Username {
		return capFull
	}
	if t.Assignee == sess.FullName {
		return capStatusOnly
	}
	return capNone
}

// validateInput checks the fields a full edit or create must carry. The
// assignee must match some registered full name right now; the reference is
// not enforced after this point.
func (e *Engine) validateInput(in TaskInput) error {
	if in.Title == "" || in.Assignee == "" || in.ProjectName == "" {
		return validationf("title, assignee and project name are all required")
	}
	if !e.fullNames()[in.Assignee] {
		return validationf("assignee %q does not exist", in.Assignee)
	}
	if _, err := model.ParseTime(in.Deadline); err != nil {
		return validationf("deadline %q is not in the form %s", in.Deadline, model.TimeLayout)
	}
	return nil
}

// CreateTask validates the input, stores the new task locally, records it in
// the ledger and pushes it to the sheet. Any authenticated user may create.
// An empty deadline defaults to a week out; a malformed one is rejected.
func (e *Engine) CreateTask(sess model.Session, in TaskInput) (model.Task, error) {
	now := time.Now()
	if in.Deadline == "" {
		in.Deadline = model.DefaultDeadline(now)
	}
	if err := e.validateInput(in); err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		Assignee:       in.Assignee,
		ProjectName:    in.ProjectName,
		Status:         model.NormalizeStatus(in.Status),
		Deadline:       in.Deadline,
		Notes:          in.Notes,
		CreatedAt:      model.FormatTime(now),
		CreatedBy:      sess.Username,
		LastModifiedBy: sess.Username,
		LastModifiedAt: model.FormatTime(now),
	}

	e.tasks = append(e.tasks, t)
	e.logHistory("Created", t, sess.Username)
	e.saveTasks()

	if e.taskSheet == nil {
		return t, nil
	}
	return t, e.pushTask(t)
}

// UpdateTask applies a full-field edit. Admins and the task's creator only;
// an assignee who may only change status must use UpdateTaskStatus.
func (e *Engine) UpdateTask(sess model.Session, id string, in TaskInput) (model.Task, error) {
	i := e.findTask(id)
	if i < 0 {
		return model.Task{}, validationf("task %q not found", id)
	}

	t := e.tasks[i]
	if capabilityFor(sess, t) != capFull {
		return model.Task{}, permissionf("only admins or the task's creator may edit every field")
	}
	if err := e.validateInput(in); err != nil {
		return model.Task{}, err
	}

	t.Title = in.Title
	t.Description = in.Description
	t.Assignee = in.Assignee
	t.ProjectName = in.ProjectName
	t.Status = model.NormalizeStatus(in.Status)
	t.Deadline = in.Deadline
	t.Notes = in.Notes

	return e.applyUpdate(sess, i, t)
}

// UpdateTaskStatus changes a task's status and nothing else; every other
// field is preserved verbatim. Allowed for the assignee as well as anyone
// with full capability. Any status may move to any other: Done tasks can be
// reopened.
func (e *Engine) UpdateTaskStatus(sess model.Session, id, status string) (model.Task, error) {
	i := e.findTask(id)
	if i < 0 {
		return model.Task{}, validationf("task %q not found", id)
	}

	t := e.tasks[i]
	if capabilityFor(sess, t) == capNone {
		return model.Task{}, permissionf("you may not edit this task")
	}
	t.Status = model.NormalizeStatus(status)

	return e.applyUpdate(sess, i, t)
}

// applyUpdate stamps the audit fields, persists, journals and pushes one
// edited task.
func (e *Engine) applyUpdate(sess model.Session, i int, t model.Task) (model.Task, error) {
	t.LastModifiedBy = sess.Username
	t.LastModifiedAt = model.Now()
	e.tasks[i] = t
	e.logHistory("Updated", t, sess.Username)
	e.saveTasks()

	if e.taskSheet == nil {
		return t, nil
	}
	return t, e.pushTask(t)
}

// DeleteTask removes a task from both stores. Admins and the creator only.
func (e *Engine) DeleteTask(sess model.Session, id string) error {
	i := e.findTask(id)
	if i < 0 {
		return validationf("task %q not found", id)
	}
	t := e.tasks[i]
	if !sess.Admin && t.CreatedBy != sess.Username {
		return permissionf("only admins or the task's creator may delete it")
	}

	e.logHistory("Deleted", t, sess.Username)
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	e.saveTasks()

	if e.taskSheet == nil {
		return nil
	}
	row, err := e.taskSheet.Find(id)
	if err != nil {
		return remote("find task", err)
	}
	if row == 0 {
		return nil
	}
	return remote("delete task", e.taskSheet.Delete(row))
}
