package engine

import (
	"reflect"
	"testing"

	"taskdesk/pkg/model"
)

func TestCreateTaskValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	sess := mustRegister(t, e, "alice", "pw1", "Alice A", "user")

	cases := []struct {
		name string
		in   TaskInput
	}{
		{"missing title", TaskInput{Assignee: "Alice A", ProjectName: "P"}},
		{"missing assignee", TaskInput{Title: "T", ProjectName: "P"}},
		{"missing project", TaskInput{Title: "T", Assignee: "Alice A"}},
		{"unknown assignee", TaskInput{Title: "T", Assignee: "Nobody N", ProjectName: "P"}},
		{"bad deadline", TaskInput{Title: "T", Assignee: "Alice A", ProjectName: "P", Deadline: "soon"}},
	}
	for _, tc := range cases {
		if _, err := e.CreateTask(sess, tc.in); !isValidation(err) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
		}
	}
	if len(e.tasks) != 0 {
		t.Errorf("rejected creates left %d tasks behind", len(e.tasks))
	}
	if len(e.history) != 0 {
		t.Errorf("rejected creates left %d history entries behind", len(e.history))
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	e, _, _ := newTestEngine(t)
	sess := mustRegister(t, e, "alice", "pw1", "Alice A", "user")

	task, err := e.CreateTask(sess, TaskInput{
		Title:       "T",
		Assignee:    "Alice A",
		ProjectName: "P",
		Status:      "Someday",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Errorf("Status = %q, want %q", task.Status, model.StatusTodo)
	}
	if task.CreatedBy != "alice" || task.LastModifiedBy != "alice" {
		t.Errorf("audit fields = %q/%q, want alice", task.CreatedBy, task.LastModifiedBy)
	}
	if _, err := model.ParseTime(task.Deadline); err != nil {
		t.Errorf("defaulted deadline %q does not parse: %v", task.Deadline, err)
	}
	if task.ID == "" {
		t.Error("task id not generated")
	}
}

// matrixEngine builds the four-actor setup the permission matrix runs over:
// an admin, the task's creator, its assignee, and an unrelated user.
func matrixEngine(t *testing.T) (e *Engine, taskID string, admin, creator, assignee, unrelated model.Session) {
	t.Helper()
	e, _, _ = newTestEngine(t)
	admin = mustRegister(t, e, "root", "pw", "Root R", "admin")
	creator = mustRegister(t, e, "carol", "pw", "Carol C", "user")
	assignee = mustRegister(t, e, "dave", "pw", "Dave D", "user")
	unrelated = mustRegister(t, e, "eve", "pw", "Eve E", "user")

	task, err := e.CreateTask(creator, TaskInput{
		Title:       "Matrix task",
		Assignee:    "Dave D",
		ProjectName: "Proj",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return e, task.ID, admin, creator, assignee, unrelated
}

func TestPermissionMatrix(t *testing.T) {
	type op int
	const (
		fullEdit op = iota
		statusEdit
		del
	)

	cases := []struct {
		name    string
		actor   string // resolved inside, the engine is rebuilt per case
		op      op
		allowed bool
	}{
		{"admin full edit", "admin", fullEdit, true},
		{"admin status edit", "admin", statusEdit, true},
		{"admin delete", "admin", del, true},
		{"creator full edit", "creator", fullEdit, true},
		{"creator status edit", "creator", statusEdit, true},
		{"creator delete", "creator", del, true},
		{"assignee full edit", "assignee", fullEdit, false},
		{"assignee status edit", "assignee", statusEdit, true},
		{"assignee delete", "assignee", del, false},
		{"unrelated full edit", "unrelated", fullEdit, false},
		{"unrelated status edit", "unrelated", statusEdit, false},
		{"unrelated delete", "unrelated", del, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, id, admin, creator, assignee, unrelated := matrixEngine(t)
			sessions := map[string]model.Session{
				"admin": admin, "creator": creator, "assignee": assignee, "unrelated": unrelated,
			}
			sess := sessions[tc.actor]
			before, _ := e.GetTask(id)

			var err error
			switch tc.op {
			case fullEdit:
				_, err = e.UpdateTask(sess, id, TaskInput{
					Title:       "Edited",
					Description: "changed",
					Assignee:    "Dave D",
					ProjectName: "Proj",
					Status:      model.StatusInProgress,
					Deadline:    before.Deadline,
				})
			case statusEdit:
				_, err = e.UpdateTaskStatus(sess, id, model.StatusDone)
			case del:
				err = e.DeleteTask(sess, id)
			}

			if tc.allowed {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !isPermission(err) {
				t.Fatalf("expected PermissionError, got %v", err)
			}
			after, ok := e.GetTask(id)
			if !ok {
				t.Fatal("task disappeared after denied operation")
			}
			if !reflect.DeepEqual(before, after) {
				t.Errorf("denied operation changed the record:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestStatusOnlyEditPreservesFields(t *testing.T) {
	e, id, _, _, assignee, _ := matrixEngine(t)
	before, _ := e.GetTask(id)

	after, err := e.UpdateTaskStatus(assignee, id, model.StatusDone)
	if err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if after.Status != model.StatusDone {
		t.Errorf("Status = %q, want %q", after.Status, model.StatusDone)
	}
	if after.LastModifiedBy != "dave" {
		t.Errorf("LastModifiedBy = %q, want dave", after.LastModifiedBy)
	}

	// Everything except status and the audit pair is verbatim.
	before.Status = after.Status
	before.LastModifiedBy = after.LastModifiedBy
	before.LastModifiedAt = after.LastModifiedAt
	if !reflect.DeepEqual(before, after) {
		t.Errorf("status-only edit touched other fields:\nbefore %+v\nafter  %+v", before, after)
	}

	// Done is not terminal: reopening is allowed.
	if _, err := e.UpdateTaskStatus(assignee, id, model.StatusTodo); err != nil {
		t.Errorf("reopening a Done task: %v", err)
	}
}

func TestDeleteTaskRemovesRemoteRow(t *testing.T) {
	e, _, tasks := newTestEngine(t)
	sess := mustRegister(t, e, "alice", "pw1", "Alice A", "user")

	task, err := e.CreateTask(sess, TaskInput{Title: "T", Assignee: "Alice A", ProjectName: "P"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := e.DeleteTask(sess, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if tasks.count(task.ID) != 0 {
		t.Error("remote row not deleted")
	}
	if _, ok := e.GetTask(task.ID); ok {
		t.Error("local task not deleted")
	}
}

// TestEndToEndScenario walks the registration-to-deletion flow end to end.
func TestEndToEndScenario(t *testing.T) {
	e, _, _ := newTestEngine(t)
	admin := mustRegister(t, e, "root", "pw", "Root R", "admin")

	if err := e.Register("alice", "pw1", "Alice A", "user"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	alice, err := e.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("login alice: %v", err)
	}
	if _, err := e.Login("alice", "wrong"); err == nil {
		t.Fatal("login with wrong password succeeded")
	}

	task, err := e.CreateTask(alice, TaskInput{
		Title:       "Write report",
		Assignee:    "Alice A",
		ProjectName: "Reports",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %q, want alice", task.CreatedBy)
	}

	bob := mustRegister(t, e, "bob", "pw2", "Bob B", "user")
	if err := e.DeleteTask(bob, task.ID); !isPermission(err) {
		t.Fatalf("bob delete: got %v, want PermissionError", err)
	}
	if err := e.DeleteTask(alice, task.ID); err != nil {
		t.Fatalf("alice delete: %v", err)
	}

	history, err := e.ListHistory(admin)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var created, deleted int
	for _, h := range history {
		if h.TaskID != task.ID {
			continue
		}
		switch h.Action {
		case "Created":
			created++
		case "Deleted":
			deleted++
		}
	}
	if created != 1 || deleted != 1 {
		t.Errorf("history for task: Created=%d Deleted=%d, want 1/1", created, deleted)
	}
}

func TestListTasksFilters(t *testing.T) {
	e, _, _ := newTestEngine(t)
	alice := mustRegister(t, e, "alice", "pw", "Alice A", "user")
	mustRegister(t, e, "bob", "pw", "Bob B", "user")

	mk := func(title, assignee, project string) {
		t.Helper()
		if _, err := e.CreateTask(alice, TaskInput{Title: title, Assignee: assignee, ProjectName: project}); err != nil {
			t.Fatalf("CreateTask(%s): %v", title, err)
		}
	}
	mk("Report", "Alice A", "Reports")
	mk("Deploy", "Bob B", "Infra")
	mk("Review", "Alice A", "Infra")

	if got := e.ListTasks(alice, TaskFilter{}); len(got) != 3 {
		t.Errorf("unfiltered: %d tasks, want 3", len(got))
	}
	if got := e.ListTasks(alice, TaskFilter{Project: "Infra"}); len(got) != 2 {
		t.Errorf("project filter: %d tasks, want 2", len(got))
	}
	if got := e.ListTasks(alice, TaskFilter{Project: "All"}); len(got) != 3 {
		t.Errorf("project All: %d tasks, want 3", len(got))
	}
	if got := e.ListTasks(alice, TaskFilter{Mine: true}); len(got) != 2 {
		t.Errorf("mine filter: %d tasks, want 2", len(got))
	}
	if got := e.SearchTasks(alice, "dep"); len(got) != 1 || got[0].Title != "Deploy" {
		t.Errorf("search: %+v", got)
	}
	if got := e.SearchTasks(alice, "bob b"); len(got) != 1 {
		t.Errorf("search by assignee: %d tasks, want 1", len(got))
	}
}
