package engine

import (
	"reflect"
	"testing"
	"time"

	"taskdesk/pkg/model"
	"taskdesk/pkg/store"
)

func remoteTask(id, title string) model.Task {
	now := model.Now()
	return model.Task{
		ID:             id,
		Title:          title,
		Description:    "desc",
		Assignee:       "Alice A",
		ProjectName:    "Proj",
		Status:         model.StatusTodo,
		Deadline:       model.DefaultDeadline(time.Now()),
		CreatedAt:      now,
		CreatedBy:      "alice",
		LastModifiedBy: "alice",
		LastModifiedAt: now,
	}
}

func TestPullInsertsRemoteRecords(t *testing.T) {
	e, login, tasks := newTestEngine(t)
	login.rows = append(login.rows, []string{"alice", "pw1", "Alice A", "admin"})
	tasks.rows = append(tasks.rows, model.TaskToRow(remoteTask("t-1", "From remote")))

	if err := e.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := e.Login("alice", "pw1"); err != nil {
		t.Errorf("remote-seeded user cannot log in: %v", err)
	}
	if _, ok := e.GetTask("t-1"); !ok {
		t.Error("remote-seeded task missing locally")
	}
}

func TestPullIdempotent(t *testing.T) {
	e, login, tasks := newTestEngine(t)
	login.rows = append(login.rows, []string{"alice", "pw1", "Alice A", "admin"})
	tasks.rows = append(tasks.rows,
		model.TaskToRow(remoteTask("t-1", "One")),
		model.TaskToRow(remoteTask("t-2", "Two")))

	if err := e.Sync(); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	first := append([]model.Task(nil), e.tasks...)

	if err := e.Sync(); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if !reflect.DeepEqual(first, e.tasks) {
		t.Errorf("second pull changed the collection:\nfirst  %+v\nsecond %+v", first, e.tasks)
	}
	if tasks.count("t-1") != 1 || tasks.count("t-2") != 1 {
		t.Error("push duplicated remote rows")
	}
}

func TestPullWholeRecordReplacement(t *testing.T) {
	e, _, tasks := newTestEngine(t)

	local := remoteTask("t-1", "Local title")
	local.Notes = "local-only note that has not been pushed"
	e.tasks = append(e.tasks, local)

	rem := remoteTask("t-1", "Remote title") // differs in title only
	tasks.rows = append(tasks.rows, model.TaskToRow(rem))

	if err := e.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got, _ := e.GetTask("t-1")
	if !reflect.DeepEqual(got, rem) {
		t.Errorf("expected whole-record replacement:\n got %+v\nwant %+v", got, rem)
	}
	if got.Notes != "" {
		t.Error("local-only note survived; merge policy is whole-record replacement")
	}
}

func TestPushNewTaskConverges(t *testing.T) {
	e, _, tasks := newTestEngine(t)
	admin := mustRegister(t, e, "root", "pw", "Root R", "admin")

	created, err := e.CreateTask(admin, TaskInput{
		Title:       "Local only",
		Assignee:    "Root R",
		ProjectName: "Proj",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if tasks.count(created.ID) != 1 {
		t.Fatalf("expected exactly one appended row, got %d", tasks.count(created.ID))
	}

	// Subsequent cycles match by id: no duplication, no drift.
	for i := 0; i < 2; i++ {
		if err := e.Sync(); err != nil {
			t.Fatalf("Sync %d: %v", i, err)
		}
	}
	if tasks.count(created.ID) != 1 {
		t.Errorf("task duplicated after sync: %d rows", tasks.count(created.ID))
	}
	got, ok := e.GetTask(created.ID)
	if !ok || !reflect.DeepEqual(got, created) {
		t.Errorf("task drifted after sync:\n got %+v\nwant %+v", got, created)
	}
}

func TestEmptySheetsGetHeaders(t *testing.T) {
	e, login, tasks := newTestEngine(t)
	login.rows = nil
	tasks.rows = nil

	mustRegister(t, e, "root", "pw", "Root R", "admin")
	login.rows = nil // registration appended without a header; start clean

	if err := e.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(login.rows) == 0 || !reflect.DeepEqual(login.rows[0], model.LoginHeader) {
		t.Errorf("login sheet header = %v, want %v", login.rows, model.LoginHeader)
	}
	if len(tasks.rows) == 0 || !reflect.DeepEqual(tasks.rows[0], model.TaskHeader) {
		t.Errorf("task sheet header = %v, want %v", tasks.rows, model.TaskHeader)
	}
	if login.count("root") != 1 {
		t.Error("local account was not pushed after the header write")
	}
}

func TestPullDefaultsMalformedCells(t *testing.T) {
	e, _, tasks := newTestEngine(t)
	now := time.Now()
	tasks.rows = append(tasks.rows, []string{
		"t-bad", "Title", "", "Alice A", "Proj",
		"Someday", "tomorrow-ish", "", "", "", "", "",
	})

	if err := e.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got, ok := e.GetTask("t-bad")
	if !ok {
		t.Fatal("malformed row was dropped instead of corrected")
	}
	if got.Status != model.StatusTodo {
		t.Errorf("Status = %q, want %q", got.Status, model.StatusTodo)
	}
	deadline, err := model.ParseTime(got.Deadline)
	if err != nil {
		t.Fatalf("corrected deadline %q does not parse: %v", got.Deadline, err)
	}
	if deadline.Before(now.Add(-time.Minute)) || deadline.After(now.Add(8*24*time.Hour)) {
		t.Errorf("corrected deadline %v not within [now, now+7d]", deadline)
	}
	if got.CreatedBy != model.SystemUser {
		t.Errorf("CreatedBy = %q, want %q", got.CreatedBy, model.SystemUser)
	}
}

func TestRemoteFailureKeepsLocalMutation(t *testing.T) {
	e, _, tasks := newTestEngine(t)
	admin := mustRegister(t, e, "root", "pw", "Root R", "admin")
	tasks.failFind = true

	created, err := e.CreateTask(admin, TaskInput{
		Title:       "Kept locally",
		Assignee:    "Root R",
		ProjectName: "Proj",
	})
	if err == nil {
		t.Fatal("expected a RemoteError")
	}
	if !IsRemote(err) {
		t.Fatalf("got %v, want RemoteError", err)
	}
	if _, ok := e.GetTask(created.ID); !ok {
		t.Error("local mutation was rolled back on remote failure")
	}

	// Recovery: the next sync is the retry mechanism.
	tasks.failFind = false
	if err := e.Sync(); err != nil {
		t.Fatalf("Sync after recovery: %v", err)
	}
	if tasks.count(created.ID) != 1 {
		t.Errorf("task not pushed after recovery: %d rows", tasks.count(created.ID))
	}
}

func TestUserPullFailureStillSyncsTasks(t *testing.T) {
	e, login, tasks := newTestEngine(t)
	login.failRows = true
	tasks.rows = append(tasks.rows, model.TaskToRow(remoteTask("t-1", "From remote")))

	err := e.Sync()
	if err == nil {
		t.Fatal("users pass failure was not reported")
	}
	if !IsRemote(err) {
		t.Errorf("got %v, want RemoteError", err)
	}
	if _, ok := e.GetTask("t-1"); !ok {
		t.Error("task pass did not run after the users pass failed")
	}
	if tasks.count("t-1") != 1 {
		t.Errorf("task rows after sync: %d, want 1", tasks.count("t-1"))
	}
}

func TestSyncWithoutRemote(t *testing.T) {
	e := New(store.New(t.TempDir()), nil)
	if err := e.Sync(); err == nil {
		t.Error("Sync without a configured remote should fail")
	}
}
