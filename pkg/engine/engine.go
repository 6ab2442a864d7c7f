// Package engine keeps the local task tracker and the remote tabular store
// convergent, and owns every rule about who may change what. The
// presentation layer calls in through the exported operations and renders
// whatever comes back; nothing here draws.
package engine

import (
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"taskdesk/pkg/model"
	"taskdesk/pkg/store"
)

// Sheet is the remote tabular store surface the engine needs: one named
// worksheet with 1-based row addressing, row 1 being the header. Row indices
// must not be cached by callers; writes-by-key re-resolve through Find.
type Sheet interface {
	Rows() ([][]string, error)
	Find(key string) (int, error)
	Append(cells []string) error
	Update(row int, cells []string) error
	Delete(row int) error
}

// Engine owns the in-memory collections for the lifetime of the process.
// Execution is single-threaded request/response, so there is no locking.
type Engine struct {
	store   *store.Store
	users   map[string]model.User
	tasks   []model.Task
	history []model.HistoryEntry

	loginSheet Sheet
	taskSheet  Sheet

	logger *log.Logger
}

// New loads the local snapshots and returns an engine that is usable
// immediately, remote or not. Corrupt or missing local documents are
// replaced with empty defaults by the store, never reported as fatal.
//
// If logger is nil, a default logger writing to stderr is used.
func New(st *store.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr, "[taskdesk] ", log.LstdFlags)
	}
	return &Engine{
		store:   st,
		users:   st.LoadUsers(),
		tasks:   st.LoadTasks(),
		history: st.LoadHistory(),
		logger:  logger,
	}
}

// SetRemote wires the two remote worksheets. Until this is called the engine
// runs locally: mutations apply and persist, and nothing is pushed.
func (e *Engine) SetRemote(login, tasks Sheet) {
	e.loginSheet = login
	e.taskSheet = tasks
}

// TaskFilter narrows ListTasks. Zero value means everything. Project "All"
// is equivalent to empty, matching the historical UI value.
type TaskFilter struct {
	Project string
	Mine    bool
	Query   string
}

// ListTasks returns the tasks visible through the filter. Reads are not
// permission gated; visibility was always a presentation concern.
func (e *Engine) ListTasks(sess model.Session, f TaskFilter) []model.Task {
	var out []model.Task
	query := strings.ToLower(f.Query)
	for _, t := range e.tasks {
		if f.Project != "" && f.Project != "All" && t.ProjectName != f.Project {
			continue
		}
		if f.Mine && t.Assignee != sess.FullName {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Assignee), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SearchTasks is a free-text search over title and assignee.
func (e *Engine) SearchTasks(sess model.Session, query string) []model.Task {
	return e.ListTasks(sess, TaskFilter{Query: query})
}

// GetTask looks a task up by id.
func (e *Engine) GetTask(id string) (model.Task, bool) {
	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Projects returns the distinct project names, sorted.
func (e *Engine) Projects() []string {
	seen := map[string]bool{}
	for _, t := range e.tasks {
		seen[t.ProjectName] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DueSoon returns tasks that are not Done and whose deadline falls within
// the next 24 hours. Tasks with unparseable deadlines are skipped; the pull
// pass normalizes those anyway.
func (e *Engine) DueSoon(now time.Time) []model.Task {
	var out []model.Task
	for _, t := range e.tasks {
		if t.Status == model.StatusDone {
			continue
		}
		deadline, err := model.ParseTime(t.Deadline)
		if err != nil {
			continue
		}
		diff := deadline.Sub(now)
		if diff > 0 && diff <= 24*time.Hour {
			out = append(out, t)
		}
	}
	return out
}

// Progress returns how many tasks are Done out of the total.
func (e *Engine) Progress() (done, total int) {
	for _, t := range e.tasks {
		if t.Status == model.StatusDone {
			done++
		}
	}
	return done, len(e.tasks)
}

func (e *Engine) findTask(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// fullNames returns the set of registered full names, used to validate
// assignees at write time.
func (e *Engine) fullNames() map[string]bool {
	names := make(map[string]bool, len(e.users))
	for _, u := range e.users {
		names[u.FullName] = true
	}
	return names
}

func (e *Engine) saveTasks() {
	if err := e.store.SaveTasks(e.tasks); err != nil {
		e.logger.Printf("WARNING: failed to save tasks: %v", err)
	}
}

func (e *Engine) saveUsers() {
	if err := e.store.SaveUsers(e.users); err != nil {
		e.logger.Printf("WARNING: failed to save users: %v", err)
	}
}
