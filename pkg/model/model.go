package model

const (
	StatusTodo       = "Todo"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SystemUser is the sentinel actor recorded on rows that predate the
// created-by column or were seeded directly into the sheet.
const SystemUser = "System"

// Task is one tracked unit of work. All timestamps are stored as strings in
// the fixed TimeLayout format, both on disk and in the sheet, so records
// round-trip byte for byte.
type Task struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Assignee       string `json:"assignee"`
	ProjectName    string `json:"project_name"`
	Status         string `json:"status"`
	Deadline       string `json:"deadline"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"created_at"`
	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
	LastModifiedAt string `json:"last_modified_at"`
}

// User holds the account fields stored per username. The username itself is
// the map key in the users collection.
type User struct {
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// HistoryEntry is one immutable audit record. Title is a snapshot taken at
// the time of the action, not a reference.
type HistoryEntry struct {
	Action    string `json:"action"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// Session identifies an authenticated actor. It is passed explicitly into
// every gated engine call; there is no ambient current-user state.
type Session struct {
	Username string
	FullName string
	Admin    bool
}

// NormalizeStatus maps anything outside the three known statuses to Todo.
func NormalizeStatus(s string) string {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return s
	}
	return StatusTodo
}

// NormalizeRole maps anything outside user/admin to user.
func NormalizeRole(r string) string {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
