package model

import (
	"strings"
	"time"
)

// TaskHeader is the canonical header row of the task sheet. Column order is
// fixed; every row codec below indexes against it.
var TaskHeader = []string{
	"ID", "Title", "Description", "Assignee", "Project Name",
	"Status", "Deadline", "Notes", "Created At", "Created By",
	"Last Modified By", "Last Modified At",
}

// LoginHeader is the canonical header row of the login sheet. These cells
// are stored in plaintext, unlike the obfuscated local users file.
var LoginHeader = []string{"Username", "Password", "Full Name", "Role"}

// TaskToRow flattens a task into the sheet's column order.
func TaskToRow(t Task) []string {
	return []string{
		t.ID, t.Title, t.Description, t.Assignee, t.ProjectName,
		t.Status, t.Deadline, t.Notes, t.CreatedAt, t.CreatedBy,
		t.LastModifiedBy, t.LastModifiedAt,
	}
}

// TaskFromRow parses one data row into a task, correcting malformed values
// rather than rejecting them: unknown statuses reset to Todo, bad timestamps
// reset to their defaults relative to now. Rows with eleven cells are the
// legacy layout without the Created By column; those get the System
// sentinel. Returns ok=false for rows too short to carry a task or with a
// blank id.
func TaskFromRow(row []string, now time.Time) (Task, bool) {
	if len(row) < len(TaskHeader)-1 || strings.TrimSpace(row[0]) == "" {
		return Task{}, false
	}

	var t Task
	t.ID = row[0]
	t.Title = row[1]
	t.Description = row[2]
	t.Assignee = row[3]
	t.ProjectName = row[4]
	t.Status = NormalizeStatus(row[5])
	t.Deadline = row[6]
	t.Notes = row[7]
	t.CreatedAt = row[8]
	if len(row) >= len(TaskHeader) {
		t.CreatedBy = row[9]
		t.LastModifiedBy = row[10]
		t.LastModifiedAt = row[11]
	} else {
		// Legacy row: columns 9 and 10 are the last-modified pair.
		t.LastModifiedBy = row[9]
		t.LastModifiedAt = row[10]
	}
	if t.CreatedBy == "" {
		t.CreatedBy = SystemUser
	}

	t.Deadline = normalizeTimestamp(t.Deadline, DefaultDeadline(now))
	t.CreatedAt = normalizeTimestamp(t.CreatedAt, FormatTime(now))
	t.LastModifiedAt = normalizeTimestamp(t.LastModifiedAt, FormatTime(now))
	return t, true
}

// UserToRow flattens an account into the login sheet's column order.
func UserToRow(username string, u User) []string {
	return []string{username, u.Password, u.FullName, u.Role}
}

// UserFromRow parses one login sheet row. Unknown roles reset to user.
// Returns ok=false for rows too short or with a blank username.
func UserFromRow(row []string) (string, User, bool) {
	if len(row) < len(LoginHeader) || strings.TrimSpace(row[0]) == "" {
		return "", User{}, false
	}
	u := User{
		Password: row[1],
		FullName: row[2],
		Role:     NormalizeRole(row[3]),
	}
	return row[0], u, true
}
