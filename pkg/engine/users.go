package engine

import (
	"regexp"
	"sort"

	"taskdesk/pkg/config"
	"taskdesk/pkg/model"
)

var usernameRE = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Register creates an account. Self-service: no session required. The new
// account is persisted locally first, then appended to the login sheet; a
// remote failure leaves the local account in place.
func (e *Engine) Register(username, password, fullName, role string) error {
	if username == "" || password == "" || fullName == "" {
		return validationf("username, password and full name are all required")
	}
	if !usernameRE.MatchString(username) {
		return validationf("username may only contain lowercase letters, digits, underscores and hyphens")
	}
	if _, exists := e.users[username]; exists {
		return validationf("username %q is already taken", username)
	}

	u := model.User{
		Password: password,
		Role:     model.NormalizeRole(role),
		FullName: fullName,
	}
	e.users[username] = u
	e.saveUsers()

	if e.loginSheet == nil {
		return nil
	}
	return remote("append user", e.loginSheet.Append(model.UserToRow(username, u)))
}

// Login validates credentials by exact string match and returns the session
// every gated operation takes. Passwords are compared verbatim; the storage
// encoding is reversed at load time and is not a hash.
func (e *Engine) Login(username, password string) (model.Session, error) {
	u, ok := e.users[username]
	if !ok || u.Password != password {
		return model.Session{}, validationf("invalid username or password")
	}
	return model.Session{
		Username: username,
		FullName: u.FullName,
		Admin:    u.Role == model.RoleAdmin,
	}, nil
}

// UserRecord is the admin-facing view of an account. Passwords stay out of
// listings.
type UserRecord struct {
	Username string
	FullName string
	Role     string
}

// ListUsers returns all accounts, sorted by username. Admin only.
func (e *Engine) ListUsers(sess model.Session) ([]UserRecord, error) {
	if !sess.Admin {
		return nil, permissionf("only admins may manage users")
	}
	out := make([]UserRecord, 0, len(e.users))
	for username, u := range e.users {
		out = append(out, UserRecord{Username: username, FullName: u.FullName, Role: u.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// DeleteUser removes an account from both stores. Admin only, and never the
// account behind the active session.
func (e *Engine) DeleteUser(sess model.Session, username string) error {
	if !sess.Admin {
		return permissionf("only admins may delete users")
	}
	if username == sess.Username {
		return permissionf("cannot delete the account that is currently logged in")
	}
	if _, exists := e.users[username]; !exists {
		return validationf("user %q not found", username)
	}

	delete(e.users, username)
	e.saveUsers()

	if e.loginSheet == nil {
		return nil
	}
	row, err := e.loginSheet.Find(username)
	if err != nil {
		return remote("find user", err)
	}
	if row == 0 {
		// Already gone remotely; nothing to do.
		return nil
	}
	return remote("delete user", e.loginSheet.Delete(row))
}

// Reconfigure validates and persists a new remote store configuration.
// Admin gated once any account exists; on a fresh install it is open, the
// same way configuration used to precede the first login. The caller is
// responsible for reconnecting the remote and running a fresh Sync.
func (e *Engine) Reconfigure(sess model.Session, cfg *config.Config, path string) error {
	if len(e.users) > 0 && !sess.Admin {
		return permissionf("only admins may reconfigure the remote store")
	}
	if cfg.TaskSpreadsheetID == "" || cfg.LoginSpreadsheetID == "" {
		return validationf("both the task and login spreadsheet ids are required")
	}
	if !cfg.Complete() {
		return validationf("credentials file %q not found", cfg.CredentialsFile)
	}
	return config.Save(path, cfg)
}
