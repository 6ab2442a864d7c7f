package engine

import "taskdesk/pkg/model"

// logHistory appends one denormalized audit entry and persists the ledger.
// The ledger is append-only; nothing ever mutates or prunes it.
func (e *Engine) logHistory(action string, t model.Task, actor string) {
	e.history = append(e.history, model.HistoryEntry{
		Action:    action,
		TaskID:    t.ID,
		Title:     t.Title,
		User:      actor,
		Timestamp: model.Now(),
	})
	if err := e.store.SaveHistory(e.history); err != nil {
		e.logger.Printf("WARNING: failed to save history: %v", err)
	}
}

// ListHistory returns the full ledger. Admin only.
func (e *Engine) ListHistory(sess model.Session) ([]model.HistoryEntry, error) {
	if !sess.Admin {
		return nil, permissionf("only admins may view the history")
	}
	out := make([]model.HistoryEntry, len(e.history))
	copy(out, e.history)
	return out, nil
}
