// Package store persists the three local collections as whole-document JSON
// snapshots. Missing or unreadable files are never fatal: the caller's
// default replaces them and is written back, so startup always succeeds.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"taskdesk/pkg/model"
)

const (
	TasksFile   = "tasks.json"
	UsersFile   = "users.json"
	HistoryFile = "task_history.json"
)

// Store reads and writes collection snapshots under a single directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadTasks returns the persisted task collection, or an empty one (persisted
// back) when the file is missing or corrupt.
func (s *Store) LoadTasks() []model.Task {
	tasks := []model.Task{}
	if err := readJSON(s.path(TasksFile), &tasks); err != nil {
		tasks = []model.Task{}
		writeJSON(s.path(TasksFile), tasks)
	}
	return tasks
}

func (s *Store) SaveTasks(tasks []model.Task) error {
	return writeJSON(s.path(TasksFile), tasks)
}

// LoadUsers returns the persisted account collection with the storage
// obfuscation already reversed. A missing or corrupt file yields an empty
// collection, persisted back.
func (s *Store) LoadUsers() map[string]model.User {
	raw := map[string]model.User{}
	if err := readJSON(s.path(UsersFile), &raw); err != nil {
		raw = map[string]model.User{}
		writeJSON(s.path(UsersFile), raw)
	}
	return DecodeUsers(raw)
}

func (s *Store) SaveUsers(users map[string]model.User) error {
	return writeJSON(s.path(UsersFile), EncodeUsers(users))
}

func (s *Store) LoadHistory() []model.HistoryEntry {
	history := []model.HistoryEntry{}
	if err := readJSON(s.path(HistoryFile), &history); err != nil {
		history = []model.HistoryEntry{}
		writeJSON(s.path(HistoryFile), history)
	}
	return history
}

func (s *Store) SaveHistory(history []model.HistoryEntry) error {
	return writeJSON(s.path(HistoryFile), history)
}

func readJSON(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "    ")
	return encoder.Encode(v)
}
