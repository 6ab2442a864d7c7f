// Package config holds the remote store configuration document. The JSON
// key names match the config.json files already written by existing
// installations, so they stay loadable.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFile = "config.json"

const (
	DefaultTaskSheetName   = "Phân công"
	DefaultLoginSheetName  = "Thông tin đăng nhập"
	DefaultCredentialsFile = "taskmanager-credentials.json"
)

type Config struct {
	TaskSpreadsheetID  string `json:"TASK_SPREADSHEET_ID"`
	LoginSpreadsheetID string `json:"LOGIN_SPREADSHEET_ID"`
	TaskSheetName      string `json:"TASK_SHEET_NAME"`
	LoginSheetName     string `json:"LOGIN_SHEET_NAME"`
	CredentialsFile    string `json:"CREDENTIALS_FILE"`
}

// Default returns the config used before anything has been saved.
func Default() *Config {
	return &Config{
		TaskSheetName:   DefaultTaskSheetName,
		LoginSheetName:  DefaultLoginSheetName,
		CredentialsFile: DefaultCredentialsFile,
	}
}

// Complete reports whether the config is sufficient to reach the remote
// store: both spreadsheet ids set and the credentials file present.
func (c *Config) Complete() bool {
	if c.TaskSpreadsheetID == "" || c.LoginSpreadsheetID == "" {
		return false
	}
	_, err := os.Stat(c.CredentialsFile)
	return err == nil
}

// Load reads the config document at path. A missing or unreadable file
// yields the defaults; empty sheet and credentials fields are backfilled
// with their defaults.
func Load(path string) *Config {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return Default()
	}
	if cfg.TaskSheetName == "" {
		cfg.TaskSheetName = DefaultTaskSheetName
	}
	if cfg.LoginSheetName == "" {
		cfg.LoginSheetName = DefaultLoginSheetName
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = DefaultCredentialsFile
	}
	return cfg
}

// Save writes the config document to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
