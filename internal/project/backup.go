package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/dashgrid/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version    string            `json:"version"`
	CreatedAt  string            `json:"created_at"`
	Config     model.AppConfig   `json:"config"`
	Dashboards []model.Dashboard `json:"dashboards"`
}

// ExportAllData writes the config and the given dashboards to a single JSON
// file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, dashboards ...model.Dashboard) error {
	if dashboards == nil {
		dashboards = []model.Dashboard{}
	}
	backup := BackupData{
		Version:    backupVersion,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Config:     config,
		Dashboards: dashboards,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentDashboards == nil {
		backup.Config.RecentDashboards = []string{}
	}
	if backup.Dashboards == nil {
		backup.Dashboards = []model.Dashboard{}
	}
	return backup, nil
}
