package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/dashgrid/internal/model"
)

// Format is a dashboard file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", model.ErrUnknownFormat, filepath.Ext(path))
}

// SaveDashboard writes the dashboard to path, encoded by its extension.
func SaveDashboard(path string, d model.Dashboard) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(d)
	default:
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dashboard directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	return nil
}

// LoadDashboard reads a dashboard file. Screens without a resolution get the
// default one and nil item lists become empty.
func LoadDashboard(path string) (model.Dashboard, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return model.Dashboard{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("failed to read dashboard: %w", err)
	}
	var d model.Dashboard
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("failed to parse dashboard %s: %w", path, err)
	}
	for i := range d.Screens {
		s := &d.Screens[i]
		if !s.Resolution.Valid() {
			s.Resolution = model.DefaultResolution()
		}
		if s.Items == nil {
			s.Items = []model.GridItem{}
		}
		if err := s.Validate(); err != nil {
			return model.Dashboard{}, fmt.Errorf("invalid dashboard %s: %w", path, err)
		}
	}
	return d, nil
}
