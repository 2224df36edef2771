package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new dashboards and screens
	DefaultColumns  int      `json:"default_columns" toml:"default_columns"`
	DefaultRows     int      `json:"default_rows" toml:"default_rows"`
	DefaultStrategy Strategy `json:"default_strategy" toml:"default_strategy"`
	DefaultWidth    int      `json:"default_width" toml:"default_width"`
	DefaultHeight   int      `json:"default_height" toml:"default_height"`

	// Export preferences
	PNGCellSize int  `json:"png_cell_size" toml:"png_cell_size"` // pixels per grid cell
	ShareCode   bool `json:"share_code" toml:"share_code"`       // embed a QR code in PDF exports

	RecentDashboards []string `json:"recent_dashboards" toml:"recent_dashboards"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultResolution and DefaultLayoutSettings.
func DefaultAppConfig() AppConfig {
	res := DefaultResolution()
	layout := DefaultLayoutSettings()
	return AppConfig{
		DefaultColumns:   res.Columns,
		DefaultRows:      res.Rows,
		DefaultStrategy:  layout.Strategy,
		DefaultWidth:     layout.DefaultWidth,
		DefaultHeight:    layout.DefaultHeight,
		PNGCellSize:      48,
		ShareCode:        true,
		RecentDashboards: []string{},
	}
}

// Resolution returns the configured default grid.
func (c AppConfig) Resolution() Resolution {
	return Resolution{Columns: c.DefaultColumns, Rows: c.DefaultRows}
}

// ApplyToSettings copies the default values from AppConfig into a LayoutSettings.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if c.DefaultStrategy != "" {
		s.Strategy = c.DefaultStrategy
	}
	if c.DefaultWidth > 0 {
		s.DefaultWidth = c.DefaultWidth
	}
	if c.DefaultHeight > 0 {
		s.DefaultHeight = c.DefaultHeight
	}
}
