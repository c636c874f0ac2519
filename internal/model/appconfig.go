package model

import "slices"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default editor settings applied to new plans
	DefaultGridSize      float64 `json:"default_grid_size"`
	DefaultMeterSize     float64 `json:"default_meter_size"`
	DefaultWallSize      float64 `json:"default_wall_size"`
	DefaultPartitionSize float64 `json:"default_partition_size"`
	DefaultBindRange     float64 `json:"default_bind_range"`
	DefaultSnap          bool    `json:"default_snap"`
	ContinuousWalls      bool    `json:"continuous_walls"`
	SplitOnBind          bool    `json:"split_on_bind"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentPlans      []string `json:"recent_plans"`
	Theme            string   `json:"theme"`     // "light", "dark", "system"
	LogLevel         string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultGridSize:      defaults.GridSize,
		DefaultMeterSize:     defaults.MeterSize,
		DefaultWallSize:      defaults.WallSize,
		DefaultPartitionSize: defaults.PartitionSize,
		DefaultBindRange:     defaults.BindRange,
		DefaultSnap:          defaults.Snap,
		ContinuousWalls:      defaults.ContinuousWalls,
		SplitOnBind:          defaults.SplitOnBind,
		AutoSaveInterval:     0,
		RecentPlans:          []string{},
		Theme:                "system",
		LogLevel:             "info",
	}
}

// ApplyToSettings copies the default values from AppConfig into an EditorSettings.
// New plans inherit the user's saved defaults this way.
func (c AppConfig) ApplyToSettings(s *EditorSettings) {
	s.GridSize = c.DefaultGridSize
	s.MeterSize = c.DefaultMeterSize
	s.WallSize = c.DefaultWallSize
	s.PartitionSize = c.DefaultPartitionSize
	s.BindRange = c.DefaultBindRange
	s.Snap = c.DefaultSnap
	s.ContinuousWalls = c.ContinuousWalls
	s.SplitOnBind = c.SplitOnBind
}

// SetDefaults is the inverse of ApplyToSettings.
func (c *AppConfig) SetDefaults(s EditorSettings) {
	c.DefaultGridSize = s.GridSize
	c.DefaultMeterSize = s.MeterSize
	c.DefaultWallSize = s.WallSize
	c.DefaultPartitionSize = s.PartitionSize
	c.DefaultBindRange = s.BindRange
	c.DefaultSnap = s.Snap
	c.ContinuousWalls = s.ContinuousWalls
	c.SplitOnBind = s.SplitOnBind
}

// Normalize repairs values a hand-edited config may carry: non-positive
// sizes fall back to DefaultSettings, an unknown theme becomes "system", and
// blank or repeated recent plans are dropped.
func (c *AppConfig) Normalize() {
	d := DefaultSettings()
	positive := func(v *float64, def float64) {
		if !(*v > 0) {
			*v = def
		}
	}
	positive(&c.DefaultGridSize, d.GridSize)
	positive(&c.DefaultMeterSize, d.MeterSize)
	positive(&c.DefaultWallSize, d.WallSize)
	positive(&c.DefaultPartitionSize, d.PartitionSize)
	positive(&c.DefaultBindRange, d.BindRange)

	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = "system"
	}
	if c.AutoSaveInterval < 0 {
		c.AutoSaveInterval = 0
	}

	recent := []string{}
	for _, p := range c.RecentPlans {
		if p != "" && !slices.Contains(recent, p) {
			recent = append(recent, p)
		}
	}
	c.RecentPlans = recent
}

// AddRecentPlan moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentPlan(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentPlans = recent
}
