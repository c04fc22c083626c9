// Package domain holds the plugin settings model
package domain

import (
	"slices"

	entdomain "bulkdate/internal/services/entities/domain"
)

// Option keys in bd_options
const (
	OptHistoryEnabled   = "history_enabled"
	OptHistoryRetention = "history_retention"
	OptTabs             = "tabs"
)

// Builtin tabs
const (
	TabPosts    = "posts"
	TabPages    = "pages"
	TabComments = "comments"
)

// DefaultRetention applies when the stored value is missing or invalid
const DefaultRetention = 30

// Retentions are the only accepted retention periods in days
var Retentions = []int{7, 14, 30, 60}

// Settings is the process wide plugin configuration, loaded once per request
type Settings struct {
	HistoryEnabled bool            `json:"history_enabled"        example:"true"`
	RetentionDays  int             `json:"history_retention_days" example:"30"`
	Tabs           map[string]bool `json:"tabs"`
}

// Defaults is what Activate seeds
func Defaults() Settings {
	return Settings{
		HistoryEnabled: true,
		RetentionDays:  DefaultRetention,
		Tabs:           DefaultTabs(),
	}
}

// DefaultTabs enables the builtin tabs
func DefaultTabs() map[string]bool {
	return map[string]bool{TabPosts: true, TabPages: true, TabComments: true}
}

// TabEnabled reports whether tab is on; tabs never toggled are on
func (s Settings) TabEnabled(tab string) bool {
	on, ok := s.Tabs[entdomain.SanitizeKey(tab)]
	return !ok || on
}

// NormalizeRetention maps anything outside Retentions to the default
func NormalizeRetention(days int) int {
	if slices.Contains(Retentions, days) {
		return days
	}
	return DefaultRetention
}

// UpdateInput changes the history settings
type UpdateInput struct {
	HistoryEnabled *bool `json:"history_enabled"        example:"true"`
	RetentionDays  int   `json:"history_retention_days" validate:"omitempty,oneof=7 14 30 60" example:"14"`
}

// ToggleInput switches a tab on or off
type ToggleInput struct {
	Tab     string `json:"tab"     validate:"required,max=64" example:"posts"`
	Enabled bool   `json:"enabled" example:"false"`
}

// ToggleResult echoes the new tab state with a one line message
type ToggleResult struct {
	Tab     string `json:"tab"     example:"posts"`
	Enabled bool   `json:"enabled" example:"true"`
	Message string `json:"message" example:"The Posts tab has been enabled."`
}
