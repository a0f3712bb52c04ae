package config

import (
	_ "embed"

	"github.com/minutegames/gauntlet/internal/session"
)

//go:embed defaults/gauntlet.yaml
var defaultGauntletYAML []byte

// DefaultAppConfig returns the hardcoded fallback configuration, used when
// even the embedded YAML fails to parse.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Session: SessionConfig{
			Rounds:           5,
			CountdownSeconds: 3,
			Aggregation:      string(session.AggregateSumNormalized),
		},
		Grades: session.DefaultGradeScale(),
		Modules: map[string]ModuleConfig{
			"memory":    {Duration: 45},
			"reflex":    {Duration: 30},
			"quickmath": {Duration: 40},
			"sorter":    {Duration: 30},
		},
	}
}
