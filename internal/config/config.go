// Package config provides YAML-based configuration for the gauntlet
// platform: session shape, grade thresholds, and per-module round lengths.
package config

import (
	"fmt"

	"github.com/minutegames/gauntlet/internal/session"
)

// AppConfig is the top-level configuration document.
type AppConfig struct {
	Session SessionConfig           `yaml:"session"`
	Grades  session.GradeScale      `yaml:"grades"`
	Modules map[string]ModuleConfig `yaml:"modules"`
}

// SessionConfig shapes one session run.
type SessionConfig struct {
	// Rounds is the total round count for a session.
	Rounds int `yaml:"rounds"`

	// Sequence is the ordered list of module IDs to play. When shorter
	// than Rounds it is cycled; when empty the registry order is used.
	Sequence []string `yaml:"sequence"`

	// CountdownSeconds is the pre-round countdown length.
	CountdownSeconds int `yaml:"countdown_seconds"`

	// Aggregation is the scoring policy: sum_normalized or raw_ratio.
	Aggregation string `yaml:"aggregation"`
}

// ModuleConfig overrides per-module settings.
type ModuleConfig struct {
	// Duration replaces the module's default round length, in seconds.
	Duration int `yaml:"duration"`
}

// Validate reports configuration errors that must stop a session from
// ever starting.
func (c AppConfig) Validate() error {
	if c.Session.Rounds <= 0 {
		return fmt.Errorf("config: session.rounds must be positive, got %d", c.Session.Rounds)
	}
	if c.Session.CountdownSeconds < 0 {
		return fmt.Errorf("config: session.countdown_seconds must not be negative")
	}
	switch session.Aggregation(c.Session.Aggregation) {
	case session.AggregateSumNormalized, session.AggregateRawRatio, "":
	default:
		return fmt.Errorf("config: unknown aggregation policy %q", c.Session.Aggregation)
	}
	for id, m := range c.Modules {
		if m.Duration < 0 {
			return fmt.Errorf("config: module %q duration must not be negative", id)
		}
	}
	return nil
}

// RoundSequence expands the configured sequence to the full round count,
// cycling when the sequence is shorter. available supplies the fallback
// order when no sequence is configured.
func (c AppConfig) RoundSequence(available []string) []string {
	base := c.Session.Sequence
	if len(base) == 0 {
		base = available
	}
	if len(base) == 0 {
		return nil
	}

	out := make([]string, 0, c.Session.Rounds)
	for i := 0; i < c.Session.Rounds; i++ {
		out = append(out, base[i%len(base)])
	}
	return out
}

// Aggregation returns the configured policy with its default applied.
func (c AppConfig) Aggregation() session.Aggregation {
	if c.Session.Aggregation == "" {
		return session.AggregateSumNormalized
	}
	return session.Aggregation(c.Session.Aggregation)
}

// ModuleDuration returns the configured duration override for a module,
// or 0 when the module's own default should stand.
func (c AppConfig) ModuleDuration(id string) int {
	if m, ok := c.Modules[id]; ok {
		return m.Duration
	}
	return 0
}
