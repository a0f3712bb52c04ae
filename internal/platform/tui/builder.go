package tui

import (
	"fmt"

	"github.com/minutegames/gauntlet/internal/analytics"
	"github.com/minutegames/gauntlet/internal/config"
	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/registry"
	"github.com/minutegames/gauntlet/internal/session"
)

// BuildController assembles a session controller from the app configuration
// and the registered games: sequence expansion, per-module duration
// overrides, grade scale, and the embedded content provider.
func BuildController(appCfg config.AppConfig, rt core.RuntimeConfig, sink analytics.Sink) (*session.Controller, error) {
	available := make([]string, 0)
	for _, d := range registry.List() {
		available = append(available, d.ID)
	}

	ids := appCfg.RoundSequence(available)
	if len(ids) == 0 {
		return nil, fmt.Errorf("tui: no games registered and no sequence configured")
	}

	sequence, err := registry.Sequence(ids)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot resolve session sequence: %w", err)
	}

	for i := range sequence {
		if d := appCfg.ModuleDuration(sequence[i].ID); d > 0 {
			sequence[i].DefaultDuration = d
		}
	}

	cfg := session.DefaultConfig()
	cfg.CountdownSeconds = appCfg.Session.CountdownSeconds
	cfg.Aggregation = appCfg.Aggregation()
	cfg.Runtime = rt
	if len(appCfg.Grades) > 0 {
		cfg.Grades = appCfg.Grades
	}

	return session.NewController(sequence, cfg, content.NewEmbeddedProvider(), sink), nil
}
