package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/minutegames/gauntlet/internal/session"
)

var (
	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("48"))

	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				MarginBottom(1)

	gradeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("48"))

	abandonedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

// renderHUD produces the one-line round header shown above the game area.
func renderHUD(r *session.Round, total int) string {
	if r == nil {
		return ""
	}

	score := r.LiveScore()
	line := fmt.Sprintf(" Round %d/%d  %s  ⏱ %ds  Score: %d/%d",
		r.Index()+1, total, r.Descriptor().Title, r.Remaining(), score.Score, score.Max)

	if r.Phase() == session.PhasePaused {
		return hudStyle.Render(line) + pausedStyle.Render("  [clock held]")
	}
	return hudStyle.Render(line)
}

// renderCountdown fills the terminal with the big pre-round countdown.
func renderCountdown(r *session.Round, total, width, height int) string {
	display := r.CountdownDisplay()
	title := fmt.Sprintf("Round %d/%d: %s", r.Index()+1, total, r.Descriptor().Title)

	content := lipgloss.JoinVertical(lipgloss.Center,
		hudStyle.Render(title),
		"",
		countdownStyle.Render(bigDigit(display)),
		"",
		helpStyle.Render("enter/space to start now"),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// bigDigit blows a short countdown string up for visibility.
func bigDigit(s string) string {
	pad := strings.Repeat(" ", 3)
	return pad + s + pad
}

// renderSummary produces the end-of-session report.
func renderSummary(res *session.Result, policy session.Aggregation, grade string, width, height int) string {
	var b strings.Builder

	title := "SESSION COMPLETE"
	if res.Abandoned {
		title = "SESSION ABANDONED"
	}
	b.WriteString(summaryTitleStyle.Render(title))
	b.WriteString("\n\n")

	for _, rec := range res.Records {
		b.WriteString(fmt.Sprintf("  %d. %-12s %5d/%-5d  %.2f  %s\n",
			rec.Index+1, rec.ModuleID, rec.RawScore, rec.MaxScore, rec.Normalized, rec.Grade))
	}
	for i := res.RoundsPlayed(); i < res.RoundsPlanned; i++ {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  %d. (not played)", i+1)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch policy {
	case session.AggregateRawRatio:
		raw, max := res.RawTotals()
		b.WriteString(fmt.Sprintf("  Raw total: %d/%d\n", raw, max))
	default:
		b.WriteString(fmt.Sprintf("  Total: %.2f / %d\n", res.TotalNormalized(), res.RoundsPlanned))
	}
	b.WriteString(fmt.Sprintf("  Average: %.2f   Grade: %s\n", res.Average(policy), gradeStyle.Render(grade)))

	if res.Abandoned {
		b.WriteString("\n")
		b.WriteString(abandonedStyle.Render("  Quit mid-session; partial result kept."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  q/enter to exit"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
