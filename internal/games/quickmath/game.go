// Package quickmath implements the rapid-fire arithmetic quiz: multiple
// choice questions answered with the number keys. Questions come from the
// content pack when available; otherwise the game generates its own from
// the round seed.
package quickmath

import (
	"fmt"
	"math/rand"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/registry"
	"github.com/minutegames/gauntlet/internal/session"
)

const (
	// questionCount is how many questions one round asks.
	questionCount = 10

	// pointsPerQuestion makes a perfect round worth 100.
	pointsPerQuestion = 10

	// feedbackTicks is the correct/wrong flash window. The game reports
	// Busy during it.
	feedbackTicks = 18
)

// Game implements the quick-math quiz.
type Game struct {
	rng  *rand.Rand
	tick uint64

	questions []content.Question
	current   int

	score    int
	correct  int
	answered int

	feedback    int // ticks remaining in the feedback window
	lastCorrect bool
	lastSkipped bool
	frozen      bool
	screenW     int
	screenH     int
}

// New creates a new quick-math game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(session.Descriptor{
		ID:              "quickmath",
		Title:           "Quick Math",
		DefaultDuration: 40,
		New:             func() session.Module { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "quickmath"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Quick Math"
}

// Start initializes the game for one round.
func (g *Game) Start(cfg session.StartConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Runtime.Seed))
	g.tick = 0
	g.current = 0
	g.score = 0
	g.correct = 0
	g.answered = 0
	g.feedback = 0
	g.frozen = false
	g.screenW = cfg.Runtime.ScreenW
	g.screenH = cfg.Runtime.ScreenH

	g.questions = g.buildQuestions(cfg.Pack)
}

// buildQuestions takes questions from the pack, topping up with generated
// arithmetic when the pack is short.
func (g *Game) buildQuestions(pack content.Pack) []content.Question {
	qs := make([]content.Question, 0, questionCount)
	for _, q := range pack.Questions {
		if len(qs) == questionCount {
			break
		}
		if validQuestion(q) {
			qs = append(qs, q)
		}
	}
	for len(qs) < questionCount {
		qs = append(qs, g.generateQuestion())
	}
	return qs
}

// validQuestion filters malformed pack entries instead of crashing on them.
func validQuestion(q content.Question) bool {
	return q.Prompt != "" && len(q.Choices) == 3 && q.Answer >= 0 && q.Answer < 3
}

// generateQuestion produces a seeded two-operand arithmetic question with
// two plausible wrong answers.
func (g *Game) generateQuestion() content.Question {
	a := 2 + g.rng.Intn(30)
	b := 2 + g.rng.Intn(30)

	var prompt string
	var result int
	switch g.rng.Intn(3) {
	case 0:
		prompt = fmt.Sprintf("%d + %d = ?", a, b)
		result = a + b
	case 1:
		if a < b {
			a, b = b, a
		}
		prompt = fmt.Sprintf("%d - %d = ?", a, b)
		result = a - b
	default:
		a = 2 + g.rng.Intn(12)
		b = 2 + g.rng.Intn(12)
		prompt = fmt.Sprintf("%d × %d = ?", a, b)
		result = a * b
	}

	// Distractors near the true result, never equal to it.
	wrong1 := result + 1 + g.rng.Intn(4)
	wrong2 := result - 1 - g.rng.Intn(4)
	if wrong2 == wrong1 {
		wrong2--
	}

	answer := g.rng.Intn(3)
	choices := make([]string, 3)
	rest := []int{wrong1, wrong2}
	for i := range choices {
		if i == answer {
			choices[i] = fmt.Sprintf("%d", result)
		} else {
			choices[i] = fmt.Sprintf("%d", rest[0])
			rest = rest[1:]
		}
	}

	return content.Question{Prompt: prompt, Choices: choices, Answer: answer}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) {
	g.tick++

	if g.frozen || g.Completed() {
		return
	}

	if g.feedback > 0 {
		g.feedback--
		if g.feedback == 0 {
			g.current++
		}
		return
	}

	var pick int
	switch {
	case in.Has(core.ActionChoice1):
		pick = 0
	case in.Has(core.ActionChoice2):
		pick = 1
	case in.Has(core.ActionChoice3):
		pick = 2
	default:
		return
	}

	g.submit(pick)
}

// submit evaluates an answer for the current question.
func (g *Game) submit(pick int) {
	q := g.questions[g.current]
	g.answered++
	g.lastSkipped = false
	g.lastCorrect = pick == q.Answer
	if g.lastCorrect {
		g.correct++
		g.score += pointsPerQuestion
	}
	g.feedback = feedbackTicks
}

// SkipQuestion advances past the current question without scoring it.
func (g *Game) SkipQuestion() {
	if g.frozen || g.Completed() || g.feedback > 0 {
		return
	}
	g.answered++
	g.lastCorrect = false
	g.lastSkipped = true
	g.feedback = feedbackTicks
}

// Render draws the current question and choices.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	status := fmt.Sprintf("Question %d/%d  Score: %d", min(g.current+1, questionCount), questionCount, g.score)
	dst.DrawTextCentered(1, status)

	if g.Completed() {
		dst.DrawTextCentered(dst.Height()/2, "All questions answered")
		return
	}

	q := g.questions[g.current]
	midY := dst.Height()/2 - 2
	dst.DrawTextCentered(midY, q.Prompt)
	for i, c := range q.Choices {
		dst.DrawTextCentered(midY+2+i, fmt.Sprintf("[%d] %s", i+1, c))
	}

	if g.feedback > 0 {
		switch {
		case g.lastSkipped:
			dst.DrawTextCentered(midY+6, "Skipped")
		case g.lastCorrect:
			dst.DrawTextCentered(midY+6, "Correct!")
		default:
			dst.DrawTextCentered(midY+6, "Wrong")
		}
	}
}

// Score reports points earned against a perfect round.
func (g *Game) Score() session.ScoreReport {
	return session.ScoreReport{Score: g.score, Max: questionCount * pointsPerQuestion}
}

// Busy reports true during the answer feedback flash.
func (g *Game) Busy() bool {
	return g.feedback > 0
}

// Completed reports true once every question has been consumed.
func (g *Game) Completed() bool {
	return g.answered >= questionCount && g.feedback == 0
}

// RoundEnd freezes the quiz when the round terminates.
func (g *Game) RoundEnd() {
	g.frozen = true
}
