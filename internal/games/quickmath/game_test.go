package quickmath

import (
	"testing"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/session"
)

func startedGame(seed int64, pack content.Pack) *Game {
	g := New()
	g.Start(session.StartConfig{
		Runtime:         core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24},
		DurationSeconds: 40,
		Pack:            pack,
	})
	return g
}

// drainFeedback steps empty frames until the feedback window closes.
func drainFeedback(g *Game) {
	empty := core.NewInputFrame()
	for range feedbackTicks + 1 {
		if g.feedback == 0 {
			return
		}
		g.Step(empty)
	}
}

func answerAction(pick int) core.Action {
	return []core.Action{core.ActionChoice1, core.ActionChoice2, core.ActionChoice3}[pick]
}

func TestGeneratedQuestionsFillRound(t *testing.T) {
	g := startedGame(1, content.Pack{})

	if len(g.questions) != questionCount {
		t.Fatalf("question count: got %d, want %d", len(g.questions), questionCount)
	}
	for i, q := range g.questions {
		if !validQuestion(q) {
			t.Errorf("generated question %d is malformed: %+v", i, q)
		}
	}
}

func TestPackQuestionsPreferred(t *testing.T) {
	pack := content.Pack{
		Questions: []content.Question{
			{Prompt: "2 + 2 = ?", Choices: []string{"3", "4", "5"}, Answer: 1},
		},
	}
	g := startedGame(1, pack)

	if g.questions[0].Prompt != "2 + 2 = ?" {
		t.Errorf("first question should come from the pack, got %q", g.questions[0].Prompt)
	}
	if len(g.questions) != questionCount {
		t.Errorf("short pack should be topped up to %d questions, got %d", questionCount, len(g.questions))
	}
}

func TestMalformedPackQuestionsDropped(t *testing.T) {
	pack := content.Pack{
		Questions: []content.Question{
			{Prompt: "", Choices: []string{"1", "2", "3"}, Answer: 0},
			{Prompt: "bad", Choices: []string{"1"}, Answer: 0},
			{Prompt: "bad", Choices: []string{"1", "2", "3"}, Answer: 7},
		},
	}
	g := startedGame(1, pack)

	for i, q := range g.questions {
		if !validQuestion(q) {
			t.Errorf("question %d is malformed: %+v", i, q)
		}
	}
}

func TestCorrectAnswerScores(t *testing.T) {
	g := startedGame(2, content.Pack{})

	in := core.NewInputFrame()
	in.Set(answerAction(g.questions[0].Answer))
	g.Step(in)

	if g.score != pointsPerQuestion {
		t.Errorf("score: got %d, want %d", g.score, pointsPerQuestion)
	}
	if !g.lastCorrect {
		t.Error("feedback should report correct")
	}
	if !g.Busy() {
		t.Error("feedback window should report busy")
	}
}

func TestWrongAnswerScoresNothing(t *testing.T) {
	g := startedGame(3, content.Pack{})

	wrong := (g.questions[0].Answer + 1) % 3
	in := core.NewInputFrame()
	in.Set(answerAction(wrong))
	g.Step(in)

	if g.score != 0 {
		t.Errorf("wrong answer score: got %d, want 0", g.score)
	}
	if g.answered != 1 {
		t.Errorf("answered: got %d, want 1", g.answered)
	}
}

func TestSkipAdvancesWithoutScoring(t *testing.T) {
	g := startedGame(4, content.Pack{})

	g.SkipQuestion()
	if g.answered != 1 || g.score != 0 {
		t.Errorf("skip: answered %d score %d, want 1 and 0", g.answered, g.score)
	}
	if !g.lastSkipped {
		t.Error("feedback should report skipped")
	}

	// A second skip during the feedback window is ignored.
	g.SkipQuestion()
	if g.answered != 1 {
		t.Errorf("skip during feedback should be a no-op, answered %d", g.answered)
	}

	drainFeedback(g)
	if g.current != 1 {
		t.Errorf("current question: got %d, want 1", g.current)
	}
}

func TestInputIgnoredDuringFeedback(t *testing.T) {
	g := startedGame(5, content.Pack{})

	in := core.NewInputFrame()
	in.Set(answerAction(g.questions[0].Answer))
	g.Step(in)

	// Press again immediately: still in the feedback window.
	g.Step(in)
	if g.answered != 1 {
		t.Errorf("answer during feedback should be ignored, answered %d", g.answered)
	}
}

func TestPerfectRoundCompletes(t *testing.T) {
	g := startedGame(6, content.Pack{})

	for range questionCount {
		in := core.NewInputFrame()
		in.Set(answerAction(g.questions[g.current].Answer))
		g.Step(in)
		drainFeedback(g)
	}

	if !g.Completed() {
		t.Fatal("all questions answered but Completed() is false")
	}

	report := g.Score()
	if report.Score != questionCount*pointsPerQuestion || report.Max != questionCount*pointsPerQuestion {
		t.Errorf("perfect score: got %d/%d, want %d/%d",
			report.Score, report.Max, questionCount*pointsPerQuestion, questionCount*pointsPerQuestion)
	}
}

func TestRoundEndFreezes(t *testing.T) {
	g := startedGame(7, content.Pack{})
	g.RoundEnd()

	in := core.NewInputFrame()
	in.Set(answerAction(g.questions[0].Answer))
	g.Step(in)
	g.SkipQuestion()

	if g.answered != 0 {
		t.Error("frozen quiz should ignore input and skips")
	}
}

func TestScoreBeforeStart(t *testing.T) {
	g := New()
	if got := g.Score().Score; got != 0 {
		t.Errorf("unstarted game score: got %d, want 0", got)
	}
}
