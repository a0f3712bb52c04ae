package session

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
)

// moduleLog captures the instances a descriptor factory hands out so tests
// can drive them mid-session.
type moduleLog struct {
	created []*richModule
}

func (l *moduleLog) descriptor(id string, report ScoreReport) Descriptor {
	return Descriptor{
		ID:              id,
		Title:           id,
		DefaultDuration: 30,
		New: func() Module {
			m := &richModule{plainModule: plainModule{id: id, report: report}}
			l.created = append(l.created, m)
			return m
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CountdownSeconds = 0
	cfg.DurationOverride = 2
	return cfg
}

func TestControllerEmptySequenceIsFatal(t *testing.T) {
	c := NewController(nil, testConfig(), nil, nil)

	err := c.Start(context.Background())
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("Start on empty sequence: err = %v, want ErrEmptySequence", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle (session must never begin)", c.State())
	}
}

func TestControllerMalformedDescriptorIsFatal(t *testing.T) {
	seq := []Descriptor{{ID: "broken", Title: "Broken", DefaultDuration: 30}} // no factory
	c := NewController(seq, testConfig(), nil, nil)

	if err := c.Start(context.Background()); err == nil {
		t.Fatal("Start with a factory-less descriptor should fail")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
}

// TestControllerThreeRoundSession walks the worked scoring example: module A
// (0-1000 scale) resolves at 750, B (0-100) times out at 40, C (count-based,
// max 5) is force-advanced at 3. Sum of normalized = 1.75, average 0.583.
func TestControllerThreeRoundSession(t *testing.T) {
	log := &moduleLog{}
	seq := []Descriptor{
		log.descriptor("alpha", ScoreReport{Score: 750, Max: 1000}),
		log.descriptor("beta", ScoreReport{Score: 40, Max: 100}),
		log.descriptor("gamma", ScoreReport{Score: 3, Max: 5}),
	}
	sink := &recordingSink{}
	c := NewController(seq, testConfig(), nil, sink)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.State() != StateRunning {
		t.Fatalf("state = %s, want running", c.State())
	}

	// Round 0: self-completion.
	log.created[0].completed = true
	c.Step(core.NewInputFrame())

	// Round 1: timeout after the 2-second override.
	c.TickSecond()
	c.TickSecond()

	// Round 2: player skips the whole round.
	c.ForceAdvance()

	if c.State() != StateComplete {
		t.Fatalf("state = %s, want complete", c.State())
	}

	res := c.Result()
	if len(res.Records) != 3 {
		t.Fatalf("got %d round records, want 3", len(res.Records))
	}
	if !res.Complete || res.Abandoned {
		t.Error("result should be complete and not abandoned")
	}

	wantNorm := []float64{0.75, 0.40, 0.60}
	wantIDs := []string{"alpha", "beta", "gamma"}
	for i, rec := range res.Records {
		if rec.Index != i {
			t.Errorf("record %d has index %d; rounds must be consumed strictly in order", i, rec.Index)
		}
		if rec.ModuleID != wantIDs[i] {
			t.Errorf("record %d module = %q, want %q", i, rec.ModuleID, wantIDs[i])
		}
		if math.Abs(rec.Normalized-wantNorm[i]) > 1e-9 {
			t.Errorf("record %d normalized = %v, want %v", i, rec.Normalized, wantNorm[i])
		}
	}

	if total := res.Total(AggregateSumNormalized); math.Abs(total-1.75) > 1e-9 {
		t.Errorf("total = %v, want 1.75", total)
	}
	avg := res.Average(AggregateSumNormalized)
	if math.Abs(avg-1.75/3) > 1e-9 {
		t.Errorf("average = %v, want %v", avg, 1.75/3)
	}
	if grade := c.Grade(); grade != "C" {
		t.Errorf("session grade = %q, want C (bracket containing 0.583)", grade)
	}

	if sink.resolves != 3 {
		t.Errorf("round-resolved notifications = %d, want 3", sink.resolves)
	}
	if sink.finishes != 1 {
		t.Errorf("session-finished notifications = %d, want 1", sink.finishes)
	}

	// Every module terminated exactly once.
	for i, m := range log.created {
		if m.roundEnds != 1 {
			t.Errorf("module %d RoundEnd invoked %d times, want 1", i, m.roundEnds)
		}
		if m.scoreReads != 1 {
			t.Errorf("module %d Score read %d times, want 1", i, m.scoreReads)
		}
	}
}

func TestControllerQuitMidRoundKeepsPartialResult(t *testing.T) {
	log := &moduleLog{}
	var seq []Descriptor
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seq = append(seq, log.descriptor(id, ScoreReport{Score: 5, Max: 10}))
	}
	sink := &recordingSink{}
	c := NewController(seq, testConfig(), nil, sink)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Resolve rounds 0 and 1 by timeout, then quit during round 2.
	for i := 0; i < 4; i++ {
		c.TickSecond()
	}
	if got := c.Result().RoundsPlayed(); got != 2 {
		t.Fatalf("rounds played before quit = %d, want 2", got)
	}

	c.Quit()

	if c.State() != StateAbandoned {
		t.Fatalf("state = %s, want abandoned", c.State())
	}
	res := c.Result()
	if !res.Abandoned || res.Complete {
		t.Error("result should be marked abandoned, not complete")
	}
	if got := res.RoundsPlayed(); got != 3 {
		t.Errorf("rounds recorded = %d, want 3 (two finished plus the force-resolved one)", got)
	}
	if res.FinishedAt.IsZero() {
		t.Error("abandoned result must still carry a finish time")
	}

	// The round active at quit time was torn down through the normal path.
	if log.created[2].roundEnds != 1 {
		t.Errorf("active module RoundEnd invoked %d times, want 1", log.created[2].roundEnds)
	}
	if sink.finishes != 1 {
		t.Errorf("session-finished notifications = %d, want 1", sink.finishes)
	}

	// No trailing ticks resurrect the session.
	c.TickSecond()
	c.Quit()
	if got := c.Result().RoundsPlayed(); got != 3 {
		t.Errorf("rounds recorded after trailing events = %d, want 3", got)
	}
}

func TestControllerContentFailureScoresZeroAndContinues(t *testing.T) {
	log := &moduleLog{}
	seq := []Descriptor{
		log.descriptor("a", ScoreReport{Score: 9, Max: 10}),
		log.descriptor("b", ScoreReport{Score: 9, Max: 10}),
	}
	provider := &content.StaticProvider{Err: errors.New("content source down")}
	c := NewController(seq, testConfig(), provider, nil)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: content failure must not be fatal at Start: %v", err)
	}

	// Both rounds degrade to the zero report and the session completes.
	if c.State() != StateComplete {
		t.Fatalf("state = %s, want complete", c.State())
	}
	res := c.Result()
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	for i, rec := range res.Records {
		if rec.RawScore != 0 || rec.MaxScore != 1 {
			t.Errorf("record %d = {%d %d}, want the zero report {0 1}", i, rec.RawScore, rec.MaxScore)
		}
	}
}

func TestControllerPanickingFactoryScoresZero(t *testing.T) {
	seq := []Descriptor{
		{ID: "boom", Title: "Boom", DefaultDuration: 10, New: func() Module { panic("factory exploded") }},
		(&moduleLog{}).descriptor("ok", ScoreReport{Score: 10, Max: 10}),
	}
	cfg := testConfig()
	c := NewController(seq, cfg, nil, nil)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Round 0 resolved zero immediately; round 1 still playable.
	res := c.Result()
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.Records[0].RawScore != 0 {
		t.Errorf("crashed round raw score = %d, want 0", res.Records[0].RawScore)
	}
	if c.State() != StateRunning {
		t.Errorf("state = %s, want running (one bad module never ends the session)", c.State())
	}
}

func TestControllerRawRatioAggregation(t *testing.T) {
	res := &Result{
		Records: []RoundRecord{
			{RawScore: 750, MaxScore: 1000, Normalized: 0.75},
			{RawScore: 40, MaxScore: 100, Normalized: 0.40},
		},
	}

	got := res.Average(AggregateRawRatio)
	want := float64(790) / float64(1100)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("raw-ratio average = %v, want %v", got, want)
	}
	if total := res.Total(AggregateRawRatio); math.Abs(total-want) > 1e-9 {
		t.Errorf("raw-ratio total = %v, want %v", total, want)
	}
}

func TestControllerCountdownGatesRoundEntry(t *testing.T) {
	log := &moduleLog{}
	seq := []Descriptor{log.descriptor("a", ScoreReport{Max: 10})}
	cfg := testConfig()
	cfg.CountdownSeconds = 3
	c := NewController(seq, cfg, nil, nil)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if c.Round().Phase() != PhaseCountdown {
		t.Fatalf("phase = %s, want countdown", c.Round().Phase())
	}
	if len(log.created) != 1 || log.created[0].started {
		t.Fatal("module must not start during countdown")
	}

	c.SkipCountdown()
	if c.Round().Phase() != PhaseActive {
		t.Errorf("phase after skip = %s, want active", c.Round().Phase())
	}
	if !log.created[0].started {
		t.Error("module should start when countdown is skipped")
	}
}
