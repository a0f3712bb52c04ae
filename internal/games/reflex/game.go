// Package reflex implements the reaction-time game: targets pop up after a
// random delay and the player hits them as fast as possible. Faster hits are
// worth more points.
package reflex

import (
	"fmt"
	"math/rand"

	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/registry"
	"github.com/minutegames/gauntlet/internal/session"
)

const (
	// targetCount is how many targets one round presents.
	targetCount = 10

	// pointsPerTarget is the maximum score for an instant hit.
	pointsPerTarget = 100

	// decayPerTick is how many points a target loses per frame it stays up.
	decayPerTick = 2

	// expireTicks is how long a target stays up before it counts as missed.
	expireTicks = 90

	// flashTicks is the hit-feedback window. The game reports Busy during it.
	flashTicks = 12

	minWaitTicks = 15
	maxWaitTicks = 60
)

// phase tracks the per-target state machine.
type phase int

const (
	phaseWaiting phase = iota // delay before the target appears
	phaseArmed                // target visible, reaction clock running
	phaseFlash                // hit/miss feedback
	phaseDone                 // all targets consumed
)

// Game implements the reflex reaction game.
type Game struct {
	rng  *rand.Rand
	tick uint64

	phase     phase
	waitLeft  int
	reaction  int // frames since the target appeared
	flashLeft int
	lastAward int
	lastMiss  bool

	targetX int
	targetY int

	hit    int // targets hit
	missed int // targets missed or false-started
	score  int
	frozen bool

	screenW int
	screenH int
}

// New creates a new reflex game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(session.Descriptor{
		ID:              "reflex",
		Title:           "Reflex",
		DefaultDuration: 30,
		New:             func() session.Module { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "reflex"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Reflex"
}

// Start initializes the game for one round.
func (g *Game) Start(cfg session.StartConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Runtime.Seed))
	g.tick = 0
	g.hit = 0
	g.missed = 0
	g.score = 0
	g.frozen = false
	g.lastAward = 0
	g.lastMiss = false
	g.screenW = cfg.Runtime.ScreenW
	g.screenH = cfg.Runtime.ScreenH

	g.armNext()
}

// armNext schedules the next target, or finishes the round.
func (g *Game) armNext() {
	if g.hit+g.missed >= targetCount {
		g.phase = phaseDone
		return
	}
	g.phase = phaseWaiting
	g.waitLeft = minWaitTicks + g.rng.Intn(maxWaitTicks-minWaitTicks+1)
	g.reaction = 0
}

// placeTarget picks a random on-screen position for the target.
func (g *Game) placeTarget() {
	w := g.screenW
	h := g.screenH
	if w < 10 {
		w = 10
	}
	if h < 8 {
		h = 8
	}
	g.targetX = 2 + g.rng.Intn(w-4)
	g.targetY = 3 + g.rng.Intn(h-6)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) {
	g.tick++

	if g.frozen || g.phase == phaseDone {
		return
	}

	switch g.phase {
	case phaseWaiting:
		// Pressing before the target appears forfeits it.
		if in.Has(core.ActionConfirm) {
			g.resolveTarget(0, true)
			return
		}
		g.waitLeft--
		if g.waitLeft <= 0 {
			g.placeTarget()
			g.phase = phaseArmed
			g.reaction = 0
		}

	case phaseArmed:
		if in.Has(core.ActionConfirm) {
			award := pointsPerTarget - g.reaction*decayPerTick
			if award < 1 {
				award = 1
			}
			g.resolveTarget(award, false)
			return
		}
		g.reaction++
		if g.reaction >= expireTicks {
			g.resolveTarget(0, true)
		}

	case phaseFlash:
		g.flashLeft--
		if g.flashLeft <= 0 {
			g.armNext()
		}
	}
}

// resolveTarget books the target outcome and enters the feedback window.
func (g *Game) resolveTarget(award int, miss bool) {
	if miss {
		g.missed++
	} else {
		g.hit++
		g.score += award
	}
	g.lastAward = award
	g.lastMiss = miss
	g.phase = phaseFlash
	g.flashLeft = flashTicks
}

// Render draws the target field and status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	status := fmt.Sprintf("Targets: %d/%d  Score: %d", g.hit+g.missed, targetCount, g.score)
	dst.DrawTextCentered(1, status)

	switch g.phase {
	case phaseWaiting:
		dst.DrawTextCentered(dst.Height()/2, "Wait for it...")
	case phaseArmed:
		dst.Set(g.targetX, g.targetY, '◉')
		dst.DrawText(g.targetX-1, g.targetY-1, "\\ /")
		dst.DrawText(g.targetX-1, g.targetY+1, "/ \\")
	case phaseFlash:
		if g.lastMiss {
			dst.DrawTextCentered(dst.Height()/2, "MISS")
		} else {
			dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("HIT +%d", g.lastAward))
		}
	case phaseDone:
		dst.DrawTextCentered(dst.Height()/2, "All targets done")
	}
}

// Score reports accumulated points against the best possible total.
func (g *Game) Score() session.ScoreReport {
	return session.ScoreReport{Score: g.score, Max: targetCount * pointsPerTarget}
}

// Busy reports true during the hit/miss feedback window.
func (g *Game) Busy() bool {
	return g.phase == phaseFlash
}

// Completed reports true once every target has been presented.
func (g *Game) Completed() bool {
	return g.phase == phaseDone
}

// RoundEnd freezes the game when the round terminates.
func (g *Game) RoundEnd() {
	g.frozen = true
}
