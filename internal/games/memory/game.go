// Package memory implements the pair-matching memory game: a face-down grid
// of symbol pairs the player uncovers two at a time.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/registry"
	"github.com/minutegames/gauntlet/internal/session"
)

// Grid dimensions. 4×4 gives 8 pairs, which fits comfortably in the default
// round length.
const (
	gridCols = 4
	gridRows = 4
)

// mismatchTicks is how many frames a wrong pair stays face-up before
// flipping back. The game reports Busy during this window.
const mismatchTicks = 24

// defaultSymbols is used when the content pack carries no symbols.
var defaultSymbols = []string{"@", "#", "$", "%", "&", "*", "+", "=", "?", "!", "~", "^"}

// cardState tracks the lifecycle of one grid cell.
type cardState int

const (
	cardHidden cardState = iota
	cardRevealed
	cardMatched
)

// Game implements the memory pair-matching game.
type Game struct {
	rng  *rand.Rand
	tick uint64

	cards  []string    // symbol per cell, row-major
	states []cardState // state per cell
	pairs  int

	cursorX int
	cursorY int

	first   int // index of the first revealed card, -1 if none
	second  int // index of the second revealed card, -1 if none
	holding int // ticks remaining in the mismatch reveal window

	matched  int // pairs matched
	attempts int
	frozen   bool

	screenW int
	screenH int
}

// New creates a new memory game.
func New() *Game {
	return &Game{first: -1, second: -1}
}

func init() {
	registry.Register(session.Descriptor{
		ID:              "memory",
		Title:           "Memory Pairs",
		DefaultDuration: 45,
		New:             func() session.Module { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Memory Pairs"
}

// Start initializes the game for one round.
func (g *Game) Start(cfg session.StartConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Runtime.Seed))
	g.tick = 0
	g.cursorX = 0
	g.cursorY = 0
	g.first = -1
	g.second = -1
	g.holding = 0
	g.matched = 0
	g.attempts = 0
	g.frozen = false
	g.screenW = cfg.Runtime.ScreenW
	g.screenH = cfg.Runtime.ScreenH

	g.dealCards(cfg.Pack)
}

// dealCards builds and shuffles the grid from the pack's symbols.
func (g *Game) dealCards(pack content.Pack) {
	symbols := pack.Symbols
	if len(symbols) == 0 {
		symbols = defaultSymbols
	}

	g.pairs = gridCols * gridRows / 2
	if g.pairs > len(symbols) {
		g.pairs = len(symbols)
	}

	g.cards = make([]string, 0, g.pairs*2)
	for i := 0; i < g.pairs; i++ {
		g.cards = append(g.cards, symbols[i], symbols[i])
	}

	g.rng.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})

	g.states = make([]cardState, len(g.cards))
}

// cols returns the effective column count for the dealt deck.
func (g *Game) cols() int {
	if len(g.cards) >= gridCols*gridRows {
		return gridCols
	}
	// Smaller decks (symbol-starved packs) collapse to two rows.
	c := len(g.cards) / 2
	if c < 1 {
		c = 1
	}
	return c
}

func (g *Game) rows() int {
	c := g.cols()
	if c == 0 {
		return 0
	}
	return (len(g.cards) + c - 1) / c
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) {
	g.tick++

	if g.frozen || len(g.cards) == 0 {
		return
	}

	// Mismatch reveal window: count it down, then flip both back.
	if g.holding > 0 {
		g.holding--
		if g.holding == 0 {
			g.states[g.first] = cardHidden
			g.states[g.second] = cardHidden
			g.first = -1
			g.second = -1
		}
		return
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) {
		g.flip(g.cursorY*g.cols() + g.cursorX)
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursorY--
	case in.Has(core.ActionDown):
		g.cursorY++
	case in.Has(core.ActionLeft):
		g.cursorX--
	case in.Has(core.ActionRight):
		g.cursorX++
	}

	cols, rows := g.cols(), g.rows()
	if g.cursorX < 0 {
		g.cursorX = cols - 1
	}
	if g.cursorX >= cols {
		g.cursorX = 0
	}
	if g.cursorY < 0 {
		g.cursorY = rows - 1
	}
	if g.cursorY >= rows {
		g.cursorY = 0
	}
}

// flip reveals the card at idx and evaluates pairs.
func (g *Game) flip(idx int) {
	if idx < 0 || idx >= len(g.cards) {
		return
	}
	if g.states[idx] != cardHidden {
		return
	}

	g.states[idx] = cardRevealed

	if g.first == -1 {
		g.first = idx
		return
	}

	g.second = idx
	g.attempts++

	if g.cards[g.first] == g.cards[g.second] {
		g.states[g.first] = cardMatched
		g.states[g.second] = cardMatched
		g.first = -1
		g.second = -1
		g.matched++
	} else {
		g.holding = mismatchTicks
	}
}

// Render draws the grid, cursor, and status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cols, rows := g.cols(), g.rows()
	cellW, cellH := 5, 3
	gridW := cols * cellW
	gridH := rows * cellH
	offX := (dst.Width() - gridW) / 2
	offY := (dst.Height() - gridH) / 2
	if offY < 1 {
		offY = 1
	}

	for i := range g.cards {
		cx := i % cols
		cy := i / cols
		x := offX + cx*cellW
		y := offY + cy*cellH

		dst.DrawBox(x, y, cellW-1, cellH)

		var face string
		switch g.states[i] {
		case cardHidden:
			face = "?"
		case cardRevealed:
			face = g.cards[i]
		case cardMatched:
			face = " "
		}
		dst.DrawText(x+(cellW-2)/2, y+1, face)

		if cx == g.cursorX && cy == g.cursorY {
			dst.Set(x-1, y+1, '>')
		}
	}

	status := fmt.Sprintf("Pairs: %d/%d  Attempts: %d", g.matched, g.pairs, g.attempts)
	dst.DrawTextCentered(offY+gridH+1, status)
	if g.holding > 0 {
		dst.DrawTextCentered(offY+gridH+2, "No match!")
	}
}

// Score reports matched pairs against the deck's pair count.
func (g *Game) Score() session.ScoreReport {
	return session.ScoreReport{Score: g.matched, Max: g.pairs}
}

// Busy reports true while a mismatched pair is shown face-up, so the
// round timer does not run down during forced waiting.
func (g *Game) Busy() bool {
	return g.holding > 0
}

// Completed reports true once every pair has been matched.
func (g *Game) Completed() bool {
	return g.pairs > 0 && g.matched >= g.pairs
}

// RoundEnd freezes the board when the round terminates.
func (g *Game) RoundEnd() {
	g.frozen = true
}
