// Package sorter implements the left/right categorization game: a deck of
// items is dealt one at a time and the player files each into one of two
// category bins.
package sorter

import (
	"fmt"
	"math/rand"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/registry"
	"github.com/minutegames/gauntlet/internal/session"
)

// feedbackTicks is the right/wrong flash window. The game reports Busy
// during it.
const feedbackTicks = 15

// fallbackCategories and fallbackItems are used when the content pack
// carries no deck.
var (
	fallbackCategories = []string{"Even", "Odd"}
	fallbackItems      = []content.SortItem{
		{Text: "2", Category: 0}, {Text: "7", Category: 1},
		{Text: "12", Category: 0}, {Text: "9", Category: 1},
		{Text: "20", Category: 0}, {Text: "3", Category: 1},
		{Text: "8", Category: 0}, {Text: "15", Category: 1},
		{Text: "6", Category: 0}, {Text: "21", Category: 1},
		{Text: "14", Category: 0}, {Text: "5", Category: 1},
	}
)

// Game implements the sorter game.
type Game struct {
	rng  *rand.Rand
	tick uint64

	categories []string
	deck       []content.SortItem
	current    int

	correct  int
	sorted   int // items consumed: sorted correctly, wrongly, or skipped
	skipped  int
	feedback int
	lastGood bool
	lastSkip bool
	frozen   bool

	screenW int
	screenH int
}

// New creates a new sorter game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(session.Descriptor{
		ID:              "sorter",
		Title:           "Sorter",
		DefaultDuration: 30,
		New:             func() session.Module { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sorter"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sorter"
}

// Start initializes the game for one round.
func (g *Game) Start(cfg session.StartConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Runtime.Seed))
	g.tick = 0
	g.current = 0
	g.correct = 0
	g.sorted = 0
	g.skipped = 0
	g.feedback = 0
	g.frozen = false
	g.screenW = cfg.Runtime.ScreenW
	g.screenH = cfg.Runtime.ScreenH

	g.buildDeck(cfg.Pack)
}

// buildDeck takes the pack's categories and items, falling back to the
// built-in deck when the pack is unusable. The deck is shuffled per round.
func (g *Game) buildDeck(pack content.Pack) {
	g.categories = pack.Categories
	items := pack.Items
	if len(g.categories) < 2 || len(items) == 0 {
		g.categories = fallbackCategories
		items = fallbackItems
	}

	// The game binds items to exactly two bins; drop entries pointing at
	// categories beyond the first two.
	g.deck = make([]content.SortItem, 0, len(items))
	for _, it := range items {
		if it.Text != "" && it.Category >= 0 && it.Category < 2 {
			g.deck = append(g.deck, it)
		}
	}
	if len(g.deck) == 0 {
		g.deck = append(g.deck, fallbackItems...)
		g.categories = fallbackCategories
	}

	g.rng.Shuffle(len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})
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

	switch {
	case in.Has(core.ActionLeft):
		g.file(0)
	case in.Has(core.ActionRight):
		g.file(1)
	}
}

// file places the current item into the given bin.
func (g *Game) file(bin int) {
	item := g.deck[g.current]
	g.sorted++
	g.lastSkip = false
	g.lastGood = item.Category == bin
	if g.lastGood {
		g.correct++
	}
	g.feedback = feedbackTicks
}

// SkipQuestion discards the current item without scoring it.
func (g *Game) SkipQuestion() {
	if g.frozen || g.Completed() || g.feedback > 0 {
		return
	}
	g.sorted++
	g.skipped++
	g.lastGood = false
	g.lastSkip = true
	g.feedback = feedbackTicks
}

// Render draws the bins, the current item, and the status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	status := fmt.Sprintf("Sorted: %d/%d  Correct: %d", g.sorted, len(g.deck), g.correct)
	dst.DrawTextCentered(1, status)

	if g.Completed() {
		dst.DrawTextCentered(dst.Height()/2, "Deck empty")
		return
	}

	midY := dst.Height() / 2
	leftLabel := fmt.Sprintf("← %s", g.categories[0])
	rightLabel := fmt.Sprintf("%s →", g.categories[1])
	dst.DrawText(4, midY, leftLabel)
	dst.DrawText(dst.Width()-4-len([]rune(rightLabel)), midY, rightLabel)

	item := g.deck[g.current]
	boxW := len([]rune(item.Text)) + 4
	boxX := (dst.Width() - boxW) / 2
	dst.DrawBox(boxX, midY-1, boxW, 3)
	dst.DrawTextCentered(midY, item.Text)

	if g.feedback > 0 {
		switch {
		case g.lastSkip:
			dst.DrawTextCentered(midY+3, "Skipped")
		case g.lastGood:
			dst.DrawTextCentered(midY+3, "Right bin!")
		default:
			dst.DrawTextCentered(midY+3, "Wrong bin")
		}
	}
}

// Score reports correctly sorted items against the deck size.
func (g *Game) Score() session.ScoreReport {
	return session.ScoreReport{Score: g.correct, Max: len(g.deck)}
}

// Busy reports true during the right/wrong feedback flash.
func (g *Game) Busy() bool {
	return g.feedback > 0
}

// Completed reports true once the whole deck has been consumed.
func (g *Game) Completed() bool {
	return len(g.deck) > 0 && g.sorted >= len(g.deck) && g.feedback == 0
}

// RoundEnd freezes the game when the round terminates.
func (g *Game) RoundEnd() {
	g.frozen = true
}
