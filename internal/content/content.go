// Package content supplies game-specific puzzle material to rounds.
// A Provider is consulted once per round activation; a fetch failure is
// treated by the session core as a module-load failure for that round only.
package content

// Question is a single multiple-choice prompt.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Choices []string `yaml:"choices"`
	Answer  int      `yaml:"answer"` // index into Choices
}

// SortItem is one item to be filed into a category.
type SortItem struct {
	Text     string `yaml:"text"`
	Category int    `yaml:"category"` // index into Pack.Categories
}

// Pack is the content bundle for one module and one round.
// Fields are per-game: a module reads the ones it understands and ignores
// the rest. An all-empty pack is valid for games that generate their own
// content from the round seed.
type Pack struct {
	ModuleID   string     `yaml:"module"`
	Symbols    []string   `yaml:"symbols"`
	Questions  []Question `yaml:"questions"`
	Categories []string   `yaml:"categories"`
	Items      []SortItem `yaml:"items"`
}

// Empty reports whether the pack carries no material at all.
func (p Pack) Empty() bool {
	return len(p.Symbols) == 0 && len(p.Questions) == 0 && len(p.Items) == 0
}
