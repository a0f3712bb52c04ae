package content

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var packFS embed.FS

// Provider fetches the content pack for a module and round.
// Implementations may hit the network; the context bounds the fetch.
type Provider interface {
	Fetch(ctx context.Context, moduleID string, round int) (Pack, error)
}

// EmbeddedProvider serves packs compiled into the binary.
// Packs are parsed lazily and cached; fetches for modules without a pack
// file return an empty pack, which is not an error (seed-driven games need
// no material).
type EmbeddedProvider struct {
	mu    sync.Mutex
	cache map[string]Pack
}

// NewEmbeddedProvider creates a provider over the built-in packs.
func NewEmbeddedProvider() *EmbeddedProvider {
	return &EmbeddedProvider{
		cache: make(map[string]Pack),
	}
}

// Fetch returns the pack for the given module, rotated by round index so
// consecutive rounds of the same module lead with different material.
func (p *EmbeddedProvider) Fetch(ctx context.Context, moduleID string, round int) (Pack, error) {
	if err := ctx.Err(); err != nil {
		return Pack{}, fmt.Errorf("content: fetch cancelled: %w", err)
	}

	pack, err := p.load(moduleID)
	if err != nil {
		return Pack{}, err
	}
	return rotate(pack, round), nil
}

func (p *EmbeddedProvider) load(moduleID string) (Pack, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pack, ok := p.cache[moduleID]; ok {
		return pack, nil
	}

	data, err := packFS.ReadFile("packs/" + moduleID + ".yaml")
	if err != nil {
		// No pack file for this module: empty pack, not an error.
		p.cache[moduleID] = Pack{ModuleID: moduleID}
		return p.cache[moduleID], nil
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("content: cannot parse pack for %q: %w", moduleID, err)
	}
	if pack.ModuleID == "" {
		pack.ModuleID = moduleID
	}

	p.cache[moduleID] = pack
	return pack, nil
}

// rotate shifts list-based material by the round index so repeated rounds
// of one module do not open with the same question.
func rotate(pack Pack, round int) Pack {
	if round <= 0 {
		return pack
	}
	out := pack
	out.Questions = rotateSlice(pack.Questions, round)
	out.Items = rotateSlice(pack.Items, round)
	out.Symbols = rotateSlice(pack.Symbols, round)
	return out
}

func rotateSlice[T any](s []T, n int) []T {
	if len(s) == 0 {
		return s
	}
	n = n % len(s)
	if n == 0 {
		return s
	}
	out := make([]T, 0, len(s))
	out = append(out, s[n:]...)
	out = append(out, s[:n]...)
	return out
}

var _ Provider = (*EmbeddedProvider)(nil)

// StaticProvider returns fixed packs keyed by module ID. Useful for tests
// and for injecting externally loaded content.
type StaticProvider struct {
	Packs map[string]Pack
	// Err, when set, is returned for every fetch. Simulates a content
	// source outage.
	Err error
}

// Fetch returns the configured pack for the module, or an empty pack when
// none is configured.
func (p *StaticProvider) Fetch(ctx context.Context, moduleID string, round int) (Pack, error) {
	if err := ctx.Err(); err != nil {
		return Pack{}, fmt.Errorf("content: fetch cancelled: %w", err)
	}
	if p.Err != nil {
		return Pack{}, p.Err
	}
	if pack, ok := p.Packs[moduleID]; ok {
		return pack, nil
	}
	return Pack{ModuleID: moduleID}, nil
}

var _ Provider = (*StaticProvider)(nil)
