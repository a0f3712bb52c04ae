package content

import (
	"context"
	"errors"
	"testing"
)

func TestEmbeddedProviderServesPacks(t *testing.T) {
	p := NewEmbeddedProvider()
	ctx := context.Background()

	pack, err := p.Fetch(ctx, "quickmath", 0)
	if err != nil {
		t.Fatalf("Fetch(quickmath): %v", err)
	}
	if len(pack.Questions) == 0 {
		t.Fatal("quickmath pack should carry questions")
	}
	for i, q := range pack.Questions {
		if len(q.Choices) == 0 {
			t.Errorf("question %d has no choices", i)
		}
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			t.Errorf("question %d answer index %d out of range", i, q.Answer)
		}
	}

	pack, err = p.Fetch(ctx, "sorter", 0)
	if err != nil {
		t.Fatalf("Fetch(sorter): %v", err)
	}
	if len(pack.Categories) != 2 {
		t.Errorf("sorter pack has %d categories, want 2", len(pack.Categories))
	}
	for i, item := range pack.Items {
		if item.Category < 0 || item.Category >= len(pack.Categories) {
			t.Errorf("item %d category index %d out of range", i, item.Category)
		}
	}

	pack, err = p.Fetch(ctx, "memory", 0)
	if err != nil {
		t.Fatalf("Fetch(memory): %v", err)
	}
	if len(pack.Symbols) == 0 {
		t.Fatal("memory pack should carry symbols")
	}
}

func TestEmbeddedProviderUnknownModuleIsEmptyNotError(t *testing.T) {
	p := NewEmbeddedProvider()

	pack, err := p.Fetch(context.Background(), "reflex", 0)
	if err != nil {
		t.Fatalf("Fetch for a pack-less module should not error: %v", err)
	}
	if !pack.Empty() {
		t.Error("pack-less module should yield an empty pack")
	}
	if pack.ModuleID != "reflex" {
		t.Errorf("pack module id = %q, want reflex", pack.ModuleID)
	}
}

func TestEmbeddedProviderRotatesByRound(t *testing.T) {
	p := NewEmbeddedProvider()
	ctx := context.Background()

	first, err := p.Fetch(ctx, "quickmath", 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	second, err := p.Fetch(ctx, "quickmath", 1)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(first.Questions) != len(second.Questions) {
		t.Fatal("rotation must not change pack size")
	}
	if first.Questions[0].Prompt == second.Questions[0].Prompt {
		t.Error("consecutive rounds should lead with different questions")
	}
	// Round 1 leads with what round 0 had second.
	if second.Questions[0].Prompt != first.Questions[1].Prompt {
		t.Error("rotation should shift, not shuffle")
	}
}

func TestEmbeddedProviderHonorsContext(t *testing.T) {
	p := NewEmbeddedProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Fetch(ctx, "memory", 0); err == nil {
		t.Error("Fetch with a cancelled context should fail")
	}
}

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{
		Packs: map[string]Pack{
			"x": {ModuleID: "x", Symbols: []string{"a"}},
		},
	}

	pack, err := p.Fetch(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(pack.Symbols) != 1 {
		t.Error("configured pack not returned")
	}

	pack, err = p.Fetch(context.Background(), "y", 0)
	if err != nil {
		t.Fatalf("Fetch for unconfigured module: %v", err)
	}
	if !pack.Empty() {
		t.Error("unconfigured module should yield an empty pack")
	}

	p.Err = errors.New("down")
	if _, err := p.Fetch(context.Background(), "x", 0); err == nil {
		t.Error("configured error should surface")
	}
}
