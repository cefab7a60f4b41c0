package tui

import "testing"

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	next := r.Lookup("l", scopeWrappedLoaded)
	if next == nil {
		t.Fatal("expected next binding in loaded wrapped scope")
	}
	if next.Action != actionNextSlide {
		t.Fatalf("next action = %q, want %q", next.Action, actionNextSlide)
	}

	if got := r.Lookup("l", scopeWrapped); got != nil {
		t.Fatalf("did not expect slide navigation while loading, got %q", got.Action)
	}

	// the editor picker has no quit binding of its own
	quit := r.Lookup("ctrl+c", scopeEditorPicker)
	if quit == nil || quit.Action != actionQuit {
		t.Fatal("expected quit to fall back to the global scope")
	}
}

func TestKeyRegistryNoDuplicateInSameScope(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	r.Register(Binding{Action: actionNextTab, Keys: []string{"x"}, Help: "first", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionCloseTab, Keys: []string{"x"}, Help: "duplicate", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionCloseTab, Keys: []string{"x"}, Help: "different scope", Scopes: []string{"scope_b"}})

	a := r.BindingsForScope("scope_a")
	if len(a) != 1 {
		t.Fatalf("scope_a bindings = %d, want 1", len(a))
	}
	if a[0].Action != actionNextTab {
		t.Fatalf("scope_a action = %q, want %q", a[0].Action, actionNextTab)
	}

	b := r.BindingsForScope("scope_b")
	if len(b) != 1 || b[0].Action != actionCloseTab {
		t.Fatalf("scope_b bindings = %+v", b)
	}
}

func TestKeyRegistryNormalizesKeys(t *testing.T) {
	r := NewKeyRegistry()

	if b := r.Lookup(" ", scopePlayer); b == nil || b.Action != actionPlayPause {
		t.Fatal("expected a literal space to resolve to play/pause")
	}
	if b := r.Lookup("Q", scopePlayer); b == nil || b.Action != actionToggleQueue {
		t.Fatal("expected uppercase Q to stay distinct from q")
	}
	if b := r.Lookup("q", scopePlayer); b == nil || b.Action != actionQuit {
		t.Fatal("expected lowercase q to quit")
	}
	if b := r.Lookup("return", scopeEditorHome); b == nil || b.Action != actionSelect {
		t.Fatal("expected return to alias enter")
	}
}

func TestKeyRegistryHelpBindings(t *testing.T) {
	r := NewKeyRegistry()

	help := r.HelpBindings(scopeWrappedLoaded)
	seen := map[string]bool{}
	for _, h := range help {
		entry := h.Help()
		if seen[entry.Desc] {
			t.Fatalf("help entry %q repeated", entry.Desc)
		}
		seen[entry.Desc] = true
		if entry.Desc == "jump" && entry.Key != "1-9" {
			t.Fatalf("jump help key = %q, want %q", entry.Key, "1-9")
		}
	}
	for _, want := range []string{"next", "prev", "jump", "replay", "close"} {
		if !seen[want] {
			t.Fatalf("missing help entry %q", want)
		}
	}
}
