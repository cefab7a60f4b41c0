package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps keys to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal        = "global"
	scopePlayer        = "player"
	scopePlayerQueue   = "player_queue"
	scopeNotification  = "notification"
	scopeEditorHome    = "editor_home"
	scopeEditorTabs    = "editor_tabs"
	scopeEditorPicker  = "editor_picker"
	scopeWrapped       = "wrapped"
	scopeWrappedLoaded = "wrapped_loaded"
)

const (
	actionQuit          Action = "quit"
	actionOpenWrapped   Action = "open_wrapped"
	actionToggleTheme   Action = "toggle_theme"
	actionUp            Action = "up"
	actionDown          Action = "down"
	actionLeft          Action = "left"
	actionRight         Action = "right"
	actionSelect        Action = "select"
	actionPlayPause     Action = "play_pause"
	actionNextProject   Action = "next_project"
	actionPrevProject   Action = "prev_project"
	actionToggleQueue   Action = "toggle_queue"
	actionDismiss       Action = "dismiss"
	actionNextTab       Action = "next_tab"
	actionPrevTab       Action = "prev_tab"
	actionCloseTab      Action = "close_tab"
	actionAddTab        Action = "add_tab"
	actionGotoTab       Action = "goto_tab"
	actionCancel        Action = "cancel"
	actionNextSlide     Action = "next_slide"
	actionPrevSlide     Action = "prev_slide"
	actionJumpSlide     Action = "jump_slide"
	actionCloseWrapped  Action = "close_wrapped"
	actionRestartSlides Action = "restart_slides"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionOpenWrapped, []string{"w"}, "wrapped")
	reg(scopeGlobal, actionToggleTheme, []string{"t"}, "theme")

	reg(scopePlayer, actionUp, []string{"k", "up"}, "section")
	reg(scopePlayer, actionDown, []string{"j", "down"}, "section")
	reg(scopePlayer, actionSelect, []string{"enter"}, "go")
	reg(scopePlayer, actionPlayPause, []string{"space"}, "play/pause")
	reg(scopePlayer, actionNextProject, []string{"n", "right"}, "next")
	reg(scopePlayer, actionPrevProject, []string{"p", "left"}, "prev")
	reg(scopePlayer, actionToggleQueue, []string{"Q"}, "queue")
	reg(scopePlayer, actionOpenWrapped, []string{"w"}, "wrapped")
	reg(scopePlayer, actionToggleTheme, []string{"t"}, "theme")
	reg(scopePlayer, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePlayerQueue, actionUp, []string{"k", "up"}, "navigate")
	reg(scopePlayerQueue, actionDown, []string{"j", "down"}, "navigate")
	reg(scopePlayerQueue, actionSelect, []string{"enter"}, "play")
	reg(scopePlayerQueue, actionToggleQueue, []string{"Q", "esc"}, "close queue")

	reg(scopeNotification, actionOpenWrapped, []string{"w", "enter"}, "play wrapped")
	reg(scopeNotification, actionDismiss, []string{"x"}, "dismiss")

	reg(scopeEditorHome, actionLeft, []string{"h", "left"}, "move")
	reg(scopeEditorHome, actionRight, []string{"l", "right"}, "move")
	reg(scopeEditorHome, actionSelect, []string{"enter"}, "open")
	reg(scopeEditorHome, actionOpenWrapped, []string{"w"}, "wrapped")
	reg(scopeEditorHome, actionToggleTheme, []string{"t"}, "theme")
	reg(scopeEditorHome, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeEditorTabs, actionNextTab, []string{"tab", "l", "right"}, "next tab")
	reg(scopeEditorTabs, actionPrevTab, []string{"shift+tab", "h", "left"}, "prev tab")
	reg(scopeEditorTabs, actionGotoTab, []string{"1", "2", "3"}, "go to tab")
	reg(scopeEditorTabs, actionCloseTab, []string{"x"}, "close")
	reg(scopeEditorTabs, actionAddTab, []string{"+", "o"}, "add tab")
	reg(scopeEditorTabs, actionOpenWrapped, []string{"w"}, "wrapped")
	reg(scopeEditorTabs, actionToggleTheme, []string{"t"}, "theme")
	reg(scopeEditorTabs, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeEditorPicker, actionUp, []string{"up", "ctrl+p"}, "navigate")
	reg(scopeEditorPicker, actionDown, []string{"down", "ctrl+n"}, "navigate")
	reg(scopeEditorPicker, actionSelect, []string{"enter"}, "open")
	reg(scopeEditorPicker, actionCancel, []string{"esc"}, "cancel")

	reg(scopeWrapped, actionCloseWrapped, []string{"esc", "q"}, "close")
	reg(scopeWrapped, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeWrappedLoaded, actionNextSlide, []string{"l", "right", "space", "enter"}, "next")
	reg(scopeWrappedLoaded, actionPrevSlide, []string{"h", "left"}, "prev")
	reg(scopeWrappedLoaded, actionJumpSlide, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "jump")
	reg(scopeWrappedLoaded, actionRestartSlides, []string{"r"}, "replay")
	reg(scopeWrappedLoaded, actionCloseWrapped, []string{"esc", "q"}, "close")
	reg(scopeWrappedLoaded, actionQuit, []string{"ctrl+c"}, "quit")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// Action resolves a key message to an action, or "" when unbound.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) Action {
	if b := r.Lookup(msg.String(), scope); b != nil {
		return b.Action
	}
	return ""
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	seen := make(map[Action]bool, len(items))
	for _, b := range items {
		// one footer entry per action keeps up/down pairs from repeating
		if len(b.Keys) == 0 || seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKeyLabel(b), b.Help)))
	}
	return out
}

func helpKeyLabel(b Binding) string {
	switch b.Action {
	case actionUp, actionDown:
		return "j/k"
	case actionLeft, actionRight:
		return "h/l"
	case actionGotoTab:
		return "1-3"
	case actionJumpSlide:
		return "1-9"
	}
	return b.Keys[0]
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// keep single uppercase keys distinct from lowercase ones
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}
