package app

import (
	"strings"
)

// EffectBrowser holds the effect list the viewer cycles through, with a
// case-insensitive substring filter.
type EffectBrowser struct {
	all      []string
	filtered []string
	index    int
	query    string
}

// NewEffectBrowser creates a browser over names (expected sorted).
func NewEffectBrowser(names []string) *EffectBrowser {
	b := &EffectBrowser{}
	b.SetNames(names)
	return b
}

// SetNames replaces the list, keeping the current selection when it still
// exists.
func (b *EffectBrowser) SetNames(names []string) {
	current, _ := b.Current()
	b.all = append([]string(nil), names...)
	b.apply()
	if current != "" {
		b.Select(current)
	}
}

// filterEffects returns names matching query (case-insensitive substring).
func filterEffects(names []string, query string) []string {
	if query == "" {
		return names
	}

	q := strings.ToLower(query)
	filtered := make([]string, 0)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

func (b *EffectBrowser) apply() {
	b.filtered = filterEffects(b.all, b.query)
	if b.index >= len(b.filtered) {
		b.index = 0
	}
}

// SetQuery filters the list and resets the selection to the first match.
func (b *EffectBrowser) SetQuery(q string) {
	b.query = q
	b.filtered = filterEffects(b.all, q)
	b.index = 0
}

// Query returns the current filter.
func (b *EffectBrowser) Query() string {
	return b.query
}

// AppendQuery adds accepted characters (letters, digits, '_' and '-') to the
// filter.
func (b *EffectBrowser) AppendQuery(runes []rune) {
	added := false
	q := b.query
	for _, r := range runes {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			q += string(r)
			added = true
		}
	}
	if added {
		b.SetQuery(q)
	}
}

// Backspace removes the last filter character.
func (b *EffectBrowser) Backspace() {
	if len(b.query) == 0 {
		return
	}
	b.SetQuery(b.query[:len(b.query)-1])
}

// Current returns the selected name.
func (b *EffectBrowser) Current() (string, bool) {
	if len(b.filtered) == 0 {
		return "", false
	}
	return b.filtered[b.index], true
}

// Position returns the 1-based selection index and the filtered count.
func (b *EffectBrowser) Position() (int, int) {
	if len(b.filtered) == 0 {
		return 0, 0
	}
	return b.index + 1, len(b.filtered)
}

// Total returns the unfiltered count.
func (b *EffectBrowser) Total() int {
	return len(b.all)
}

// Next moves the selection forward by delta, wrapping around.
func (b *EffectBrowser) Next(delta int) {
	n := len(b.filtered)
	if n == 0 {
		return
	}
	b.index = ((b.index+delta)%n + n) % n
}

// First selects the first entry.
func (b *EffectBrowser) First() {
	b.index = 0
}

// Last selects the last entry.
func (b *EffectBrowser) Last() {
	if len(b.filtered) > 0 {
		b.index = len(b.filtered) - 1
	}
}

// JumpTo selects the i-th (0-based) entry if it exists.
func (b *EffectBrowser) JumpTo(i int) bool {
	if i < 0 || i >= len(b.filtered) {
		return false
	}
	b.index = i
	return true
}

// Select selects name if it is in the filtered list.
func (b *EffectBrowser) Select(name string) bool {
	for i, n := range b.filtered {
		if n == name {
			b.index = i
			return true
		}
	}
	return false
}
