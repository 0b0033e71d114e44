package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
)

// TestParseBindingKeys verifies key parsing behavior for configured overrides.
func TestParseBindingKeys(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		keys     []string
		help     string
	}{
		{name: "space alias", raw: "space", fallback: ".", keys: []string{" ", "space"}, help: "space"},
		{name: "literal space", raw: " ", fallback: ".", keys: []string{" ", "space"}, help: "space"},
		{name: "uppercase adds shift alias", raw: "Z", fallback: "z", keys: []string{"Z", "shift+z"}, help: "Z"},
		{name: "multi rune lowercases matcher", raw: "Ctrl+R", fallback: "r", keys: []string{"ctrl+r"}, help: "Ctrl+R"},
		{name: "blank uses fallback", raw: "", fallback: "x", keys: []string{"x"}, help: "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keys, help := parseBindingKeys(tc.raw, tc.fallback)
			if len(keys) != len(tc.keys) {
				t.Fatalf("unexpected keys %#v, want %#v", keys, tc.keys)
			}
			for i := range keys {
				if keys[i] != tc.keys[i] {
					t.Fatalf("unexpected keys %#v, want %#v", keys, tc.keys)
				}
			}
			if help != tc.help {
				t.Fatalf("unexpected help %q, want %q", help, tc.help)
			}
		})
	}
}

// TestConfigureBinding verifies binding override application behavior.
func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "old"))
	configureBinding(&b, "a", "n", "new note")
	keys := b.Keys()
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("unexpected configured keys %#v", keys)
	}
	if b.Help().Key != "a" || b.Help().Desc != "new note" {
		t.Fatalf("unexpected configured help %#v", b.Help())
	}
}

// TestKeyMapApplyConfig verifies configured keys replace defaults and blanks keep them.
func TestKeyMapApplyConfig(t *testing.T) {
	k := newKeyMap()
	k.applyConfig(KeyConfig{
		AddNote:   "a",
		TogglePin: "P",
		NoteInfo:  "o",
	})

	assertKeys := func(name string, binding key.Binding, expected ...string) {
		t.Helper()
		got := binding.Keys()
		if len(got) != len(expected) {
			t.Fatalf("%s key count mismatch got=%#v expected=%#v", name, got, expected)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Fatalf("%s key mismatch got=%#v expected=%#v", name, got, expected)
			}
		}
	}

	assertKeys("add note", k.addNote, "a")
	assertKeys("toggle pin", k.togglePin, "P", "shift+p")
	assertKeys("note info", k.noteInfo, "o")
	assertKeys("delete note", k.deleteNote, "d")
	assertKeys("copy note", k.copyNote, "y")

	k.applyConfig(KeyConfig{})
	assertKeys("note info reset", k.noteInfo, "i", "enter")
	assertKeys("add note reset", k.addNote, "n")
}
