package tui

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
)

// keyMap holds the board's key bindings.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	cancel     key.Binding
	addNote    key.Binding
	deleteNote key.Binding
	togglePin  key.Binding
	editNote   key.Binding
	noteInfo   key.Binding
	copyNote   key.Binding
	nextNote   key.Binding
	prevNote   key.Binding
	nudgeLeft  key.Binding
	nudgeRight key.Binding
	nudgeUp    key.Binding
	nudgeDown  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		addNote:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		deleteNote: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete note")),
		togglePin:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin/unpin")),
		editNote:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit/save")),
		noteInfo:   key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "note details")),
		copyNote:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		nextNote:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next note")),
		prevNote:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous note")),
		nudgeLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "nudge left")),
		nudgeRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "nudge right")),
		nudgeUp:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "nudge up")),
		nudgeDown:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "nudge down")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addNote, k.editNote, k.togglePin, k.deleteNote, k.nextNote, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addNote, k.editNote, k.togglePin, k.deleteNote, k.noteInfo, k.copyNote},
		{k.nextNote, k.prevNote, k.nudgeLeft, k.nudgeRight, k.nudgeUp, k.nudgeDown},
		{k.cancel, k.toggleHelp, k.quit},
	}
}

// applyConfig rebinds the configurable actions; blank entries keep the defaults.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addNote, cfg.AddNote, "n", "new note")
	configureBinding(&k.deleteNote, cfg.DeleteNote, "d", "delete note")
	configureBinding(&k.togglePin, cfg.TogglePin, "p", "pin/unpin")
	configureBinding(&k.editNote, cfg.EditNote, "e", "edit/save")
	configureBinding(&k.copyNote, cfg.CopyNote, "y", "copy text")
	if strings.TrimSpace(cfg.NoteInfo) == "" {
		k.noteInfo = key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "note details"))
		return
	}
	configureBinding(&k.noteInfo, cfg.NoteInfo, "i", "note details")
}

func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a configured key into matcher keys and a help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if raw != "" {
			value = "space"
		} else {
			value = strings.TrimSpace(fallback)
		}
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	runes := []rune(value)
	if len(runes) == 1 {
		if unicode.IsUpper(runes[0]) {
			return []string{value, "shift+" + strings.ToLower(value)}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}
