package app

import (
	"testing"

	"github.com/evanschultz/noticeboard/internal/domain"
)

// TestEditControllerRoundTrip verifies every keystroke commits and blur keeps the text.
func TestEditControllerRoundTrip(t *testing.T) {
	var c EditController
	b := newTestBoard(t, domain.NoteInput{ID: 1, Text: "Note 1"})

	b = c.Begin(b, 1)
	if active, ok := c.Active(b); !ok || active.ID != 1 {
		t.Fatalf("expected note 1 editing, got %#v ok=%t", active, ok)
	}
	for _, text := range []string{"a", "ab", "abc"} {
		b = c.Commit(b, text)
		note, _ := b.Note(1)
		if note.Text != text {
			t.Fatalf("expected immediate commit of %q, got %q", text, note.Text)
		}
	}
	b = c.End(b)
	note, _ := b.Note(1)
	if note.Text != "abc" || note.Editing {
		t.Fatalf("unexpected note after blur %#v", note)
	}
	if _, ok := c.Active(b); ok {
		t.Fatal("expected no active edit after blur")
	}
}

// TestEditControllerSingleActiveNote verifies focus moves between notes.
func TestEditControllerSingleActiveNote(t *testing.T) {
	var c EditController
	b := newTestBoard(t, domain.NoteInput{ID: 1}, domain.NoteInput{ID: 2})
	b = c.Begin(b, 1)
	b = c.Begin(b, 2)
	first, _ := b.Note(1)
	second, _ := b.Note(2)
	if first.Editing || !second.Editing {
		t.Fatalf("expected only note 2 editing, got %t/%t", first.Editing, second.Editing)
	}

	b = c.Toggle(b, 2)
	if _, ok := c.Active(b); ok {
		t.Fatal("expected toggle to leave edit mode")
	}
	b = c.Toggle(b, 1)
	if active, ok := c.Active(b); !ok || active.ID != 1 {
		t.Fatal("expected toggle to enter edit mode")
	}
}

// TestEditControllerMissingNotes verifies absent ids and commits without an editor are no-ops.
func TestEditControllerMissingNotes(t *testing.T) {
	var c EditController
	b := newTestBoard(t, domain.NoteInput{ID: 1, Text: "keep"})
	b = c.Begin(b, 42)
	b = c.Commit(b, "lost")
	note, _ := b.Note(1)
	if note.Text != "keep" || note.Editing {
		t.Fatalf("unexpected note %#v", note)
	}
	b = c.Begin(b, 1).Remove(1)
	if _, ok := c.Active(b); ok {
		t.Fatal("expected removed note to stop editing")
	}
}
