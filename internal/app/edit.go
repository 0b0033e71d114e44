package app

import "github.com/evanschultz/noticeboard/internal/domain"

// EditController moves notes between display and in-place editing. The board's Editing flags are
// the only state; at most one note edits at a time.
type EditController struct{}

// Active returns the note currently being edited.
func (EditController) Active(b Board) (domain.Note, bool) {
	for _, note := range b.notes {
		if note.Editing {
			return note, true
		}
	}
	return domain.Note{}, false
}

// Begin puts note id into edit mode and ends editing anywhere else.
func (c EditController) Begin(b Board, id int) Board {
	if _, ok := b.Note(id); !ok {
		return b
	}
	b = c.End(b)
	return b.SetEditing(id, true)
}

// Commit writes text to the editing note immediately. Without an editing note it is a no-op.
func (c EditController) Commit(b Board, text string) Board {
	note, ok := c.Active(b)
	if !ok {
		return b
	}
	return b.SetText(note.ID, text)
}

// End leaves edit mode, keeping whatever text was committed.
func (c EditController) End(b Board) Board {
	for {
		note, ok := c.Active(b)
		if !ok {
			return b
		}
		b = b.SetEditing(note.ID, false)
	}
}

// Toggle switches note id between display and edit mode.
func (c EditController) Toggle(b Board, id int) Board {
	note, ok := b.Note(id)
	if !ok {
		return b
	}
	if note.Editing {
		return b.SetEditing(id, false)
	}
	return c.Begin(b, id)
}
