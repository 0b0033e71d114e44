package domain

import "time"

// Defaults applied to notes created through the board's add control.
const (
	DefaultNoteText   = "New Note"
	DefaultNoteWidth  = 150
	DefaultNoteHeight = 100
)

// Note represents one sticky note on the board.
type Note struct {
	ID        int
	Text      string
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Pinned    bool
	Editing   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteInput holds input values for note construction.
type NoteInput struct {
	ID     int
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Pinned bool
}

// NewNote constructs a note. Text is kept verbatim; an empty body is a valid note.
func NewNote(in NoteInput, now time.Time) (Note, error) {
	if in.ID <= 0 {
		return Note{}, ErrInvalidID
	}
	if in.Width <= 0 || in.Height <= 0 {
		return Note{}, ErrInvalidSize
	}
	ts := now.UTC()
	return Note{
		ID:        in.ID,
		Text:      in.Text,
		X:         in.X,
		Y:         in.Y,
		Width:     in.Width,
		Height:    in.Height,
		Pinned:    in.Pinned,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// Position returns the note's top-left corner.
func (n Note) Position() Point {
	return Point{X: n.X, Y: n.Y}
}

// Size returns the note's fixed dimensions.
func (n Note) Size() Size {
	return Size{Width: n.Width, Height: n.Height}
}

// Bounds returns the rectangle the note covers.
func (n Note) Bounds() Rect {
	return Rect{Origin: n.Position(), Size: n.Size()}
}

// WithPosition returns a copy moved to p.
func (n Note) WithPosition(p Point, now time.Time) Note {
	n.X = p.X
	n.Y = p.Y
	n.UpdatedAt = now.UTC()
	return n
}

// WithText returns a copy carrying text.
func (n Note) WithText(text string, now time.Time) Note {
	n.Text = text
	n.UpdatedAt = now.UTC()
	return n
}

// WithEditing returns a copy with the edit flag set.
func (n Note) WithEditing(editing bool) Note {
	n.Editing = editing
	return n
}

// WithPinned returns a copy with the pin flag set. Pinning moves the note to anchor;
// unpinning leaves it where it is.
func (n Note) WithPinned(pinned bool, anchor Point, now time.Time) Note {
	if pinned && !n.Pinned {
		n.X = anchor.X
		n.Y = anchor.Y
	}
	n.Pinned = pinned
	n.UpdatedAt = now.UTC()
	return n
}
