package app

import (
	"fmt"
	"time"

	"github.com/evanschultz/noticeboard/internal/domain"
)

// BoardConfig holds configuration for a note collection.
type BoardConfig struct {
	Size        domain.Size
	NoteSize    domain.Size
	DefaultText string
	PinAnchor   domain.Point
}

// DefaultBoardConfig returns the board defaults: 150x100 notes reading "New Note", pinned to the origin.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Size:        domain.Size{Width: 800, Height: 480},
		NoteSize:    domain.Size{Width: domain.DefaultNoteWidth, Height: domain.DefaultNoteHeight},
		DefaultText: domain.DefaultNoteText,
	}
}

// Board is an immutable ordered note collection. Every mutation returns a new Board value and
// leaves the receiver untouched, so older values stay valid snapshots.
type Board struct {
	cfg    BoardConfig
	notes  []domain.Note
	nextID int
	clock  Clock
}

// NewBoard builds a board from cfg and seed notes. Seeds without an id get the next counter value;
// seeds without a size get the configured note size.
func NewBoard(cfg BoardConfig, clock Clock, seed []domain.NoteInput) (Board, error) {
	if clock == nil {
		clock = time.Now
	}
	cfg, err := sanitizeBoardConfig(cfg)
	if err != nil {
		return Board{}, err
	}

	b := Board{cfg: cfg, clock: clock, nextID: 1}
	for _, in := range seed {
		if in.ID > 0 && in.ID >= b.nextID {
			b.nextID = in.ID + 1
		}
	}

	now := clock()
	seen := make(map[int]struct{}, len(seed))
	notes := make([]domain.Note, 0, len(seed))
	for idx, in := range seed {
		if in.ID < 0 {
			return Board{}, fmt.Errorf("%w: seed[%d]: %w", ErrInvalidBoardConfig, idx, domain.ErrInvalidID)
		}
		if in.ID == 0 {
			in.ID = b.nextID
			b.nextID++
		}
		if _, ok := seen[in.ID]; ok {
			return Board{}, fmt.Errorf("%w: seed[%d]: duplicate id %d", ErrInvalidBoardConfig, idx, in.ID)
		}
		seen[in.ID] = struct{}{}
		if in.Width == 0 {
			in.Width = cfg.NoteSize.Width
		}
		if in.Height == 0 {
			in.Height = cfg.NoteSize.Height
		}
		note, err := domain.NewNote(in, now)
		if err != nil {
			return Board{}, fmt.Errorf("%w: seed[%d]: %w", ErrInvalidBoardConfig, idx, err)
		}
		if note.Pinned {
			note.X, note.Y = cfg.PinAnchor.X, cfg.PinAnchor.Y
		}
		notes = append(notes, note)
	}
	b.notes = notes
	return b, nil
}

// sanitizeBoardConfig fills zero values with defaults and rejects negative sizes.
func sanitizeBoardConfig(cfg BoardConfig) (BoardConfig, error) {
	defaults := DefaultBoardConfig()
	if cfg.Size.Width < 0 || cfg.Size.Height < 0 {
		return BoardConfig{}, fmt.Errorf("%w: board size %vx%v", ErrInvalidBoardConfig, cfg.Size.Width, cfg.Size.Height)
	}
	if cfg.NoteSize.Width < 0 || cfg.NoteSize.Height < 0 {
		return BoardConfig{}, fmt.Errorf("%w: note size %vx%v", ErrInvalidBoardConfig, cfg.NoteSize.Width, cfg.NoteSize.Height)
	}
	if cfg.Size == (domain.Size{}) {
		cfg.Size = defaults.Size
	}
	if cfg.NoteSize.Width == 0 {
		cfg.NoteSize.Width = defaults.NoteSize.Width
	}
	if cfg.NoteSize.Height == 0 {
		cfg.NoteSize.Height = defaults.NoteSize.Height
	}
	if cfg.DefaultText == "" {
		cfg.DefaultText = defaults.DefaultText
	}
	return cfg, nil
}

// Config returns the board's effective configuration.
func (b Board) Config() BoardConfig {
	return b.cfg
}

// Size returns the board dimensions.
func (b Board) Size() domain.Size {
	return b.cfg.Size
}

// WithSize returns a board with new dimensions. Note positions are left as they are.
func (b Board) WithSize(size domain.Size) Board {
	if size.Width < 0 || size.Height < 0 {
		return b
	}
	b.cfg.Size = size
	return b
}

// Len returns the number of notes.
func (b Board) Len() int {
	return len(b.notes)
}

// NextID returns the id the next Add will assign.
func (b Board) NextID() int {
	return b.nextID
}

// Notes returns a copy of the notes in render order.
func (b Board) Notes() []domain.Note {
	out := make([]domain.Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// Note returns the note with id.
func (b Board) Note(id int) (domain.Note, bool) {
	for _, note := range b.notes {
		if note.ID == id {
			return note, true
		}
	}
	return domain.Note{}, false
}

// NoteAt returns the topmost note covering p. Later notes render above earlier ones.
func (b Board) NoteAt(p domain.Point) (domain.Note, bool) {
	for idx := len(b.notes) - 1; idx >= 0; idx-- {
		if b.notes[idx].Bounds().Contains(p) {
			return b.notes[idx], true
		}
	}
	return domain.Note{}, false
}

// Add appends a default note at the origin and returns it with the new board.
func (b Board) Add() (Board, domain.Note) {
	if b.nextID < 1 {
		b.nextID = 1
	}
	note, err := domain.NewNote(domain.NoteInput{
		ID:     b.nextID,
		Text:   b.cfg.DefaultText,
		Width:  b.cfg.NoteSize.Width,
		Height: b.cfg.NoteSize.Height,
	}, b.now())
	if err != nil {
		// Only a zero Board gets here; NewBoard always carries a valid note size.
		return b, domain.Note{}
	}
	notes := make([]domain.Note, 0, len(b.notes)+1)
	notes = append(notes, b.notes...)
	notes = append(notes, note)
	b.notes = notes
	b.nextID++
	return b, note
}

// Remove drops the note with id. Absent ids are a no-op.
func (b Board) Remove(id int) Board {
	if _, ok := b.Note(id); !ok {
		return b
	}
	notes := make([]domain.Note, 0, len(b.notes)-1)
	for _, note := range b.notes {
		if note.ID != id {
			notes = append(notes, note)
		}
	}
	b.notes = notes
	return b
}

// SetPinned sets the pin flag. Pinning an unpinned note moves it to the pin anchor.
func (b Board) SetPinned(id int, pinned bool) Board {
	anchor := b.cfg.PinAnchor
	now := b.now()
	return b.update(id, func(n domain.Note) domain.Note {
		return n.WithPinned(pinned, anchor, now)
	})
}

// TogglePinned flips the pin flag.
func (b Board) TogglePinned(id int) Board {
	note, ok := b.Note(id)
	if !ok {
		return b
	}
	return b.SetPinned(id, !note.Pinned)
}

// SetPosition overwrites the note position. Callers clamp.
func (b Board) SetPosition(id int, x, y float64) Board {
	now := b.now()
	return b.update(id, func(n domain.Note) domain.Note {
		return n.WithPosition(domain.Point{X: x, Y: y}, now)
	})
}

// SetText replaces the note body.
func (b Board) SetText(id int, text string) Board {
	now := b.now()
	return b.update(id, func(n domain.Note) domain.Note {
		return n.WithText(text, now)
	})
}

// SetEditing sets the transient edit flag.
func (b Board) SetEditing(id int, editing bool) Board {
	return b.update(id, func(n domain.Note) domain.Note {
		return n.WithEditing(editing)
	})
}

// update replaces the note with id by fn(note) in a fresh slice.
func (b Board) update(id int, fn func(domain.Note) domain.Note) Board {
	for idx, note := range b.notes {
		if note.ID != id {
			continue
		}
		notes := make([]domain.Note, len(b.notes))
		copy(notes, b.notes)
		notes[idx] = fn(note)
		b.notes = notes
		return b
	}
	return b
}

// now returns the board clock reading.
func (b Board) now() time.Time {
	if b.clock == nil {
		return time.Now()
	}
	return b.clock()
}
