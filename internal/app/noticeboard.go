package app

import (
	"time"

	"github.com/evanschultz/noticeboard/internal/domain"
)

// Config holds configuration for a notice board.
type Config struct {
	Board      BoardConfig
	Seed       []domain.NoteInput
	SessionIDs IDGenerator
	Clock      Clock
	Logger     Logger
}

// NoticeBoard owns the current note collection together with its drag and edit controllers. Hosts
// call it from their single input loop; it is not safe for concurrent use.
type NoticeBoard struct {
	board   Board
	frame   domain.Rect
	drag    *DragController
	edit    EditController
	gesture *deltaGesture
	logger  Logger
}

// NewNoticeBoard constructs a board seeded from cfg.
func NewNoticeBoard(cfg Config) (*NoticeBoard, error) {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	board, err := NewBoard(cfg.Board, cfg.Clock, cfg.Seed)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("notice board ready", "notes", board.Len(), "width", board.Size().Width, "height", board.Size().Height)
	return &NoticeBoard{
		board:  board,
		frame:  domain.Rect{Size: board.Size()},
		drag:   NewDragController(cfg.SessionIDs, cfg.Clock, cfg.Logger),
		logger: cfg.Logger,
	}, nil
}

// Snapshot returns the current immutable board value.
func (nb *NoticeBoard) Snapshot() Board {
	return nb.board
}

// Notes returns the notes in render order.
func (nb *NoticeBoard) Notes() []domain.Note {
	return nb.board.Notes()
}

// Note returns the note with id.
func (nb *NoticeBoard) Note(id int) (domain.Note, bool) {
	return nb.board.Note(id)
}

// Frame returns the board rectangle in host coordinates.
func (nb *NoticeBoard) Frame() domain.Rect {
	return nb.frame
}

// SetFrame records where the board sits in host coordinates and how large it is. Hosts call it
// whenever their layout changes; drag math always uses the latest frame. Unpinned notes left
// outside a smaller frame are pulled back inside it.
func (nb *NoticeBoard) SetFrame(frame domain.Rect) {
	if frame.Size.Width < 0 || frame.Size.Height < 0 {
		return
	}
	nb.frame = frame
	nb.board = nb.board.WithSize(frame.Size)
	if frame.Size.Width == 0 || frame.Size.Height == 0 {
		return
	}
	moved := 0
	for _, note := range nb.board.Notes() {
		if note.Pinned {
			continue
		}
		pos := domain.ClampToBoard(note.Position(), note.Size(), frame.Size)
		if pos == note.Position() {
			continue
		}
		nb.board = nb.board.SetPosition(note.ID, pos.X, pos.Y)
		moved++
	}
	if moved > 0 {
		nb.logger.Debug("notes clamped into frame", "notes", moved, "width", frame.Size.Width, "height", frame.Size.Height)
	}
}

// Add appends a default note.
func (nb *NoticeBoard) Add() domain.Note {
	var note domain.Note
	nb.board, note = nb.board.Add()
	if note.ID == 0 {
		nb.logger.Warn("note add failed", "notes", nb.board.Len())
		return note
	}
	nb.logger.Info("note added", "note_id", note.ID)
	return note
}

// Remove deletes note id. Absent ids are ignored. An in-flight drag on the note ends on its next move.
func (nb *NoticeBoard) Remove(id int) {
	if _, ok := nb.board.Note(id); !ok {
		return
	}
	nb.board = nb.board.Remove(id)
	nb.logger.Info("note removed", "note_id", id)
}

// SetPinned pins or unpins note id.
func (nb *NoticeBoard) SetPinned(id int, pinned bool) {
	nb.board = nb.board.SetPinned(id, pinned)
	nb.logger.Debug("note pin set", "note_id", id, "pinned", pinned)
}

// TogglePin flips the pin flag on note id.
func (nb *NoticeBoard) TogglePin(id int) {
	nb.board = nb.board.TogglePinned(id)
	if note, ok := nb.board.Note(id); ok {
		nb.logger.Debug("note pin toggled", "note_id", id, "pinned", note.Pinned)
	}
}

// SetPosition overwrites the position of note id without clamping.
func (nb *NoticeBoard) SetPosition(id int, x, y float64) {
	nb.board = nb.board.SetPosition(id, x, y)
}

// SetText replaces the text of note id.
func (nb *NoticeBoard) SetText(id int, text string) {
	nb.board = nb.board.SetText(id, text)
}

// Editing returns the note in edit mode.
func (nb *NoticeBoard) Editing() (domain.Note, bool) {
	return nb.edit.Active(nb.board)
}

// BeginEdit enters edit mode on note id.
func (nb *NoticeBoard) BeginEdit(id int) {
	nb.board = nb.edit.Begin(nb.board, id)
}

// CommitEdit writes text to the editing note.
func (nb *NoticeBoard) CommitEdit(text string) {
	nb.board = nb.edit.Commit(nb.board, text)
}

// EndEdit leaves edit mode.
func (nb *NoticeBoard) EndEdit() {
	nb.board = nb.edit.End(nb.board)
}

// ToggleEdit switches note id between display and edit mode.
func (nb *NoticeBoard) ToggleEdit(id int) {
	nb.board = nb.edit.Toggle(nb.board, id)
}

// Dragging returns the active pointer drag session.
func (nb *NoticeBoard) Dragging() (DragSession, bool) {
	return nb.drag.Session()
}

// PointerDown hit-tests pointer against the notes and starts a drag on the topmost note under it.
// It returns the hit note id (0 when nothing was hit) and whether a drag started.
func (nb *NoticeBoard) PointerDown(pointer domain.Point) (int, bool) {
	note, ok := nb.board.NoteAt(pointer.Sub(nb.frame.Origin))
	if !ok {
		return 0, false
	}
	return note.ID, nb.BeginDrag(note.ID, pointer)
}

// BeginDrag starts dragging note id for hosts that hit-test on their own.
func (nb *NoticeBoard) BeginDrag(id int, pointer domain.Point) bool {
	var started bool
	nb.gesture = nil
	nb.board, started = nb.drag.Begin(nb.board, id, pointer, nb.frame)
	return started
}

// PointerMove moves the dragged note and reports whether its position changed.
func (nb *NoticeBoard) PointerMove(pointer domain.Point) bool {
	var moved bool
	nb.board, moved = nb.drag.Move(nb.board, pointer, nb.frame)
	return moved
}

// PointerUp ends the active drag and returns the finished session.
func (nb *NoticeBoard) PointerUp() (DragSession, bool) {
	return nb.drag.End()
}

// AbortDrag ends any drag without further action.
func (nb *NoticeBoard) AbortDrag(reason string) {
	nb.drag.Abort(reason)
	nb.gesture = nil
}

// Drop places note id centred under pointer.
func (nb *NoticeBoard) Drop(id int, pointer domain.Point) bool {
	var dropped bool
	nb.board, dropped = nb.drag.Drop(nb.board, id, pointer, nb.frame)
	return dropped
}

// Nudge moves note id by delta, clamped to the board. Pinned notes do not move.
func (nb *NoticeBoard) Nudge(id int, delta domain.Point) bool {
	note, ok := nb.board.Note(id)
	if !ok || note.Pinned {
		return false
	}
	target := domain.ClampToBoard(note.Position().Add(delta), note.Size(), nb.frame.Size)
	if target == note.Position() {
		return false
	}
	nb.board = nb.board.SetPosition(id, target.X, target.Y)
	return true
}
