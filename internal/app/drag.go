package app

import (
	"time"

	"github.com/evanschultz/noticeboard/internal/domain"
)

// DragState is the drag controller state.
type DragState int

// DragIdle and DragDragging are the two controller states.
const (
	DragIdle DragState = iota
	DragDragging
)

// String returns a log-friendly state name.
func (s DragState) String() string {
	switch s {
	case DragDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// DragSession is one pointer gesture from press to release. The controller owns it: Begin
// creates it and End or Abort releases it, so no gesture state outlives its gesture.
type DragSession struct {
	ID        string
	NoteID    int
	Offset    domain.Point
	Size      domain.Size
	Origin    domain.Point
	Moved     bool
	StartedAt time.Time
}

// DragController moves notes under the pointer, clamped to the board frame.
type DragController struct {
	session *DragSession
	ids     IDGenerator
	clock   Clock
	logger  Logger
}

// NewDragController constructs a controller in the idle state.
func NewDragController(ids IDGenerator, clock Clock, logger Logger) *DragController {
	if ids == nil {
		ids = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &DragController{ids: ids, clock: clock, logger: logger}
}

// State reports whether a gesture is in progress.
func (c *DragController) State() DragState {
	if c.session == nil {
		return DragIdle
	}
	return DragDragging
}

// Session returns a copy of the active session.
func (c *DragController) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// Begin starts dragging note id. pointer is in host coordinates and frame is the board rectangle
// in the same coordinates. Pinned and missing notes never start a drag. Starting a drag ends
// editing on that note.
func (c *DragController) Begin(b Board, id int, pointer domain.Point, frame domain.Rect) (Board, bool) {
	if c.session != nil {
		c.Abort("superseded")
	}
	note, ok := b.Note(id)
	if !ok || note.Pinned {
		return b, false
	}
	local := pointer.Sub(frame.Origin)
	c.session = &DragSession{
		ID:        c.ids(),
		NoteID:    note.ID,
		Offset:    local.Sub(note.Position()),
		Size:      note.Size(),
		Origin:    note.Position(),
		StartedAt: c.clock().UTC(),
	}
	c.logger.Debug("drag session started", "session_id", c.session.ID, "note_id", note.ID)
	if note.Editing {
		b = b.SetEditing(note.ID, false)
	}
	return b, true
}

// Move repositions the dragged note so the pointer keeps its grab offset. A note that was
// deleted or pinned mid-gesture ends the session and leaves the board unchanged.
func (c *DragController) Move(b Board, pointer domain.Point, frame domain.Rect) (Board, bool) {
	if c.session == nil {
		return b, false
	}
	note, ok := b.Note(c.session.NoteID)
	if !ok {
		c.Abort("note removed")
		return b, false
	}
	if note.Pinned {
		c.Abort("note pinned")
		return b, false
	}
	local := pointer.Sub(frame.Origin)
	target := domain.ClampToBoard(local.Sub(c.session.Offset), c.session.Size, frame.Size)
	if target == note.Position() {
		return b, false
	}
	c.session.Moved = true
	return b.SetPosition(note.ID, target.X, target.Y), true
}

// End releases the active session on pointer-up and returns it.
func (c *DragController) End() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	ended := *c.session
	c.session = nil
	c.logger.Debug("drag session ended", "session_id", ended.ID, "note_id", ended.NoteID, "moved", ended.Moved)
	return ended, true
}

// Abort releases the active session without further action.
func (c *DragController) Abort(reason string) {
	if c.session == nil {
		return
	}
	c.logger.Debug("drag session aborted", "session_id", c.session.ID, "note_id", c.session.NoteID, "reason", reason)
	c.session = nil
}

// Drop places note id centred under the drop point, the native drag-and-drop behaviour. Unlike
// Move it ignores any grab offset. Pinned and missing notes are refused.
func (c *DragController) Drop(b Board, id int, drop domain.Point, frame domain.Rect) (Board, bool) {
	c.Abort("drop")
	note, ok := b.Note(id)
	if !ok || note.Pinned {
		return b, false
	}
	local := drop.Sub(frame.Origin)
	target := domain.ClampToBoard(domain.Point{
		X: local.X - note.Width/2,
		Y: local.Y - note.Height/2,
	}, note.Size(), frame.Size)
	c.logger.Debug("note dropped", "note_id", id, "x", target.X, "y", target.Y)
	if note.Editing {
		b = b.SetEditing(id, false)
	}
	return b.SetPosition(id, target.X, target.Y), true
}
