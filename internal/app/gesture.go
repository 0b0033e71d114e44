package app

import "github.com/evanschultz/noticeboard/internal/domain"

// GestureHandler is the capability a delta-reporting drag mechanism drives. The mechanism
// reports start, move, and stop with the delta from the gesture's press point; the handler may
// veto the gesture or override where the note actually goes. The handler owns positions, not the
// gesture's live transform.
type GestureHandler interface {
	// DragStart reports whether the note accepts the gesture.
	DragStart(id int) bool
	// DragMove returns the authoritative position and whether it was applied.
	DragMove(id int, delta domain.Point) (domain.Point, bool)
	// DragStop returns the position the note must be rendered at once the gesture ends.
	DragStop(id int, delta domain.Point) (domain.Point, bool)
}

// deltaGesture tracks one accepted delta gesture.
type deltaGesture struct {
	noteID int
	start  domain.Point
}

var _ GestureHandler = (*NoticeBoard)(nil)

// DragStart vetoes pinned and missing notes and ends editing on accepted ones.
func (nb *NoticeBoard) DragStart(id int) bool {
	nb.gesture = nil
	note, ok := nb.board.Note(id)
	if !ok || note.Pinned {
		nb.logger.Debug("delta gesture vetoed", "note_id", id, "found", ok)
		return false
	}
	if note.Editing {
		nb.board = nb.board.SetEditing(id, false)
	}
	nb.gesture = &deltaGesture{noteID: id, start: note.Position()}
	nb.logger.Debug("delta gesture started", "note_id", id)
	return true
}

// DragMove applies start+delta clamped to the board.
func (nb *NoticeBoard) DragMove(id int, delta domain.Point) (domain.Point, bool) {
	note, ok := nb.board.Note(id)
	if !ok {
		nb.gesture = nil
		return domain.Point{}, false
	}
	if nb.gesture == nil || nb.gesture.noteID != id || note.Pinned {
		return note.Position(), false
	}
	target := domain.ClampToBoard(nb.gesture.start.Add(delta), note.Size(), nb.frame.Size)
	nb.board = nb.board.SetPosition(id, target.X, target.Y)
	return target, true
}

// DragStop commits the gesture. Vetoed gestures, including every gesture on a pinned note,
// report the stored position so the host snaps the note back.
func (nb *NoticeBoard) DragStop(id int, delta domain.Point) (domain.Point, bool) {
	defer func() { nb.gesture = nil }()
	note, ok := nb.board.Note(id)
	if !ok {
		return domain.Point{}, false
	}
	if nb.gesture == nil || nb.gesture.noteID != id || note.Pinned {
		return note.Position(), true
	}
	target, _ := nb.DragMove(id, delta)
	nb.logger.Debug("delta gesture stopped", "note_id", id, "x", target.X, "y", target.Y)
	return target, true
}
