package tui

import (
	"fmt"
	"math"

	tea "charm.land/bubbletea/v2"

	"github.com/evanschultz/noticeboard/internal/domain"
)

// boardTop is the first screen row of the board, below the header.
const boardTop = 1

// footerHeight covers the status line and the bordered help line.
const footerHeight = 3

type cellPoint struct {
	X, Y int
}

// cellRect is a note's box in board cells.
type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type hitTarget int

const (
	targetBody hitTarget = iota
	targetText
	targetDelete
	targetPin
	targetEdit
)

// pointerGesture tracks one mouse press on a note body until release.
type pointerGesture struct {
	active   bool
	noteID   int
	mode     DragMode
	press    cellPoint
	start    domain.Point
	size     domain.Size
	accepted bool
	moved    bool
	ghost    domain.Point
	hasGhost bool
}

// boardCells returns the board size in cells.
func (m Model) boardCells() (cols, rows int) {
	cols = m.width
	rows = m.height - boardTop - footerHeight
	cell := m.runtime.CellSize
	if w := m.runtime.BoardSize.Width; w > 0 {
		cols = min(cols, int(math.Ceil(w/cell.Width)))
	}
	if h := m.runtime.BoardSize.Height; h > 0 {
		rows = min(rows, int(math.Ceil(h/cell.Height)))
	}
	return max(cols, 0), max(rows, 0)
}

// boardFrame returns the board rectangle in host units.
func (m Model) boardFrame() domain.Rect {
	cols, rows := m.boardCells()
	cell := m.runtime.CellSize
	size := domain.Size{Width: float64(cols) * cell.Width, Height: float64(rows) * cell.Height}
	if w := m.runtime.BoardSize.Width; w > 0 {
		size.Width = math.Min(size.Width, w)
	}
	if h := m.runtime.BoardSize.Height; h > 0 {
		size.Height = math.Min(size.Height, h)
	}
	return domain.Rect{
		Origin: domain.Point{Y: boardTop * cell.Height},
		Size:   size,
	}
}

func (m *Model) syncFrame() {
	if !m.ready {
		return
	}
	m.svc.SetFrame(m.boardFrame())
}

// pointerAt maps a screen cell to host units at the cell's centre.
func (m Model) pointerAt(c cellPoint) domain.Point {
	cell := m.runtime.CellSize
	return domain.Point{
		X: (float64(c.X) + 0.5) * cell.Width,
		Y: (float64(c.Y) + 0.5) * cell.Height,
	}
}

// noteCells returns the note's box relative to the board's top-left cell.
func (m Model) noteCells(note domain.Note) cellRect {
	return m.cellsAt(note.Position(), note.Size())
}

func (m Model) cellsAt(pos domain.Point, size domain.Size) cellRect {
	cell := m.runtime.CellSize
	return cellRect{
		x: int(math.Round(pos.X / cell.Width)),
		y: int(math.Round(pos.Y / cell.Height)),
		w: max(4, int(math.Round(size.Width/cell.Width))),
		h: max(3, int(math.Round(size.Height/cell.Height))),
	}
}

// hitTest finds the topmost note under screen cell (x, y) and the part of it that was hit.
func (m Model) hitTest(x, y int) (domain.Note, hitTarget, bool) {
	by := y - boardTop
	cols, rows := m.boardCells()
	if x < 0 || by < 0 || x >= cols || by >= rows {
		return domain.Note{}, targetBody, false
	}
	notes := m.svc.Notes()
	for i := len(notes) - 1; i >= 0; i-- {
		note := notes[i]
		rect := m.noteCells(note)
		if !rect.contains(x, by) {
			continue
		}
		localX, localY := x-rect.x-1, by-rect.y-1
		if localY == 0 && localX >= 0 {
			for _, span := range noteControls(note, rect.w-2) {
				if localX >= span.start && localX < span.end {
					return note, span.target, true
				}
			}
		}
		if note.Editing && localY == 1 {
			return note, targetText, true
		}
		return note, targetBody, true
	}
	return domain.Note{}, targetBody, false
}

// addControlSpan returns the header columns of the add control.
func (m Model) addControlSpan() (int, int) {
	start := len([]rune(m.title)) + 1
	return start, start + len(addControlLabel)
}

func (m Model) handleMousePress(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	if m.showInfo || m.help.ShowAll {
		m.showInfo = false
		m.help.ShowAll = false
		return m, nil
	}
	m.abortGesture("new press")

	if msg.Y == 0 {
		start, end := m.addControlSpan()
		if msg.X >= start && msg.X < end {
			m.finishEdit()
			m.addNote()
		}
		return m, nil
	}

	note, target, ok := m.hitTest(msg.X, msg.Y)
	if editing, active := m.svc.Editing(); active {
		keep := ok && note.ID == editing.ID && target != targetBody
		if !keep {
			m.finishEdit()
		}
	}
	if !ok {
		return m, nil
	}
	m.selectedID = note.ID
	switch target {
	case targetDelete:
		m.removeNote(note.ID)
	case targetPin:
		m.togglePin(note.ID)
	case targetEdit:
		return m, m.toggleEdit(note.ID)
	case targetBody:
		m.beginGesture(note, cellPoint{X: msg.X, Y: msg.Y})
	}
	return m, nil
}

// beginGesture records a press on a note body and starts the drag the active mode calls for.
func (m *Model) beginGesture(note domain.Note, press cellPoint) {
	g := pointerGesture{
		active: true,
		noteID: note.ID,
		mode:   m.runtime.DragMode,
		press:  press,
		start:  note.Position(),
		size:   note.Size(),
	}
	switch g.mode {
	case DragModeDrop:
		g.accepted = !note.Pinned
	case DragModeDelta:
		g.accepted = m.svc.DragStart(note.ID)
	default:
		g.accepted = m.svc.BeginDrag(note.ID, m.pointerAt(press))
	}
	m.gesture = g
}

func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if !m.gesture.active {
		return m, nil
	}
	c := cellPoint{X: msg.X, Y: msg.Y}
	if m.runtime.FrameInterval <= 0 {
		m.applyMotion(c)
		return m, nil
	}
	m.pendingMotion = c
	m.hasPending = true
	if m.frameScheduled {
		return m, nil
	}
	m.frameScheduled = true
	return m, frameTick(m.runtime.FrameInterval)
}

// applyMotion feeds one pointer position into the active gesture.
func (m *Model) applyMotion(c cellPoint) {
	g := &m.gesture
	if !g.active {
		return
	}
	if c != g.press {
		g.moved = true
	}
	switch g.mode {
	case DragModeDrop:
		if !g.accepted {
			return
		}
		local := m.pointerAt(c).Sub(m.boardFrame().Origin)
		g.ghost = domain.Point{X: local.X - g.size.Width/2, Y: local.Y - g.size.Height/2}
		g.hasGhost = true
	case DragModeDelta:
		delta := m.gestureDelta(c)
		if _, applied := m.svc.DragMove(g.noteID, delta); applied {
			g.hasGhost = false
			return
		}
		if _, ok := m.svc.Note(g.noteID); !ok {
			m.gesture = pointerGesture{}
			return
		}
		g.ghost = g.start.Add(delta)
		g.hasGhost = true
	default:
		if !g.accepted {
			return
		}
		m.svc.PointerMove(m.pointerAt(c))
		if _, ok := m.svc.Dragging(); !ok {
			g.accepted = false
		}
	}
}

func (m Model) gestureDelta(c cellPoint) domain.Point {
	return m.gestureDeltaFrom(m.gesture, c)
}

func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if !m.gesture.active {
		return m, nil
	}
	if m.hasPending {
		m.hasPending = false
		m.applyMotion(m.pendingMotion)
	}
	c := cellPoint{X: msg.X, Y: msg.Y}
	if c != m.gesture.press || m.gesture.moved {
		m.applyMotion(c)
	}
	g := m.gesture
	m.gesture = pointerGesture{}

	switch g.mode {
	case DragModeDrop:
		if g.moved && g.accepted && m.svc.Drop(g.noteID, m.pointerAt(c)) {
			m.reportPosition(g.noteID, "dropped")
		}
	case DragModeDelta:
		if pos, ok := m.svc.DragStop(g.noteID, m.gestureDeltaFrom(g, c)); ok && g.moved {
			m.status = fmt.Sprintf("note %d at (%g, %g)", g.noteID, pos.X, pos.Y)
		}
	default:
		if session, ok := m.svc.PointerUp(); ok && session.Moved {
			m.reportPosition(g.noteID, "moved")
		}
	}

	if !g.moved {
		return m, m.clickNote(g.noteID)
	}
	if !g.accepted {
		if note, ok := m.svc.Note(g.noteID); ok && note.Pinned {
			m.status = fmt.Sprintf("note %d is pinned", g.noteID)
		}
	}
	return m, nil
}

func (m Model) gestureDeltaFrom(g pointerGesture, c cellPoint) domain.Point {
	cell := m.runtime.CellSize
	return domain.Point{
		X: float64(c.X-g.press.X) * cell.Width,
		Y: float64(c.Y-g.press.Y) * cell.Height,
	}
}

// clickNote handles a press and release on a note body without movement.
func (m *Model) clickNote(id int) tea.Cmd {
	note, ok := m.svc.Note(id)
	if !ok || note.Editing {
		return nil
	}
	return m.startEdit(id)
}

func (m *Model) reportPosition(id int, verb string) {
	if note, ok := m.svc.Note(id); ok {
		m.status = fmt.Sprintf("%s note %d at (%g, %g)", verb, id, note.X, note.Y)
	}
}

// abortGesture drops any gesture in flight without committing it.
func (m *Model) abortGesture(reason string) {
	m.hasPending = false
	if !m.gesture.active {
		return
	}
	if m.gesture.mode != DragModeDrop {
		m.svc.AbortDrag(reason)
	}
	m.gesture = pointerGesture{}
}
