package app

import (
	"testing"

	"github.com/evanschultz/noticeboard/internal/domain"
)

type recordingLogger struct {
	events []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.events = append(l.events, msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.events = append(l.events, msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.events = append(l.events, msg) }

func newTestNoticeBoard(t *testing.T, logger Logger, seed ...domain.NoteInput) *NoticeBoard {
	t.Helper()
	nb, err := NewNoticeBoard(Config{
		Board:      DefaultBoardConfig(),
		Seed:       seed,
		SessionIDs: sequentialIDs(),
		Clock:      fixedClock(),
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("NewNoticeBoard() error = %v", err)
	}
	return nb
}

// TestNoticeBoardScenario walks the add / pin / remove scenario end to end.
func TestNoticeBoardScenario(t *testing.T) {
	nb := newTestNoticeBoard(t, nil, domain.NoteInput{ID: 1, Text: "Note 1", X: 50, Y: 50})

	added := nb.Add()
	notes := nb.Notes()
	if len(notes) != 2 || added.ID != 2 || added.X != 0 || added.Y != 0 || added.Pinned {
		t.Fatalf("unexpected notes after add %#v", notes)
	}

	nb.SetPinned(1, true)
	pinned, _ := nb.Note(1)
	if pinned.X != 0 || pinned.Y != 0 || !pinned.Pinned {
		t.Fatalf("expected note 1 at anchor, got %#v", pinned)
	}

	// Note 2 shares the origin and renders on top; move it aside so presses reach note 1.
	nb.SetPosition(2, 400, 300)
	hit, started := nb.PointerDown(domain.Point{X: 10, Y: 10})
	if hit != 1 || started {
		t.Fatalf("expected pinned hit without drag, got hit=%d started=%t", hit, started)
	}
	if nb.PointerMove(domain.Point{X: 200, Y: 200}) {
		t.Fatal("expected pointer move on pinned note to be ignored")
	}
	nb.PointerUp()
	if _, started := nb.DragMove(1, domain.Point{X: 50, Y: 50}); started {
		t.Fatal("expected delta move on pinned note to be ignored")
	}
	if nb.Drop(1, domain.Point{X: 300, Y: 300}) || nb.Nudge(1, domain.Point{X: 10}) {
		t.Fatal("expected drop and nudge on pinned note to be refused")
	}
	pinned, _ = nb.Note(1)
	if pinned.X != 0 || pinned.Y != 0 {
		t.Fatalf("expected pinned note unchanged, got %v,%v", pinned.X, pinned.Y)
	}

	nb.Remove(2)
	notes = nb.Notes()
	if len(notes) != 1 || notes[0].ID != 1 {
		t.Fatalf("expected only note 1, got %#v", notes)
	}
	nb.Remove(2)
	if len(nb.Notes()) != 1 {
		t.Fatal("expected second remove to be a no-op")
	}
}

// TestNoticeBoardPointerDragLifecycle verifies press, move, release against a shifted frame.
func TestNoticeBoardPointerDragLifecycle(t *testing.T) {
	logger := &recordingLogger{}
	nb := newTestNoticeBoard(t, logger, domain.NoteInput{ID: 1, Text: "Note 1", X: 50, Y: 50})
	nb.SetFrame(domain.Rect{Origin: domain.Point{X: 0, Y: 20}, Size: domain.Size{Width: 600, Height: 400}})
	nb.BeginEdit(1)

	hit, started := nb.PointerDown(domain.Point{X: 60, Y: 80})
	if hit != 1 || !started {
		t.Fatalf("expected drag on note 1, got hit=%d started=%t", hit, started)
	}
	if _, editing := nb.Editing(); editing {
		t.Fatal("expected drag start to end editing")
	}
	if _, ok := nb.Dragging(); !ok {
		t.Fatal("expected active drag session")
	}
	if !nb.PointerMove(domain.Point{X: 1000, Y: 1000}) {
		t.Fatal("expected pointer move to apply")
	}
	note, _ := nb.Note(1)
	if note.X != 450 || note.Y != 300 {
		t.Fatalf("expected clamp to 450,300, got %v,%v", note.X, note.Y)
	}
	session, ok := nb.PointerUp()
	if !ok || !session.Moved || session.ID != "session-1" {
		t.Fatalf("unexpected session %#v", session)
	}
	if _, ok := nb.Dragging(); ok {
		t.Fatal("expected session released on pointer up")
	}

	if hit, started := nb.PointerDown(domain.Point{X: 5, Y: 25}); hit != 0 || started {
		t.Fatalf("expected empty hit, got %d/%t", hit, started)
	}

	found := false
	for _, event := range logger.events {
		if event == "drag session ended" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected drag lifecycle logged, got %v", logger.events)
	}
}

// TestNoticeBoardDeleteMidDrag verifies a removed note ends the drag without panicking.
func TestNoticeBoardDeleteMidDrag(t *testing.T) {
	nb := newTestNoticeBoard(t, nil, domain.NoteInput{ID: 1, X: 50, Y: 50})
	nb.PointerDown(domain.Point{X: 60, Y: 60})
	nb.Remove(1)
	if nb.PointerMove(domain.Point{X: 100, Y: 100}) {
		t.Fatal("expected move on removed note to be ignored")
	}
	if _, ok := nb.Dragging(); ok {
		t.Fatal("expected drag session released")
	}
	if _, ok := nb.PointerUp(); ok {
		t.Fatal("expected no session left to end")
	}
}

// TestNoticeBoardGestureHandler verifies veto and override for delta-driven gestures.
func TestNoticeBoardGestureHandler(t *testing.T) {
	nb := newTestNoticeBoard(t, nil,
		domain.NoteInput{ID: 1, X: 50, Y: 50},
		domain.NoteInput{ID: 2, Pinned: true},
	)
	var handler GestureHandler = nb

	if !handler.DragStart(1) {
		t.Fatal("expected unpinned note to accept gesture")
	}
	pos, applied := handler.DragMove(1, domain.Point{X: 30, Y: -10})
	if !applied || pos != (domain.Point{X: 80, Y: 40}) {
		t.Fatalf("unexpected move result %#v applied=%t", pos, applied)
	}
	pos, ok := handler.DragStop(1, domain.Point{X: 5000, Y: 5000})
	if !ok || pos != (domain.Point{X: 650, Y: 380}) {
		t.Fatalf("expected clamped stop at 650,380, got %#v", pos)
	}

	if handler.DragStart(2) {
		t.Fatal("expected pinned note to veto gesture")
	}
	if _, applied := handler.DragMove(2, domain.Point{X: 100, Y: 100}); applied {
		t.Fatal("expected pinned move to be ignored")
	}
	pos, ok = handler.DragStop(2, domain.Point{X: 100, Y: 100})
	if !ok || pos != (domain.Point{}) {
		t.Fatalf("expected pinned note to snap back to anchor, got %#v", pos)
	}
	note, _ := nb.Note(2)
	if note.X != 0 || note.Y != 0 {
		t.Fatalf("expected pinned note unchanged, got %v,%v", note.X, note.Y)
	}

	if handler.DragStart(99) {
		t.Fatal("expected missing note to veto gesture")
	}
	if _, ok := handler.DragStop(99, domain.Point{}); ok {
		t.Fatal("expected missing note stop to report absence")
	}
}

// TestNoticeBoardNudgeAndDrop verifies the keyboard and drop paths clamp.
func TestNoticeBoardNudgeAndDrop(t *testing.T) {
	nb := newTestNoticeBoard(t, nil, domain.NoteInput{ID: 1, X: 50, Y: 50})
	if !nb.Nudge(1, domain.Point{X: -100, Y: 10}) {
		t.Fatal("expected nudge to move note")
	}
	note, _ := nb.Note(1)
	if note.X != 0 || note.Y != 60 {
		t.Fatalf("expected nudge clamp to 0,60, got %v,%v", note.X, note.Y)
	}
	if nb.Nudge(1, domain.Point{X: -10}) {
		t.Fatal("expected nudge against the edge to report no change")
	}
	if !nb.Drop(1, domain.Point{X: 400, Y: 240}) {
		t.Fatal("expected drop to apply")
	}
	note, _ = nb.Note(1)
	if note.X != 325 || note.Y != 190 {
		t.Fatalf("expected centred drop at 325,190, got %v,%v", note.X, note.Y)
	}
}

// TestNoticeBoardEditing verifies the facade edit operations.
func TestNoticeBoardEditing(t *testing.T) {
	nb := newTestNoticeBoard(t, nil, domain.NoteInput{ID: 1, Text: "Note 1"})
	nb.ToggleEdit(1)
	nb.CommitEdit("abc")
	nb.EndEdit()
	note, _ := nb.Note(1)
	if note.Text != "abc" || note.Editing {
		t.Fatalf("unexpected note %#v", note)
	}
	nb.SetText(1, "direct")
	nb.TogglePin(1)
	note, _ = nb.Note(1)
	if note.Text != "direct" || !note.Pinned {
		t.Fatalf("unexpected note %#v", note)
	}
}

// TestNoticeBoardFrameShrinkClampsNotes verifies notes stay reachable after the host shrinks the board.
func TestNoticeBoardFrameShrinkClampsNotes(t *testing.T) {
	cfg := DefaultBoardConfig()
	cfg.Size = domain.Size{Width: 1000, Height: 500}
	cfg.PinAnchor = domain.Point{X: 700, Y: 350}
	logger := &recordingLogger{}
	nb, err := NewNoticeBoard(Config{
		Board: cfg,
		Seed: []domain.NoteInput{
			{ID: 1, Text: "Note 1", X: 800, Y: 300},
			{ID: 2, Text: "pinned", Pinned: true},
			{ID: 3, Text: "inside", X: 10, Y: 20},
		},
		SessionIDs: sequentialIDs(),
		Clock:      fixedClock(),
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("NewNoticeBoard() error = %v", err)
	}

	nb.SetFrame(domain.Rect{Origin: domain.Point{Y: 20}, Size: domain.Size{Width: 400, Height: 160}})

	moved, _ := nb.Note(1)
	if moved.X != 250 || moved.Y != 60 {
		t.Fatalf("expected note 1 clamped to (250, 60), got (%v, %v)", moved.X, moved.Y)
	}
	pinned, _ := nb.Note(2)
	if pinned.X != 700 || pinned.Y != 350 {
		t.Fatalf("expected pinned note to keep its anchor, got (%v, %v)", pinned.X, pinned.Y)
	}
	inside, _ := nb.Note(3)
	if inside.X != 10 || inside.Y != 20 {
		t.Fatalf("expected note 3 untouched, got (%v, %v)", inside.X, inside.Y)
	}
	if !containsEvent(logger.events, "notes clamped into frame") {
		t.Fatalf("expected clamp event, got %v", logger.events)
	}

	nb.SetFrame(domain.Rect{})
	moved, _ = nb.Note(1)
	if moved.X != 250 || moved.Y != 60 {
		t.Fatalf("expected empty frame to leave notes alone, got (%v, %v)", moved.X, moved.Y)
	}
}

// TestNoticeBoardAddFailureIsLogged verifies a board that cannot build a note reports it instead of a note id.
func TestNoticeBoardAddFailureIsLogged(t *testing.T) {
	logger := &recordingLogger{}
	nb := &NoticeBoard{logger: logger}

	note := nb.Add()
	if note.ID != 0 || len(nb.Notes()) != 0 {
		t.Fatalf("expected no note from zero board, got %#v", note)
	}
	if !containsEvent(logger.events, "note add failed") || containsEvent(logger.events, "note added") {
		t.Fatalf("expected add failure event only, got %v", logger.events)
	}
}

func containsEvent(events []string, want string) bool {
	for _, event := range events {
		if event == want {
			return true
		}
	}
	return false
}
