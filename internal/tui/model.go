package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/evanschultz/noticeboard/internal/app"
	"github.com/evanschultz/noticeboard/internal/domain"
)

// Service is the board behaviour the model drives. *app.NoticeBoard implements it.
type Service interface {
	app.GestureHandler
	Notes() []domain.Note
	Note(id int) (domain.Note, bool)
	Frame() domain.Rect
	SetFrame(frame domain.Rect)
	Add() domain.Note
	Remove(id int)
	TogglePin(id int)
	Editing() (domain.Note, bool)
	BeginEdit(id int)
	CommitEdit(text string)
	EndEdit()
	Dragging() (app.DragSession, bool)
	BeginDrag(id int, pointer domain.Point) bool
	PointerMove(pointer domain.Point) bool
	PointerUp() (app.DragSession, bool)
	AbortDrag(reason string)
	Drop(id int, pointer domain.Point) bool
	Nudge(id int, delta domain.Point) bool
}

var _ Service = (*app.NoticeBoard)(nil)

// ConfigChangedMsg tells a running model that the config file changed on disk.
type ConfigChangedMsg struct{}

// Model is the Bubble Tea model for the notice board.
type Model struct {
	svc Service

	title  string
	width  int
	height int
	ready  bool
	status string

	help    help.Model
	keys    keyMap
	runtime RuntimeConfig

	selectedID int
	editInput  textinput.Model
	showInfo   bool

	gesture        pointerGesture
	pendingMotion  cellPoint
	hasPending     bool
	frameScheduled bool

	markdown       *markdownRenderer
	writeClipboard func(string) error
	reloadConfig   ReloadConfigFunc
}

// frameMsg fires when coalesced pointer motion should be applied.
type frameMsg struct{}

// clipboardMsg reports the result of copying note text.
type clipboardMsg struct {
	noteID int
	err    error
}

// configReloadedMsg carries runtime settings loaded through the reload callback.
type configReloadedMsg struct {
	config RuntimeConfig
	err    error
}

// NewModel constructs a model driving svc.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "note text"
	input.CharLimit = 0
	m := Model{
		svc:            svc,
		title:          "noticeboard",
		status:         "ready",
		help:           h,
		keys:           newKeyMap(),
		runtime:        DefaultRuntimeConfig(),
		editInput:      input,
		markdown:       &markdownRenderer{},
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	if notes := svc.Notes(); len(notes) > 0 {
		m.selectedID = notes[len(notes)-1].ID
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.ready && (msg.Width != m.width || msg.Height != m.height) {
			m.abortGesture("window resized")
		}
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, m.width-2))
		m.syncFrame()
		return m, nil

	case tea.BlurMsg:
		m.abortGesture("focus lost")
		m.finishEdit()
		return m, nil

	case frameMsg:
		m.frameScheduled = false
		if m.hasPending {
			m.hasPending = false
			m.applyMotion(m.pendingMotion)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied note %d", msg.noteID)
		return m, nil

	case ConfigChangedMsg:
		return m, m.reloadRuntimeConfigCmd()

	case configReloadedMsg:
		if msg.err != nil {
			m.status = "reload config failed: " + msg.err.Error()
			return m, nil
		}
		m.applyRuntimeConfig(msg.config)
		m.status = "config reloaded"
		return m, nil

	case tea.KeyPressMsg:
		if _, editing := m.svc.Editing(); editing {
			return m.handleEditKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMousePress(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		if !m.editInput.Focused() {
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		if _, editing := m.svc.Editing(); editing {
			m.svc.CommitEdit(m.editInput.Value())
		}
		return m, cmd
	}
}

// handleEditKey routes keys to the note text input. Every keystroke is written through to the note.
func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case msg.String() == "enter", key.Matches(msg, m.keys.cancel):
		m.finishEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.svc.CommitEdit(m.editInput.Value())
	return m, cmd
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showInfo {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.noteInfo):
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.cancel):
		switch {
		case m.gesture.active:
			m.abortGesture("cancelled")
			m.status = "drag cancelled"
		case m.help.ShowAll:
			m.help.ShowAll = false
		}
		return m, nil
	case key.Matches(msg, m.keys.addNote):
		m.addNote()
		return m, nil
	case key.Matches(msg, m.keys.nextNote):
		m.cycleSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.prevNote):
		m.cycleSelection(-1)
		return m, nil
	}

	note, ok := m.selectedNote()
	if !ok {
		if isNoteAction(m.keys, msg) {
			m.status = "no note selected"
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.deleteNote):
		m.removeNote(note.ID)
	case key.Matches(msg, m.keys.togglePin):
		m.togglePin(note.ID)
	case key.Matches(msg, m.keys.editNote):
		return m, m.startEdit(note.ID)
	case key.Matches(msg, m.keys.noteInfo):
		m.showInfo = true
	case key.Matches(msg, m.keys.copyNote):
		return m, m.copyNoteCmd(note)
	case key.Matches(msg, m.keys.nudgeLeft):
		m.nudge(note, -1, 0)
	case key.Matches(msg, m.keys.nudgeRight):
		m.nudge(note, 1, 0)
	case key.Matches(msg, m.keys.nudgeUp):
		m.nudge(note, 0, -1)
	case key.Matches(msg, m.keys.nudgeDown):
		m.nudge(note, 0, 1)
	}
	return m, nil
}

func isNoteAction(k keyMap, msg tea.KeyPressMsg) bool {
	return key.Matches(msg, k.deleteNote, k.togglePin, k.editNote, k.noteInfo, k.copyNote,
		k.nudgeLeft, k.nudgeRight, k.nudgeUp, k.nudgeDown)
}

func (m *Model) addNote() {
	note := m.svc.Add()
	m.selectedID = note.ID
	m.status = fmt.Sprintf("added note %d", note.ID)
}

func (m *Model) removeNote(id int) {
	if m.gesture.active && m.gesture.noteID == id {
		m.abortGesture("note removed")
	}
	m.svc.Remove(id)
	if m.selectedID == id {
		m.selectedID = 0
		if notes := m.svc.Notes(); len(notes) > 0 {
			m.selectedID = notes[len(notes)-1].ID
		}
	}
	m.status = fmt.Sprintf("deleted note %d", id)
}

func (m *Model) togglePin(id int) {
	m.svc.TogglePin(id)
	note, ok := m.svc.Note(id)
	if !ok {
		return
	}
	if note.Pinned {
		m.status = fmt.Sprintf("pinned note %d", id)
		return
	}
	m.status = fmt.Sprintf("unpinned note %d", id)
}

func (m *Model) nudge(note domain.Note, dx, dy float64) {
	if note.Pinned {
		m.status = fmt.Sprintf("note %d is pinned", note.ID)
		return
	}
	cell := m.runtime.CellSize
	if m.svc.Nudge(note.ID, domain.Point{X: dx * cell.Width, Y: dy * cell.Height}) {
		moved, _ := m.svc.Note(note.ID)
		m.status = fmt.Sprintf("note %d at (%g, %g)", note.ID, moved.X, moved.Y)
	}
}

// startEdit puts note id in edit mode and focuses the text input on its text.
func (m *Model) startEdit(id int) tea.Cmd {
	m.abortGesture("edit")
	m.svc.BeginEdit(id)
	note, ok := m.svc.Editing()
	if !ok {
		return nil
	}
	m.selectedID = note.ID
	m.editInput.SetValue(note.Text)
	m.editInput.CursorEnd()
	m.editInput.SetWidth(max(1, m.noteCells(note).w-3))
	m.status = fmt.Sprintf("editing note %d", note.ID)
	return m.editInput.Focus()
}

// finishEdit blurs the text input and leaves edit mode.
func (m *Model) finishEdit() {
	note, ok := m.svc.Editing()
	m.editInput.Blur()
	if !ok {
		return
	}
	m.svc.CommitEdit(m.editInput.Value())
	m.svc.EndEdit()
	m.status = fmt.Sprintf("saved note %d", note.ID)
}

func (m *Model) toggleEdit(id int) tea.Cmd {
	if note, ok := m.svc.Editing(); ok && note.ID == id {
		m.finishEdit()
		return nil
	}
	m.finishEdit()
	return m.startEdit(id)
}

func (m Model) selectedNote() (domain.Note, bool) {
	if m.selectedID == 0 {
		return domain.Note{}, false
	}
	return m.svc.Note(m.selectedID)
}

func (m *Model) cycleSelection(delta int) {
	notes := m.svc.Notes()
	if len(notes) == 0 {
		m.selectedID = 0
		return
	}
	idx := -1
	for i, note := range notes {
		if note.ID == m.selectedID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(notes) - 1
	default:
		idx = (idx + delta + len(notes)) % len(notes)
	}
	m.selectedID = notes[idx].ID
	m.status = fmt.Sprintf("selected note %d", m.selectedID)
}

func (m Model) copyNoteCmd(note domain.Note) tea.Cmd {
	write := m.writeClipboard
	id, text := note.ID, note.Text
	return func() tea.Msg {
		if err := write(text); err != nil {
			return clipboardMsg{noteID: id, err: err}
		}
		return clipboardMsg{noteID: id}
	}
}

func (m *Model) applyRuntimeConfig(cfg RuntimeConfig) {
	defaults := DefaultRuntimeConfig()
	cfg.DragMode = normalizeDragMode(cfg.DragMode)
	if cfg.CellSize.Width <= 0 || cfg.CellSize.Height <= 0 {
		cfg.CellSize = defaults.CellSize
	}
	if cfg.FrameInterval < 0 {
		cfg.FrameInterval = 0
	}
	if m.gesture.active && (cfg.DragMode != m.runtime.DragMode || cfg.CellSize != m.runtime.CellSize) {
		m.abortGesture("config changed")
	}
	m.runtime = cfg
	m.keys.applyConfig(cfg.Keys)
	m.syncFrame()
}

// reloadRuntimeConfigCmd reloads runtime settings through the configured callback.
func (m Model) reloadRuntimeConfigCmd() tea.Cmd {
	if m.reloadConfig == nil {
		return func() tea.Msg {
			return configReloadedMsg{err: fmt.Errorf("config reload callback is unavailable")}
		}
	}
	reload := m.reloadConfig
	return func() tea.Msg {
		cfg, err := reload()
		if err != nil {
			return configReloadedMsg{err: err}
		}
		return configReloadedMsg{config: cfg}
	}
}

func frameTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// clamp clamps v into [minV, maxV].
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// truncate truncates s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		lines = lines[:maxLines]
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}
