package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/evanschultz/noticeboard/internal/domain"
)

const addControlLabel = "[+]"

var (
	accentColor = lipgloss.Color("62")
	mutedColor  = lipgloss.Color("241")
	dimColor    = lipgloss.Color("239")
	pinColor    = lipgloss.Color("214")
	editColor   = lipgloss.Color("212")
	deleteColor = lipgloss.Color("203")
	noteColor   = lipgloss.Color("245")
)

// pinnedBorder marks pinned notes in the top-left corner.
var pinnedBorder = func() lipgloss.Border {
	b := lipgloss.ThickBorder()
	b.TopLeft = "◆"
	return b
}()

var ghostBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// controlSpan is one clickable label on a note's first inner row.
type controlSpan struct {
	target hitTarget
	label  string
	start  int
	end    int
}

// noteControls lays out the note's controls within width columns, dropping those that do not fit.
func noteControls(note domain.Note, width int) []controlSpan {
	pin := "Pin"
	if note.Pinned {
		pin = "Unpin"
	}
	edit := "Edit"
	if note.Editing {
		edit = "Save"
	}
	candidates := []controlSpan{
		{target: targetDelete, label: "x"},
		{target: targetPin, label: pin},
		{target: targetEdit, label: edit},
	}
	out := make([]controlSpan, 0, len(candidates))
	col := 0
	for _, c := range candidates {
		n := len(c.label)
		if col+n > width {
			break
		}
		c.start, c.end = col, col+n
		out = append(out, c)
		col += n + 1
	}
	return out
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	v.ReportFocus = true
	return v
}

// render builds the full screen as a string.
func (m Model) render() string {
	if !m.ready {
		return "loading..."
	}

	header := m.renderHeader()
	board := m.renderBoard()
	status := lipgloss.NewStyle().Foreground(dimColor).Render(truncate(m.status, max(1, m.width)))

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpLine := lipgloss.NewStyle().
		Foreground(mutedColor).
		BorderTop(true).
		BorderForeground(dimColor).
		Padding(0, 1).
		Render(helpBubble.View(m.keys))

	content := strings.Join([]string{header, board, status, helpLine}, "\n")
	if overlay := m.renderOverlay(); overlay != "" {
		content = overlayOnContent(content, overlay, max(1, m.width), max(1, m.height))
	}
	return content
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	addStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	infoStyle := lipgloss.NewStyle().Foreground(mutedColor)

	count := len(m.svc.Notes())
	noun := "notes"
	if count == 1 {
		noun = "note"
	}
	info := fmt.Sprintf("  %d %s  drag: %s", count, noun, m.runtime.DragMode)
	if m.gesture.active && m.gesture.accepted {
		info += fmt.Sprintf("  dragging #%d", m.gesture.noteID)
	}
	line := titleStyle.Render(m.title) + " " + addStyle.Render(addControlLabel) + infoStyle.Render(info)
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

// renderBoard composes every note as a canvas layer in render order, topmost last.
func (m Model) renderBoard() string {
	cols, rows := m.boardCells()
	if cols <= 0 || rows <= 0 {
		return ""
	}
	canvas := lipgloss.NewCanvas(cols, rows)
	notes := m.svc.Notes()
	for i, note := range notes {
		rect := m.noteCells(note)
		layer := lipgloss.NewLayer(m.renderNote(note, rect)).X(rect.x).Y(rect.y).Z(i + 1)
		canvas.Compose(layer)
	}
	if m.gesture.active && m.gesture.hasGhost {
		rect := m.cellsAt(m.gesture.ghost, m.gesture.size)
		ghost := renderBox(nil, rect.w-2, rect.h-2, lipgloss.NewStyle().Border(ghostBorder).BorderForeground(accentColor))
		canvas.Compose(lipgloss.NewLayer(ghost).X(rect.x).Y(rect.y).Z(len(notes) + 1))
	}
	return fitLines(canvas.Render(), rows)
}

// renderNote draws one note box of exactly rect's size.
func (m Model) renderNote(note domain.Note, rect cellRect) string {
	innerW, innerH := rect.w-2, rect.h-2

	border := lipgloss.RoundedBorder()
	color := noteColor
	if note.Pinned {
		border = pinnedBorder
		color = pinColor
	}
	if note.ID == m.selectedID {
		color = accentColor
	}
	if note.Editing {
		color = editColor
	}
	style := lipgloss.NewStyle().Border(border).BorderForeground(color)

	lines := make([]string, 0, innerH)
	lines = append(lines, renderControls(note, innerW))
	switch {
	case note.Editing:
		lines = append(lines, ansi.Truncate(m.editInput.View(), innerW, ""))
	case strings.TrimSpace(note.Text) == "":
		lines = append(lines, lipgloss.NewStyle().Foreground(dimColor).Render(truncate("(empty)", innerW)))
	default:
		lines = append(lines, wrapText(note.Text, innerW, innerH-1)...)
	}
	return renderBox(lines, innerW, innerH, style)
}

func renderControls(note domain.Note, width int) string {
	spans := noteControls(note, width)
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		style := lipgloss.NewStyle().Foreground(mutedColor)
		switch span.target {
		case targetDelete:
			style = style.Foreground(deleteColor)
		case targetPin:
			if note.Pinned {
				style = style.Foreground(pinColor)
			}
		case targetEdit:
			if note.Editing {
				style = style.Foreground(editColor)
			}
		}
		parts = append(parts, style.Render(span.label))
	}
	return strings.Join(parts, " ")
}

// wrapText word-wraps text into at most maxLines lines of width columns.
func wrapText(text string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}
	lines := strings.Split(ansi.Wrap(text, width, ""), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		lines[maxLines-1] = ansi.Truncate(last, width-1, "") + "…"
	}
	return lines
}

// renderBox pads lines to innerW x innerH and wraps them in style's border.
func renderBox(lines []string, innerW, innerH int, style lipgloss.Style) string {
	innerW, innerH = max(innerW, 0), max(innerH, 0)
	rows := make([]string, innerH)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerW, "")
		}
		if pad := innerW - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[i] = line
	}
	return style.Render(strings.Join(rows, "\n"))
}

// renderOverlay returns the details or full-help box, or "" when neither is open.
func (m Model) renderOverlay() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
	maxWidth := clamp(m.width-8, 20, 72)

	switch {
	case m.showInfo:
		note, ok := m.selectedNote()
		if !ok {
			return ""
		}
		title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Note %d", note.ID))
		body := m.markdown.render(note.Text, maxWidth-4)
		if body == "" {
			body = lipgloss.NewStyle().Foreground(dimColor).Render("(empty)")
		}
		state := "free"
		if note.Pinned {
			state = "pinned"
		}
		meta := lipgloss.NewStyle().Foreground(mutedColor).Render(fmt.Sprintf(
			"%s  at (%g, %g)  %gx%g\nupdated %s",
			state, note.X, note.Y, note.Width, note.Height,
			note.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
		))
		hint := lipgloss.NewStyle().Foreground(dimColor).Render("esc close")
		return boxStyle.Render(strings.Join([]string{title, "", body, "", meta, hint}, "\n"))
	case m.help.ShowAll:
		helpBubble := m.help
		helpBubble.SetWidth(maxWidth - 4)
		title := lipgloss.NewStyle().Bold(true).Render("Keys")
		mouse := lipgloss.NewStyle().Foreground(mutedColor).Render(
			"drag a note body to move it • click its text to edit\nclick [+] to add • x/Pin/Edit act on one note")
		return boxStyle.Render(strings.Join([]string{title, "", helpBubble.View(m.keys), "", mouse}, "\n"))
	}
	return ""
}

// overlayOnContent centres overlay over base on a width x height canvas.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}
