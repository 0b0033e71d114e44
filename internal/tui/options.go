package tui

import (
	"time"

	"github.com/evanschultz/noticeboard/internal/domain"
)

type DragMode string

const (
	DragModePointer DragMode = "pointer"
	DragModeDrop    DragMode = "drop"
	DragModeDelta   DragMode = "delta"
)

type KeyConfig struct {
	AddNote    string
	DeleteNote string
	TogglePin  string
	EditNote   string
	CopyNote   string
	NoteInfo   string
}

// RuntimeConfig holds the settings a running model can pick up on reload.
type RuntimeConfig struct {
	DragMode      DragMode
	FrameInterval time.Duration // 0 applies motion immediately
	CellSize      domain.Size
	BoardSize     domain.Size // zero axes fill the terminal
	Keys          KeyConfig
}

type Option func(*Model)

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DragMode:      DragModePointer,
		FrameInterval: 16 * time.Millisecond,
		CellSize:      domain.Size{Width: 10, Height: 20},
	}
}

// ReloadConfigFunc returns the runtime config after the config file changed on disk.
type ReloadConfigFunc func() (RuntimeConfig, error)

func WithRuntimeConfig(cfg RuntimeConfig) Option {
	return func(m *Model) {
		m.applyRuntimeConfig(cfg)
	}
}

func WithReloadConfigCallback(fn ReloadConfigFunc) Option {
	return func(m *Model) {
		m.reloadConfig = fn
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}

func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

func normalizeDragMode(mode DragMode) DragMode {
	switch mode {
	case DragModePointer, DragModeDrop, DragModeDelta:
		return mode
	default:
		return DragModePointer
	}
}
