package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type DragMode string

const (
	DragModePointer DragMode = "pointer"
	DragModeDrop    DragMode = "drop"
	DragModeDelta   DragMode = "delta"
)

type Config struct {
	Board   BoardConfig   `toml:"board"`
	Notes   NotesConfig   `toml:"notes"`
	Drag    DragConfig    `toml:"drag"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
}

type BoardConfig struct {
	Width      float64 `toml:"width"`  // 0 fills the terminal
	Height     float64 `toml:"height"` // 0 fills the terminal
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

type NotesConfig struct {
	DefaultText string        `toml:"default_text"`
	Width       float64       `toml:"width"`
	Height      float64       `toml:"height"`
	PinAnchorX  float64       `toml:"pin_anchor_x"`
	PinAnchorY  float64       `toml:"pin_anchor_y"`
	Initial     []InitialNote `toml:"initial"`
}

type InitialNote struct {
	Text   string  `toml:"text"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Pinned bool    `toml:"pinned"`
}

type DragConfig struct {
	Mode           DragMode `toml:"mode"`
	CoalesceMotion bool     `toml:"coalesce_motion"`
	FrameInterval  string   `toml:"frame_interval"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type KeyConfig struct {
	AddNote    string `toml:"add_note"`
	DeleteNote string `toml:"delete_note"`
	TogglePin  string `toml:"toggle_pin"`
	EditNote   string `toml:"edit_note"`
	CopyNote   string `toml:"copy_note"`
	NoteInfo   string `toml:"note_info"`
}

func Default() Config {
	return Config{
		Board: BoardConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Notes: NotesConfig{
			DefaultText: "New Note",
			Width:       150,
			Height:      100,
			Initial: []InitialNote{
				{Text: "Note 1", X: 50, Y: 50},
			},
		},
		Drag: DragConfig{
			Mode:           DragModePointer,
			CoalesceMotion: true,
			FrameInterval:  "16ms",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".noticeboard/log",
			},
		},
		Keys: KeyConfig{
			AddNote:    "n",
			DeleteNote: "d",
			TogglePin:  "p",
			EditNote:   "e",
			CopyNote:   "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	// An explicit [[notes.initial]] list replaces the default seed instead of extending it.
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if notes, ok := raw["notes"].(map[string]any); ok {
		if _, ok := notes["initial"]; ok {
			cfg.Notes.Initial = nil
		}
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Board.Width < 0 || c.Board.Height < 0 {
		return fmt.Errorf("board size must be >= 0, got %vx%v", c.Board.Width, c.Board.Height)
	}
	if c.Board.CellWidth <= 0 || c.Board.CellHeight <= 0 {
		return fmt.Errorf("board cell size must be > 0, got %vx%v", c.Board.CellWidth, c.Board.CellHeight)
	}
	if c.Notes.Width <= 0 || c.Notes.Height <= 0 {
		return fmt.Errorf("notes size must be > 0, got %vx%v", c.Notes.Width, c.Notes.Height)
	}

	switch c.Drag.Mode {
	case DragModePointer, DragModeDrop, DragModeDelta:
	default:
		return fmt.Errorf("invalid drag.mode: %q", c.Drag.Mode)
	}
	if c.Drag.CoalesceMotion {
		interval, err := time.ParseDuration(strings.TrimSpace(c.Drag.FrameInterval))
		if err != nil {
			return fmt.Errorf("invalid drag.frame_interval %q: %w", c.Drag.FrameInterval, err)
		}
		if interval <= 0 {
			return fmt.Errorf("drag.frame_interval must be > 0, got %q", c.Drag.FrameInterval)
		}
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

// FrameIntervalDuration returns the motion coalescing interval, or 0 when coalescing is off.
func (c Config) FrameIntervalDuration() time.Duration {
	if !c.Drag.CoalesceMotion {
		return 0
	}
	interval, err := time.ParseDuration(strings.TrimSpace(c.Drag.FrameInterval))
	if err != nil || interval <= 0 {
		return 0
	}
	return interval
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return out, nil
}

// EnsureConfigDir creates the directory that holds path so it can be watched before the file exists.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
