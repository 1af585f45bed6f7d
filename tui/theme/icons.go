package theme

import (
	"os"

	"github.com/lectern/lectern/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconCourse   = "󰑴" // md-school (U+F0474)
	nerdIconSection  = "" // cod-folder (U+EA83)
	nerdIconLecture  = "󰧮" // md-note_text (U+F09EE)
	nerdIconExercise = "󰙨" // md-test_tube (U+F0668)
	nerdIconIndepth  = "󰍉" // md-magnify (U+F0349)
	nerdIconVideo    = "󰕧" // md-video (U+F0567)
	nerdIconDraft    = "󰽉" // md-pencil_ruler (U+F0F49)
	nerdIconTag      = "󰓹" // md-tag (U+F04F9)
	nerdIconSuccess  = "󰄬" // md-check (U+F012C)
	nerdIconError    = "" // cod-error (U+EA87)
	nerdIconWarning  = "" // fa-warning (U+F071)
	nerdIconInfo     = "󰋼" // md-information (U+F02FC)
	nerdIconRunning  = "" // fa-refresh (U+F021)
	nerdIconPending  = "󰦖" // md-progress_clock (U+F0996)
	nerdIconSelect   = "󰱒" // md-checkbox_outline (U+F0C52)
	nerdIconArrow    = "󰁔" // md-arrow_right (U+F0054)
	nerdIconBullet   = "" // oct-dot_fill (U+F444)
	nerdIconFilter   = "󱣬" // md-filter_check (U+F18EC)
	nerdIconServer   = "󰒋" // md-server (U+F048B)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconCourse   = "◆"
	asciiIconSection  = "▸"
	asciiIconLecture  = "▢"
	asciiIconExercise = "✎"
	asciiIconIndepth  = "◉"
	asciiIconVideo    = "▶"
	asciiIconDraft    = "…"
	asciiIconTag      = "#"
	asciiIconSuccess  = "✓"
	asciiIconError    = "✗"
	asciiIconWarning  = "⚠"
	asciiIconInfo     = "ℹ"
	asciiIconRunning  = "◐"
	asciiIconPending  = "…"
	asciiIconSelect   = "▶"
	asciiIconArrow    = "→"
	asciiIconBullet   = "•"
	asciiIconFilter   = "⊲"
	asciiIconServer   = "●"
)

// Public Icon Variables
var (
	IconCourse   string
	IconSection  string
	IconLecture  string
	IconExercise string
	IconIndepth  string
	IconVideo    string
	IconDraft    string
	IconTag      string
	IconSuccess  string
	IconError    string
	IconWarning  string
	IconInfo     string
	IconRunning  string
	IconPending  string
	IconSelect   string
	IconArrow    string
	IconBullet   string
	IconFilter   string
	IconServer   string
)

// CategoryIcon returns the glyph for a page category.
func CategoryIcon(category string) string {
	switch category {
	case "exercise":
		return IconExercise
	case "indepth":
		return IconIndepth
	default:
		return IconLecture
	}
}

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("LECTERN_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check config file
		cfg, err := config.LoadDefault()
		if err == nil && cfg.TUI != nil && cfg.TUI.Icons == "ascii" {
			useASCII = true
		}
	}

	if useASCII {
		IconCourse = asciiIconCourse
		IconSection = asciiIconSection
		IconLecture = asciiIconLecture
		IconExercise = asciiIconExercise
		IconIndepth = asciiIconIndepth
		IconVideo = asciiIconVideo
		IconDraft = asciiIconDraft
		IconTag = asciiIconTag
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconPending = asciiIconPending
		IconSelect = asciiIconSelect
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconFilter = asciiIconFilter
		IconServer = asciiIconServer
	} else {
		// Load Nerd Font icons (default)
		IconCourse = nerdIconCourse
		IconSection = nerdIconSection
		IconLecture = nerdIconLecture
		IconExercise = nerdIconExercise
		IconIndepth = nerdIconIndepth
		IconVideo = nerdIconVideo
		IconDraft = nerdIconDraft
		IconTag = nerdIconTag
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconRunning = nerdIconRunning
		IconPending = nerdIconPending
		IconSelect = nerdIconSelect
		IconArrow = nerdIconArrow
		IconBullet = nerdIconBullet
		IconFilter = nerdIconFilter
		IconServer = nerdIconServer
	}
}
