package app

// Key binding constants used in handleKey.
const (
	KeyQuit    = "ctrl+c"
	KeyQuitAlt = "esc"
	KeySubmit  = "enter"
	KeyRefresh = "ctrl+r"
	KeyReset   = "ctrl+l"
)
