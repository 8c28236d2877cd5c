package common

// Virtual key codes for the host window's keyboard bindings.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF     = 70  // F key (ASCII), toggles free-look
	KeySpace = 32  // Spacebar (ASCII), toggles idle/desk
	KeyEsc   = 256 // Escape key (GLFW), presses the back control
	KeyEnter = 257 // Enter key (GLFW), focuses the monitor
	KeyRight = 262 // Arrow keys (GLFW) step the free-look orbit
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)
