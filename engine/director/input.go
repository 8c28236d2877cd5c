package director

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
)

// InputMode says whether the 3D surface captures drag input.
type InputMode int

const (
	// InputPassThrough leaves drags to the page; clicks still reach the director.
	InputPassThrough InputMode = iota
	// InputCapture routes drags and wheel input to the free-look orbit controller.
	InputCapture
)

func (m InputMode) String() string {
	if m == InputCapture {
		return "capture"
	}
	return "pass-through"
}

// TargetKind classifies the host element a pointer event was addressed to.
type TargetKind int

const (
	// TargetCanvas is the 3D surface itself.
	TargetCanvas TargetKind = iota
	// TargetEmbeddedFrame is the embedded content container.
	TargetEmbeddedFrame
	// TargetButton is a button in the UI chrome.
	TargetButton
	// TargetLink is a hyperlink in the UI chrome.
	TargetLink
	// TargetNonInteractive is an element explicitly flagged to be ignored.
	TargetNonInteractive
)

// PointerTarget is the raw host target of a pointer event.
type PointerTarget struct {
	Kind TargetKind
	Name string
}

// ignored reports whether events on this target must never reach the camera.
func (p PointerTarget) ignored() bool {
	switch p.Kind {
	case TargetEmbeddedFrame, TargetButton, TargetLink, TargetNonInteractive:
		return true
	default:
		return false
	}
}

// Raycaster answers ray queries against the hit-testable scene. scene.Scene satisfies it.
type Raycaster interface {
	Raycast(ray common.Ray) (scene.Hit, bool)
}

// FocusListener is told when the monitor view gains or loses focus.
type FocusListener interface {
	SetFocused(focused bool)
}

// DefaultComputerNames are the substrings that mark a scene object as part of the in-scene computer.
var DefaultComputerNames = []string{"computer", "monitor", "screen", "display", "bezel", "stand", "hitbox"}

// isComputer matches name against the allow-list, case-insensitively.
func isComputer(name string, allow []string) bool {
	lower := strings.ToLower(name)
	for _, s := range allow {
		if s != "" && strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
