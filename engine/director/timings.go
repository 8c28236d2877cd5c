package director

import (
	"time"

	"github.com/Carmen-Shannon/oxy-desk/engine/tween"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
)

// Timing is the duration and easing of one scripted transition.
type Timing struct {
	Duration time.Duration `yaml:"duration"`
	Curve    string        `yaml:"curve"`
}

// Timings configures every scripted transition the director starts on its own.
type Timings struct {
	EnterMonitor  Timing `yaml:"enter_monitor"`
	LeaveMonitor  Timing `yaml:"leave_monitor"`
	Toggle        Timing `yaml:"toggle"`
	FreeLookEnter Timing `yaml:"free_look_enter"`
	FreeLookExit  Timing `yaml:"free_look_exit"`
	LoadingDone   Timing `yaml:"loading_done"`
	ResizeSettle  Timing `yaml:"resize_settle"`
}

// DefaultTimings returns the canonical transition timings.
func DefaultTimings() Timings {
	return Timings{
		EnterMonitor:  Timing{Duration: 2000 * time.Millisecond, Curve: tween.NameCubicBezier},
		LeaveMonitor:  Timing{Duration: 1000 * time.Millisecond, Curve: tween.NameQuinticInOut},
		Toggle:        Timing{Duration: 1000 * time.Millisecond, Curve: tween.NameQuinticInOut},
		FreeLookEnter: Timing{Duration: 750 * time.Millisecond, Curve: tween.NameCubicBezier},
		FreeLookExit:  Timing{Duration: 4000 * time.Millisecond, Curve: tween.NameExponentialOut},
		LoadingDone:   Timing{Duration: 2500 * time.Millisecond, Curve: tween.NameExponentialOut},
		ResizeSettle:  Timing{Duration: 600 * time.Millisecond, Curve: tween.NameQuinticInOut},
	}
}

// resolvedTiming is a Timing with its curve looked up.
type resolvedTiming struct {
	duration time.Duration
	curve    tween.Curve
}

// resolve looks up the curve by name. Unknown names fall back to quintic in/out.
func (t Timing) resolve(name string) resolvedTiming {
	curve, err := tween.ByName(t.Curve)
	if err != nil {
		log.Warn("unknown transition curve, using default", "transition", name, "error", err)
		curve = tween.QuinticInOut
	}
	return resolvedTiming{duration: t.Duration, curve: curve}
}

type resolvedTimings struct {
	enterMonitor  resolvedTiming
	leaveMonitor  resolvedTiming
	toggle        resolvedTiming
	freeLookEnter resolvedTiming
	freeLookExit  resolvedTiming
	loadingDone   resolvedTiming
	resizeSettle  resolvedTiming
}

func (t Timings) resolve() resolvedTimings {
	return resolvedTimings{
		enterMonitor:  t.EnterMonitor.resolve("enter_monitor"),
		leaveMonitor:  t.LeaveMonitor.resolve("leave_monitor"),
		toggle:        t.Toggle.resolve("toggle"),
		freeLookEnter: t.FreeLookEnter.resolve("free_look_enter"),
		freeLookExit:  t.FreeLookExit.resolve("free_look_exit"),
		loadingDone:   t.LoadingDone.resolve("loading_done"),
		resizeSettle:  t.ResizeSettle.resolve("resize_settle"),
	}
}
