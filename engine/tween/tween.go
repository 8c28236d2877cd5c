// Package tween interpolates camera vectors over time along a small, fixed set of easing curves.
package tween

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Curve maps linear progress in [0, 1] to eased progress. Inputs outside the range are clamped.
type Curve func(t float32) float32

// Curve names accepted by ByName.
const (
	NameQuinticInOut   = "quintic-in-out"
	NameExponentialOut = "exponential-out"
	NameCubicBezier    = "cubic-bezier"
)

// Dramatic is the scripted cubic-bezier used for the monitor zoom and the free-look entrance.
var Dramatic = CubicBezier(0.13, 0.99, 0, 1)

// QuinticInOut accelerates with t^5 for the first half and mirrors it for the second.
func QuinticInOut(t float32) float32 {
	t = clamp01(t)
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	u := t - 1
	return 1 + 16*u*u*u*u*u
}

// ExpoOut decelerates exponentially, reaching exactly 1 at t = 1.
func ExpoOut(t float32) float32 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - float32(math.Pow(2, float64(-10*t)))
}

// CubicBezier returns a CSS-style cubic-bezier timing curve with control points (x1, y1) and
// (x2, y2). x1 and x2 are clamped to [0, 1] so the curve stays a function of time.
//
// Parameters:
//   - x1, y1: first control point
//   - x2, y2: second control point
//
// Returns:
//   - Curve: the timing function
func CubicBezier(x1, y1, x2, y2 float32) Curve {
	cx1 := float64(clamp01(x1))
	cx2 := float64(clamp01(x2))
	cy1 := float64(y1)
	cy2 := float64(y2)

	bezier := func(a, b, s float64) float64 {
		inv := 1 - s
		return 3*inv*inv*s*a + 3*inv*s*s*b + s*s*s
	}
	slope := func(a, b, s float64) float64 {
		inv := 1 - s
		return 3*inv*inv*a + 6*inv*s*(b-a) + 3*s*s*(1-b)
	}

	return func(t float32) float32 {
		x := float64(clamp01(t))
		if x == 0 || x == 1 {
			return float32(x)
		}

		// Newton-Raphson on x(s) = x, falling back to bisection when the slope flattens.
		s := x
		for range 8 {
			dx := bezier(cx1, cx2, s) - x
			if math.Abs(dx) < 1e-7 {
				return float32(bezier(cy1, cy2, s))
			}
			d := slope(cx1, cx2, s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
			if s < 0 || s > 1 {
				break
			}
		}

		lo, hi := 0.0, 1.0
		s = x
		for range 40 {
			v := bezier(cx1, cx2, s)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return float32(bezier(cy1, cy2, s))
	}
}

// ByName resolves a configured curve name. The cubic-bezier name resolves to Dramatic.
//
// Parameters:
//   - name: one of NameQuinticInOut, NameExponentialOut, NameCubicBezier
//
// Returns:
//   - Curve: the named curve
//   - error: error if the name is unknown
func ByName(name string) (Curve, error) {
	switch name {
	case NameQuinticInOut:
		return QuinticInOut, nil
	case NameExponentialOut:
		return ExpoOut, nil
	case NameCubicBezier:
		return Dramatic, nil
	default:
		return nil, fmt.Errorf("unknown easing curve %q", name)
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Tween tracks the eased progress of one timed interpolation against the engine's elapsed clock.
type Tween struct {
	Start    time.Duration
	Duration time.Duration
	Curve    Curve
}

// Progress returns the eased progress at now and whether the tween has finished.
// A non-positive duration finishes immediately; a nil curve behaves linearly.
//
// Parameters:
//   - now: the current elapsed time
//
// Returns:
//   - float32: eased progress, exactly 1 once done
//   - bool: true once now >= Start + Duration
func (tw Tween) Progress(now time.Duration) (float32, bool) {
	if tw.Duration <= 0 || now >= tw.Start+tw.Duration {
		return 1, true
	}
	raw := float32(float64(now-tw.Start) / float64(tw.Duration))
	if tw.Curve == nil {
		return clamp01(raw), false
	}
	return tw.Curve(raw), false
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
