package viewpoint

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/go-gl/mathgl/mgl32"
)

// Tuning holds the authored poses and rule constants of every viewpoint. The desk base pose is
// the policy's wide desk pose and the monitor base pose is derived from MonitorFocal.
type Tuning struct {
	Idle          IdleTuning  `yaml:"idle"`
	Desk          DeskTuning  `yaml:"desk"`
	MonitorFocal  mgl32.Vec3  `yaml:"monitor_focal"`
	Loading       common.Pose `yaml:"loading"`
	FreeLookStart common.Pose `yaml:"free_look_start"`
}

// DefaultTuning returns the canonical viewpoint constants.
func DefaultTuning() Tuning {
	return Tuning{
		Idle: IdleTuning{
			Base: common.Pose{
				Position:   mgl32.Vec3{-20000, 12000, 20000},
				FocalPoint: mgl32.Vec3{0, -1000, 0},
			},
			AmplitudeX: 4000,
			AmplitudeY: 1500,
			FrequencyX: 0.08,
			FrequencyY: 0.05,
		},
		Desk: DeskTuning{
			FocalRate:    0.1,
			PositionRate: 0.05,
			PositionSway: mgl32.Vec2{1500, 800},
			FocalSway:    mgl32.Vec2{600, 300},
			MinHeight:    600,
		},
		MonitorFocal: mgl32.Vec3{0, 950, 0},
		Loading: common.Pose{
			Position:   mgl32.Vec3{-35000, 35000, 35000},
			FocalPoint: mgl32.Vec3{0, 0, 0},
		},
		FreeLookStart: common.Pose{
			Position:   mgl32.Vec3{-15000, 12000, 15000},
			FocalPoint: mgl32.Vec3{0, 0, 0},
		},
	}
}

// Registry is the fixed table of viewpoints keyed by ID.
// Thread-safe for concurrent access.
type Registry interface {
	// Get returns the viewpoint for id, or nil if id is not defined.
	//
	// Parameters:
	//   - id: the viewpoint identity
	//
	// Returns:
	//   - *Viewpoint: the viewpoint or nil
	Get(id ID) *Viewpoint

	// Live returns a copy of the live pose of id.
	//
	// Parameters:
	//   - id: the viewpoint identity
	//
	// Returns:
	//   - common.Pose: the live pose
	//   - bool: false if id is not defined
	Live(id ID) (common.Pose, bool)

	// IDs returns the defined viewpoint identities in registry order.
	IDs() []ID

	// UpdateAll runs every viewpoint's rule once, in registry order, whether or not it is displayed.
	//
	// Parameters:
	//   - ctx: the tick context
	UpdateAll(ctx *Context)
}

type registry struct {
	mu    sync.RWMutex
	order []ID
	byID  map[ID]*Viewpoint
	rules map[ID]UpdateFunc
}

var _ Registry = &registry{}

// NewRegistry builds the five viewpoints from tuning and the reframing policy.
//
// Parameters:
//   - tuning: authored poses and rule constants
//   - policy: the reframing policy used to derive the desk and monitor base poses
//   - options: optional rule overrides
//
// Returns:
//   - Registry: the populated registry
func NewRegistry(tuning Tuning, policy reframe.Policy, options ...RegistryBuilderOption) Registry {
	r := &registry{
		byID: make(map[ID]*Viewpoint, len(All)),
		rules: map[ID]UpdateFunc{
			Idle:    IdleRule(tuning.Idle),
			Desk:    DeskRule(tuning.Desk),
			Monitor: MonitorRule(),
		},
	}
	for _, opt := range options {
		opt(r)
	}

	bases := map[ID]common.Pose{
		Idle:          tuning.Idle.Base,
		Monitor:       policy.MonitorPoseFor(false, reframe.Viewport{}, tuning.MonitorFocal),
		Desk:          policy.DeskWide,
		Loading:       tuning.Loading,
		FreeLookStart: tuning.FreeLookStart,
	}
	for _, id := range All {
		r.order = append(r.order, id)
		r.byID[id] = New(id, bases[id], r.rules[id])
	}
	return r
}

func (r *registry) Get(id ID) *Viewpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

func (r *registry) Live(id ID) (common.Pose, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return common.Pose{}, false
	}
	return v.Live(), true
}

func (r *registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

func (r *registry) UpdateAll(ctx *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		r.byID[id].Update(ctx)
	}
}
