package scene

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Object is a named, hit-testable piece of the scene. Names are what pointer classification
// matches against, so two objects should not share one.
type Object interface {
	// Name returns the object's identifier.
	Name() string

	// Intersect tests the ray against the object's surface.
	//
	// Parameters:
	//   - ray: the world-space ray
	//
	// Returns:
	//   - float32: distance along the ray to the nearest surface hit
	//   - bool: true if the object is hit in front of the ray origin
	Intersect(ray common.Ray) (float32, bool)
}

// Hit describes the nearest object a ray struck.
type Hit struct {
	Name     string
	Distance float32
	Point    mgl32.Vec3
}

// Scene holds the hit-testable objects the camera director raycasts against.
// Objects are kept in insertion order; a later Add with an existing name replaces the object in place.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Add adds or replaces objects by name.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...Object)

	// Get retrieves an object by name.
	// Returns nil if not found.
	//
	// Parameters:
	//   - name: the object's name
	//
	// Returns:
	//   - Object: the object or nil
	Get(name string) Object

	// Remove removes an object by name. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the object's name
	Remove(name string)

	// Count returns the number of objects in the scene.
	Count() int

	// Objects returns a snapshot of the scene's objects in insertion order.
	Objects() []Object

	// Clear removes all objects from the scene.
	Clear()

	// Raycast returns the nearest object hit by the ray. No hit is a normal outcome and reports false.
	// Ties keep the earlier-added object.
	//
	// Parameters:
	//   - ray: the world-space ray
	//
	// Returns:
	//   - Hit: the nearest hit
	//   - bool: true if anything was hit
	Raycast(ray common.Ray) (Hit, bool)
}

type scene struct {
	mu      sync.RWMutex
	name    string
	objects []Object
	index   map[string]int
}

var _ Scene = &scene{}

// NewScene creates a new empty Scene configured with the provided options.
//
// Parameters:
//   - options: optional builder options
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		name:  "default",
		index: make(map[string]int),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Add(objects ...Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(objects...)
}

func (s *scene) add(objects ...Object) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if i, ok := s.index[obj.Name()]; ok {
			s.objects[i] = obj
			continue
		}
		s.index[obj.Name()] = len(s.objects)
		s.objects = append(s.objects, obj)
	}
}

func (s *scene) Get(name string) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.index[name]; ok {
		return s.objects[i]
	}
	return nil
}

func (s *scene) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].Name()] = j
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
	s.index = make(map[string]int)
}

func (s *scene) Raycast(ray common.Ray) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := Hit{Distance: float32(math.Inf(1))}
	found := false
	for _, obj := range s.objects {
		t, ok := obj.Intersect(ray)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{Name: obj.Name(), Distance: t, Point: ray.At(t)}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}
