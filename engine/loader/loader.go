package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
)

// Asset is one entry of the preload manifest.
type Asset struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// FetchFunc retrieves the bytes for a single asset.
type FetchFunc func(ctx context.Context, asset Asset) ([]byte, error)

// Result summarizes a settled manifest.
type Result struct {
	Loaded []string
	Failed map[string]error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	workers     int
	idleTimeout time.Duration
	fetch       FetchFunc

	pool   worker.DynamicWorkerPool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started bool
	total   int
	settled int
	result  Result
	onDone  func(Result)

	cache  map[string][]byte
	logger *slog.Logger
}

// Loader preloads a manifest of named assets on a worker pool and reports when every fetch
// has settled. Failed fetches are logged and recorded but never abort the rest of the manifest.
type Loader interface {
	// Load starts fetching every asset in the manifest and returns immediately.
	// onDone is invoked exactly once, from a worker goroutine, after the last fetch settles.
	// An empty manifest settles immediately and calls onDone before Load returns.
	//
	// Parameters:
	//   - assets: the manifest to fetch
	//   - onDone: callback receiving the settled result, may be nil
	//
	// Returns:
	//   - error: error if Load was already called on this Loader
	Load(assets []Asset, onDone func(Result)) error

	// Progress reports how many fetches have settled out of the manifest total.
	//
	// Returns:
	//   - int: settled fetches, successful or not
	//   - int: manifest size
	Progress() (int, int)

	// Done reports whether every fetch has settled.
	Done() bool

	// Get retrieves the cached bytes of a loaded asset by name. Returns nil if not loaded.
	//
	// Parameters:
	//   - name: the asset name to look up
	//
	// Returns:
	//   - []byte: the cached bytes or nil
	Get(name string) []byte

	// Wait blocks until every submitted fetch has settled.
	Wait()

	// Close cancels pending fetches and stops the worker pool.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the provided options applied.
// Assets are read from the local filesystem unless WithFetch overrides it.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader ready to accept a manifest
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:          sync.RWMutex{},
		workers:     4,
		idleTimeout: time.Second,
		fetch:       readFile,
		cache:       make(map[string][]byte),
	}

	for _, option := range options {
		option(l)
	}
	l.logger = log.With("component", "loader")
	l.ctx, l.cancel = context.WithCancel(context.Background())
	return l
}

func (l *loader) Load(assets []Asset, onDone func(Result)) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("loader: manifest already started")
	}
	l.started = true
	l.total = len(assets)
	l.onDone = onDone
	l.result = Result{Failed: make(map[string]error)}

	if l.total == 0 {
		result := l.result
		l.onDone = nil
		l.mu.Unlock()
		if onDone != nil {
			onDone(result)
		}
		return nil
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, len(assets), l.idleTimeout)
	l.mu.Unlock()

	l.logger.Debug("manifest started", "assets", len(assets))
	for i, asset := range assets {
		l.wg.Add(1)
		a := asset
		l.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: a,
			Do: func() (any, error) {
				defer l.wg.Done()
				data, err := l.fetchOne(a)
				l.settle(a, data, err)
				return data, err
			},
		})
	}
	return nil
}

func (l *loader) Progress() (int, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settled, l.total
}

func (l *loader) Done() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.started && l.settled == l.total
}

func (l *loader) Get(name string) []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

func (l *loader) Wait() {
	l.wg.Wait()
}

func (l *loader) Close() {
	l.cancel()
	l.mu.Lock()
	pool := l.pool
	l.mu.Unlock()
	if pool != nil {
		pool.Stop()
	}
}

// fetchOne runs the fetch for a single asset unless the loader was closed first.
func (l *loader) fetchOne(a Asset) ([]byte, error) {
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	return l.fetch(l.ctx, a)
}

// settle records the outcome of one fetch and fires onDone after the last one.
func (l *loader) settle(a Asset, data []byte, err error) {
	l.mu.Lock()
	if err != nil {
		l.result.Failed[a.Name] = err
	} else {
		l.cache[a.Name] = data
		l.result.Loaded = append(l.result.Loaded, a.Name)
	}
	l.settled++

	var done func(Result)
	var result Result
	if l.settled == l.total {
		done = l.onDone
		l.onDone = nil
		result = l.result
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("asset failed", "asset", a.Name, "path", a.Path, "error", err)
	} else {
		l.logger.Debug("asset loaded", "asset", a.Name, "bytes", len(data))
	}

	if done != nil {
		l.logger.Info("manifest settled", "loaded", len(result.Loaded), "failed", len(result.Failed))
		done(result)
	}
}

func readFile(_ context.Context, a Asset) ([]byte, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", a.Name, err)
	}
	return data, nil
}
