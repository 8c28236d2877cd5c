package loader

import "time"

// LoaderBuilderOption is a function that configures a Loader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of concurrent fetches. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithIdleTimeout sets how long an idle pool worker waits before exiting.
func WithIdleTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		l.idleTimeout = d
	}
}

// WithFetch replaces the filesystem fetch with a custom one.
//
// Parameters:
//   - fetch: the function used to retrieve each asset
//
// Returns:
//   - LoaderBuilderOption: a function that applies the fetch function
func WithFetch(fetch FetchFunc) LoaderBuilderOption {
	return func(l *loader) {
		if fetch != nil {
			l.fetch = fetch
		}
	}
}
