package viewpoint

// RegistryBuilderOption is a functional option for configuring a Registry.
// Use the With* functions to create options.
type RegistryBuilderOption func(r *registry)

// WithRule replaces the update rule of one viewpoint. A nil rule makes the viewpoint static.
//
// Parameters:
//   - id: the viewpoint to configure
//   - rule: the replacement rule
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithRule(id ID, rule UpdateFunc) RegistryBuilderOption {
	return func(r *registry) {
		r.rules[id] = rule
	}
}
