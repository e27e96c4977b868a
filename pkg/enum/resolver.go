package enum

// Resolver turns parsed specs into permitted-value sets.
type Resolver struct {
	providers *Registry
}

// NewResolver creates a resolver that looks provider names up in providers.
// A nil registry only resolves inline literals.
func NewResolver(providers *Registry) *Resolver {
	return &Resolver{providers: providers}
}

// Values returns the raw permitted values of spec. Provider-backed specs
// instantiate and query the provider on every call; callers cache the result.
func (r *Resolver) Values(spec Spec) ([]any, error) {
	if spec.Provider == "" {
		return spec.Literal, nil
	}
	var reg *Registry
	if r != nil {
		reg = r.providers
	}
	return reg.Instantiate(spec.Provider)
}

// Build combines spec and its resolved values into a set.
func Build(spec Spec, vals []any) *Set {
	set := NewSet(vals, spec.IsArray)
	set.Provider = spec.Provider
	return set
}
