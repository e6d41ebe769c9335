package capability

// ID uniquely names one capability. The ID is distinct from any provider
// interface that implements the capability.
type ID string

// String returns the ID as a plain string.
func (id ID) String() string { return string(id) }

// Provider is the base interface all provider tags implement. Providers
// are stateless: all per-call state flows through the explicit context
// argument of the provider interface they implement.
type Provider interface {
	// ProviderName returns the provider's unique name.
	ProviderName() string
}

// Constraint is an impl-side dependency: a predicate on the context that
// a provider requires but does not express in its provider interface.
// It returns nil when the context satisfies the constraint.
type Constraint func(ctx any) error

// Constrained is optionally implemented by providers that carry
// impl-side constraints. Constraints are evaluated when a capability
// routing through the provider is resolved for a specific context,
// never at binding time.
type Constrained interface {
	Constraints() []Constraint
}

// ConstraintsOf returns the impl-side constraints of p, or nil when the
// provider carries none.
func ConstraintsOf(p Provider) []Constraint {
	if c, ok := p.(Constrained); ok {
		return c.Constraints()
	}
	return nil
}
