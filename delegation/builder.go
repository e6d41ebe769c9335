package delegation

import (
	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/errors"
	"github.com/kbukum/capkit/logger"

	"github.com/google/uuid"
)

// Policy determines when impl-side provider constraints are checked.
type Policy int

const (
	// Lazy checks constraints at the first resolved use of each
	// capability. This mirrors the deferred evaluation of the original
	// design: a provider may stay bound for a context even if its
	// constraints can never be satisfied, as long as that capability
	// path is never exercised.
	Lazy Policy = iota
	// Eager checks the constraints of every reachable binding against a
	// prototype context at Build time.
	Eager
)

// PolicyFromString maps a settings value ("lazy" or "eager") to a Policy.
// Unknown values fall back to Lazy.
func PolicyFromString(s string) Policy {
	if s == "eager" {
		return Eager
	}
	return Lazy
}

// Builder assembles the delegation table of one context type.
type Builder struct {
	contextName string
	entries     map[capability.ID]capability.Provider
	errs        []error
	middleware  []Middleware
	policy      Policy
	prototype   any
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMiddleware installs resolution middleware on the built table.
// Middleware is fixed at build time, like every other part of the wiring.
func WithMiddleware(mw ...Middleware) BuilderOption {
	return func(b *Builder) { b.middleware = append(b.middleware, mw...) }
}

// WithEagerValidation switches the builder to the Eager policy. The
// prototype is a representative context value that every reachable
// provider's constraints are checked against during Build.
func WithEagerValidation(prototype any) BuilderOption {
	return func(b *Builder) {
		b.policy = Eager
		b.prototype = prototype
	}
}

// NewBuilder creates a Builder for the named context type.
func NewBuilder(contextName string, opts ...BuilderOption) *Builder {
	b := &Builder{
		contextName: contextName,
		entries:     make(map[capability.ID]capability.Provider),
		policy:      Lazy,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind maps a capability ID to a provider. Binding the same ID twice on
// one builder is a conflict; it is recorded and surfaces from Build,
// regardless of the order the bindings were declared in.
func (b *Builder) Bind(id capability.ID, p capability.Provider) *Builder {
	if existing, ok := b.entries[id]; ok {
		b.errs = append(b.errs, errors.AmbiguousProvider(
			b.contextName, string(id), existing.ProviderName(), p.ProviderName()))
		return b
	}
	b.entries[id] = p
	return b
}

// BindAll maps several capability IDs to the same provider, mirroring the
// bulk wiring form of aggregate declarations.
func (b *Builder) BindAll(ids []capability.ID, p capability.Provider) *Builder {
	for _, id := range ids {
		b.Bind(id, p)
	}
	return b
}

// Delegate binds a capability ID to an aggregate table; resolution will
// continue inside the aggregate under the same ID.
func (b *Builder) Delegate(id capability.ID, aggregate *Table) *Builder {
	return b.Bind(id, aggregate)
}

// Build assembles the immutable table. It fails when any binding
// conflicted, when a delegation chain is cyclic or ends unresolvable,
// and — under the Eager policy — when a reachable provider's constraints
// are not satisfied by the prototype context.
func (b *Builder) Build() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	t := &Table{
		id:          uuid.NewString(),
		contextName: b.contextName,
		entries:     b.entries,
	}
	t.resolve = Chain(b.middleware...)(t, t.resolveChain)

	// Chains are fixed now, so walk every explicit binding up front:
	// a cyclic or dead-ended chain is a wiring defect, not a call-time
	// condition.
	for id := range t.entries {
		p, err := t.resolveChain(id)
		if err != nil {
			return nil, err
		}
		if b.policy == Eager {
			if err := evalConstraints(p, b.contextName, b.prototype); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("delegation table built", logger.Fields(
		logger.FieldContext, b.contextName,
		logger.FieldTableID, t.id,
		"bindings", len(t.entries),
	))
	return t, nil
}

// MustBuild assembles the table, panicking on any wiring error. Intended
// for package-level context wiring.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
