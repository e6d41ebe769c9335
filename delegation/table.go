package delegation

import (
	"sort"
	"sync"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/errors"
)

// Table is the immutable delegation table of one context type. It maps
// capability IDs to providers and is itself a provider, so a table can be
// bound inside another table as an aggregate.
type Table struct {
	id          string
	contextName string
	entries     map[capability.ID]capability.Provider
	resolve     ResolveFunc

	// constraint results are cacheable per (table, capability) because
	// bindings never change after Build.
	constraintResults sync.Map
}

// Binding describes one table entry for introspection.
type Binding struct {
	Capability capability.ID
	Provider   string
	Aggregate  bool
}

// ID returns the table's unique identifier.
func (t *Table) ID() string { return t.id }

// ContextName returns the name of the context type owning this table.
func (t *Table) ContextName() string { return t.contextName }

// ProviderName implements capability.Provider so a table can serve as an
// aggregate provider inside another table.
func (t *Table) ProviderName() string { return "components/" + t.contextName }

// Resolve maps a capability ID to the concrete provider to invoke,
// following delegation chains. It fails with MISSING_PROVIDER when no
// binding and no declared default exist, and with CYCLIC_DELEGATION when
// a chain revisits a table.
func (t *Table) Resolve(id capability.ID) (capability.Provider, error) {
	return t.resolve(id)
}

// resolveChain is the raw resolution algorithm, before middleware.
func (t *Table) resolveChain(id capability.ID) (capability.Provider, error) {
	cur := t
	visited := map[string]bool{t.id: true}
	chain := []string{t.contextName}

	for {
		p, ok := cur.entries[id]
		if !ok {
			if def, found := capability.Default(id); found {
				return def, nil
			}
			return nil, errors.MissingProvider(t.contextName, string(id)).
				WithDetail("chain", chain)
		}

		sub, isAggregate := p.(*Table)
		if !isAggregate {
			return p, nil
		}

		if visited[sub.id] {
			return nil, errors.CyclicDelegation(t.contextName, string(id), append(chain, sub.contextName))
		}
		visited[sub.id] = true
		chain = append(chain, sub.contextName)
		cur = sub
	}
}

// CheckConstraints evaluates the impl-side constraints of a resolved
// provider against a concrete context value. Results are cached per
// capability ID; the first failing constraint is recorded and returned on
// every subsequent use.
func (t *Table) CheckConstraints(id capability.ID, p capability.Provider, ctx any) error {
	if cached, ok := t.constraintResults.Load(id); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}

	err := evalConstraints(p, t.contextName, ctx)
	if err == nil {
		t.constraintResults.Store(id, nil)
	} else {
		t.constraintResults.Store(id, err)
	}
	return err
}

// evalConstraints runs every constraint of p against ctx.
func evalConstraints(p capability.Provider, contextName string, ctx any) error {
	for _, check := range capability.ConstraintsOf(p) {
		if err := check(ctx); err != nil {
			return errors.UnsatisfiedConstraint(p.ProviderName(), contextName, err.Error()).
				WithCause(err)
		}
	}
	return nil
}

// Bindings returns the table's entries sorted by capability ID.
func (t *Table) Bindings() []Binding {
	result := make([]Binding, 0, len(t.entries))
	for id, p := range t.entries {
		_, isAggregate := p.(*Table)
		result = append(result, Binding{
			Capability: id,
			Provider:   p.ProviderName(),
			Aggregate:  isAggregate,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Capability < result[j].Capability })
	return result
}

// Has reports whether the table carries an explicit binding for id.
func (t *Table) Has(id capability.ID) bool {
	_, ok := t.entries[id]
	return ok
}
