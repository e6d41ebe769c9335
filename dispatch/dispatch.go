package dispatch

import (
	"fmt"
	"reflect"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/errors"
)

// Context is implemented by every concrete context type: it exposes the
// delegation table the context was wired with. The table is fixed for the
// lifetime of the context type.
type Context interface {
	Components() *delegation.Table
}

// Provider resolves the provider bound for id on ctx and asserts it to
// the provider interface P. It is the single blanket forwarding rule of
// the framework; every consumer function routes through it.
//
// A provider that resolves but does not implement P, or whose impl-side
// constraints reject ctx, fails with UNSATISFIED_CONSTRAINT — surfaced at
// first use, never at binding time.
func Provider[P any](ctx Context, id capability.ID) (P, error) {
	var zero P

	table := ctx.Components()
	prov, err := table.Resolve(id)
	if err != nil {
		return zero, err
	}

	if err := table.CheckConstraints(id, prov, ctx); err != nil {
		return zero, err
	}

	p, ok := prov.(P)
	if !ok {
		return zero, errors.UnsatisfiedConstraint(
			prov.ProviderName(),
			table.ContextName(),
			fmt.Sprintf("provider does not implement %s required by capability %q",
				reflect.TypeOf(&zero).Elem().String(), id),
		)
	}
	return p, nil
}

// MustProvider resolves like Provider, panicking on error. Use it in
// wiring that is exercised unconditionally at startup.
func MustProvider[P any](ctx Context, id capability.ID) P {
	p, err := Provider[P](ctx, id)
	if err != nil {
		panic(fmt.Sprintf("dispatch: failed to resolve %s: %v", id, err))
	}
	return p
}

// TryProvider resolves like Provider, returning false instead of an error.
// Use it when a capability is optional for the caller.
func TryProvider[P any](ctx Context, id capability.ID) (P, bool) {
	p, err := Provider[P](ctx, id)
	if err != nil {
		var zero P
		return zero, false
	}
	return p, true
}
