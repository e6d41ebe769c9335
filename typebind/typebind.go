package typebind

import (
	"fmt"
	"reflect"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/dispatch"
)

// Name is an abstract type name declared by a capability.
type Name string

// idPrefix namespaces type-providing capabilities inside delegation tables.
const idPrefix = "type/"

// CapabilityID returns the capability ID of the type-providing capability
// for an abstract type name.
func CapabilityID(name Name) capability.ID {
	return capability.ID(idPrefix + string(name))
}

// TypeProvider is the provider interface of type-providing capabilities:
// a zero-data tag carrying the concrete type chosen for one context.
type TypeProvider interface {
	capability.Provider
	AbstractType() reflect.Type
}

type useType struct {
	name string
	typ  reflect.Type
}

func (u useType) ProviderName() string       { return u.name }
func (u useType) AbstractType() reflect.Type { return u.typ }

// Use creates a TypeProvider binding the abstract type to T.
func Use[T any](providerName string) TypeProvider {
	return useType{
		name: providerName,
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// Bind wires the type-providing capability for name on the builder.
// Binding the same name twice on one context is rejected by the builder's
// duplicate-key rule, which is what keeps type bindings consistent.
func Bind(b *delegation.Builder, name Name, tp TypeProvider) *delegation.Builder {
	return b.Bind(CapabilityID(name), tp)
}

// Resolve returns the concrete type bound for name on ctx.
func Resolve(ctx dispatch.Context, name Name) (reflect.Type, error) {
	tp, err := dispatch.Provider[TypeProvider](ctx, CapabilityID(name))
	if err != nil {
		return nil, err
	}
	return tp.AbstractType(), nil
}

// Is reports whether name is bound to exactly T on ctx.
func Is[T any](ctx dispatch.Context, name Name) bool {
	typ, err := Resolve(ctx, name)
	if err != nil {
		return false
	}
	return typ == reflect.TypeOf((*T)(nil)).Elem()
}

// ConstraintIs returns an impl-side constraint requiring that name is
// bound to exactly T on the context a provider is resolved for. Providers
// that only work with one concrete binding of an abstract type declare
// this instead of asserting at call time.
func ConstraintIs[T any](name Name) capability.Constraint {
	want := reflect.TypeOf((*T)(nil)).Elem()
	return func(ctx any) error {
		c, ok := ctx.(dispatch.Context)
		if !ok {
			return fmt.Errorf("context %T does not expose a delegation table", ctx)
		}
		got, err := Resolve(c, name)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("abstract type %q is bound to %s, provider requires %s", name, got, want)
		}
		return nil
	}
}
