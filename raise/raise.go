package raise

import (
	"reflect"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/errors"
	"github.com/kbukum/capkit/typebind"
)

// ErrorTypeName is the abstract type name contexts bind their concrete
// error type under.
const ErrorTypeName typebind.Name = "Error"

const idPrefix = "raise/"

// GenericID is the capability ID of the generic raiser: the fallback for
// source types without a specific binding.
const GenericID capability.ID = idPrefix + "any"

// CapabilityIDFor returns the capability ID of the raiser for one source
// error type.
func CapabilityIDFor(source any) capability.ID {
	return idForType(reflect.TypeOf(source))
}

func idForType(t reflect.Type) capability.ID {
	if t == nil {
		return GenericID
	}
	return capability.ID(idPrefix + t.String())
}

// Raiser is the provider interface of the error raising capability:
// convert one source error value into the context's bound error type.
type Raiser interface {
	capability.Provider
	RaiseError(ctx dispatch.Context, source any) error
}

// Bind wires a raiser for the source type S on the builder.
func Bind[S any](b *delegation.Builder, raiser Raiser) *delegation.Builder {
	return b.Bind(idForType(reflect.TypeOf((*S)(nil)).Elem()), raiser)
}

// BindGeneric wires the fallback raiser covering every source type
// without a specific binding.
func BindGeneric(b *delegation.Builder, raiser Raiser) *delegation.Builder {
	return b.Bind(GenericID, raiser)
}

// Error converts a source error value into the error type bound for ctx.
// It resolves the source type's specific raiser first, falls back to the
// context's generic raiser, and fails with ERROR_CONVERSION_FAILED when
// neither resolves. The number of capability calls that propagated the
// source upward is irrelevant; conversion happens exactly once, here.
func Error[S any](ctx dispatch.Context, source S) error {
	srcType := reflect.TypeOf((*S)(nil)).Elem()

	raiser, err := dispatch.Provider[Raiser](ctx, idForType(srcType))
	if err != nil {
		if !errors.HasCode(err, errors.ErrCodeMissingProvider) {
			return err
		}
		raiser, err = dispatch.Provider[Raiser](ctx, GenericID)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeMissingProvider) {
				return errors.ConversionFailed(ctx.Components().ContextName(), srcType.String())
			}
			return err
		}
	}

	return raiser.RaiseError(ctx, source)
}
