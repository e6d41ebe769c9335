package raise

import (
	"fmt"

	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/errors"
)

// asIs returns source error values unchanged. Usable as the generic
// raiser when the context's bound error type is the plain error interface
// and source values already implement it.
type asIs struct{}

func (asIs) ProviderName() string { return "raise-as-is" }

func (asIs) RaiseError(ctx dispatch.Context, source any) error {
	if err, ok := source.(error); ok {
		return err
	}
	return errors.ConversionFailed(ctx.Components().ContextName(), fmt.Sprintf("%T", source)).
		WithDetail("reason", "source does not implement error")
}

// AsIs returns the pass-through raiser.
func AsIs() Raiser { return asIs{} }

// debugRaiser renders any source with a debug format and builds the
// context's error from the resulting string. This is the open-ended
// raiser that lets providers raise plain strings or small marker types
// during prototyping.
type debugRaiser struct {
	name string
	mk   func(msg string) error
}

func (d debugRaiser) ProviderName() string { return d.name }

func (d debugRaiser) RaiseError(_ dispatch.Context, source any) error {
	if err, ok := source.(error); ok {
		return d.mk(err.Error())
	}
	return d.mk(fmt.Sprintf("%+v", source))
}

// Debug creates a generic raiser that formats the source value and
// constructs the bound error via mk.
func Debug(name string, mk func(msg string) error) Raiser {
	return debugRaiser{name: name, mk: mk}
}

// fromRaiser converts one specific source type through an explicit
// conversion rule.
type fromRaiser[S any] struct {
	name    string
	convert func(S) error
}

func (f fromRaiser[S]) ProviderName() string { return f.name }

func (f fromRaiser[S]) RaiseError(ctx dispatch.Context, source any) error {
	s, ok := source.(S)
	if !ok {
		return errors.ConversionFailed(ctx.Components().ContextName(), fmt.Sprintf("%T", source)).
			WithDetail("raiser", f.name)
	}
	return f.convert(s)
}

// From creates a raiser for the source type S backed by an explicit
// conversion function.
func From[S any](name string, convert func(S) error) Raiser {
	return fromRaiser[S]{name: name, convert: convert}
}
