// Package raise converts heterogeneous source error values produced deep
// inside providers into the single error representation a context has
// chosen for itself.
//
// A context binds the abstract "Error" type through typebind, and binds
// raiser providers keyed by source error type. Providers raise by source
// type without ever seeing the context's concrete error type:
//
//	return raise.Error(ctx, ErrTokenExpired{})
//
// Resolution follows the same delegation rules as any capability: a
// per-source-type binding wins; otherwise a generic raiser bound for the
// context covers open-ended sets of source types; otherwise the raise
// fails with ERROR_CONVERSION_FAILED. The conversion happens only at the
// raise boundary, so an application can replace a string-typed error with
// a structured one without touching unrelated providers.
package raise
