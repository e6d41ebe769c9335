// Package capability defines the capability/provider duality at the heart
// of the framework.
//
// A capability is a named abstract behavior (or abstract type) that a
// context may provide. Consumer code invokes a capability through the
// dispatch façade; the implementation lives in a provider — a stateless
// tag that receives the context as an explicit argument. Keeping the
// context explicit lets many unrelated providers implement the same
// signature without identity conflicts.
//
// Capabilities are declared once, process-wide:
//
//	capability.MustDeclare(capability.Declaration{
//	    ID:          "string-formatter",
//	    Description: "formats a context into a string",
//	})
//
// A declaration may carry a default provider, used when a context's
// delegation table has no explicit binding. Explicit bindings always win.
//
// Providers may carry impl-side constraints: predicates on the context
// that are not part of the provider interface. Constraints are checked
// when a capability routing through the provider is actually resolved,
// not when the provider is bound (see the delegation package for the
// eager/lazy policy).
package capability
