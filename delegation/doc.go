// Package delegation implements the delegation table and the resolution
// algorithm that maps a (context, capability) pair to exactly one provider.
//
// Each context type owns one Table, assembled by a Builder and immutable
// afterward. A binding maps a capability ID to a provider; binding another
// Table makes that table an aggregate provider, and resolution recurses
// into it by the same ID, forming a delegation chain. Chains may be of any
// depth but must be acyclic.
//
// Conflict policy: binding the same ID twice on one builder fails Build
// with AMBIGUOUS_PROVIDER, regardless of order. Explicit bindings always
// take precedence over a capability's declared default provider.
//
// Impl-side provider constraints are checked lazily by default, at the
// first resolved use of each capability, with the result cached per
// (table, capability) since bindings are immutable. The Eager policy
// checks every reachable binding against a prototype context at Build
// time instead.
package delegation
