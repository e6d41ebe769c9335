package delegation

import "github.com/kbukum/capkit/capability"

// ResolveFunc resolves a capability ID to a provider.
type ResolveFunc func(id capability.ID) (capability.Provider, error)

// Middleware transforms a table's resolver by wrapping it. The returned
// resolver typically delegates to the original while adding cross-cutting
// behavior (logging, metrics, tracing, etc.).
type Middleware func(t *Table, next ResolveFunc) ResolveFunc

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(t, resolve) is equivalent to a(t, b(t, c(t, resolve))).
func Chain(middlewares ...Middleware) Middleware {
	return func(t *Table, inner ResolveFunc) ResolveFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](t, inner)
		}
		return inner
	}
}
