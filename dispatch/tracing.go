package dispatch

import (
	"context"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/observability"
)

// WithTracing returns a Middleware that creates an OpenTelemetry span
// around each resolution. The span name is "capability.resolve.{id}".
// Resolution is synchronous and carries no context.Context of its own,
// so spans are rooted at the process context.
func WithTracing(serviceName string) delegation.Middleware {
	return func(t *delegation.Table, next delegation.ResolveFunc) delegation.ResolveFunc {
		return func(id capability.ID) (capability.Provider, error) {
			spanCtx, span := observability.StartSpan(context.Background(),
				observability.SpanResolve+"."+string(id))
			defer span.End()

			observability.SetSpanAttribute(spanCtx, observability.AttrContextName, t.ContextName())
			observability.SetSpanAttribute(spanCtx, observability.AttrCapabilityID, string(id))

			prov, err := next(id)
			if err != nil {
				observability.SetSpanError(spanCtx, err)
				return prov, err
			}

			observability.SetSpanAttribute(spanCtx, observability.AttrProviderName, prov.ProviderName())
			return prov, nil
		}
	}
}
