package dispatch

import (
	"context"
	"time"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/errors"
	"github.com/kbukum/capkit/observability"
)

// WithMetrics returns a Middleware that records resolution metrics using
// the observability.Metrics instruments.
// Records: resolution count, duration histogram, and errors by code.
func WithMetrics(metrics *observability.Metrics) delegation.Middleware {
	return func(t *delegation.Table, next delegation.ResolveFunc) delegation.ResolveFunc {
		return func(id capability.ID) (capability.Provider, error) {
			start := time.Now()
			prov, err := next(id)
			duration := time.Since(start)

			ctx := context.Background()
			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, string(errors.CodeOf(err)), string(id))
			}
			metrics.RecordResolution(ctx, t.ContextName(), string(id), status, duration)

			return prov, err
		}
	}
}
