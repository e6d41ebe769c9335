package dispatch

import (
	"time"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/logger"
)

// WithLogging returns a Middleware that logs each resolution.
// Logs: context name, capability ID, resolved provider, duration, and
// success/error status.
func WithLogging(log *logger.Logger) delegation.Middleware {
	return func(t *delegation.Table, next delegation.ResolveFunc) delegation.ResolveFunc {
		return func(id capability.ID) (capability.Provider, error) {
			start := time.Now()
			prov, err := next(id)
			duration := time.Since(start)

			fields := map[string]interface{}{
				logger.FieldContext:    t.ContextName(),
				logger.FieldCapability: string(id),
				logger.FieldDuration:   duration.Milliseconds(),
			}

			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("capability resolution failed", fields)
			} else {
				fields[logger.FieldProvider] = prov.ProviderName()
				log.Debug("capability resolved", fields)
			}

			return prov, err
		}
	}
}
