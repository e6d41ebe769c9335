// Package dispatch is the capability dispatch façade: the only part of
// the framework visible to ordinary application code.
//
// A context exposes its delegation table through the Context interface.
// Capability suites define one consumer function per capability, and every
// one of them routes through the single generic forwarding rule here —
// resolve the provider, check its impl-side constraints, assert it to the
// suite's provider interface, and forward the call with the context passed
// explicitly:
//
//	func FormatToString(ctx dispatch.Context) (string, error) {
//	    p, err := dispatch.Provider[StringFormatter](ctx, FormatterID)
//	    if err != nil {
//	        return "", err
//	    }
//	    return p.FormatToString(ctx)
//	}
//
// No capability gets a bespoke forwarding path; resolution stays uniform
// and testable. Providers may themselves require further capabilities from
// the same context, recursively reusing the façade.
package dispatch
