// Package typebind resolves context-chosen concrete types for abstract
// type names declared by capabilities ("Error", "Time", "AuthToken").
//
// Binding a type name is itself a capability: each name maps to a
// type-providing capability ID resolved through the same delegation
// resolver as any operation. Because a delegation table rejects duplicate
// keys, a context gets exactly one concrete type per name, and every
// capability that references the name observes that same type.
//
//	typebind.Bind(b, "Error", typebind.Use[AppError]("use-app-error"))
//	typebind.Bind(b, "Time", typebind.Use[time.Time]("use-std-time"))
package typebind
