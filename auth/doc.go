// Package auth is a capability suite for bearer-token authentication
// with expiry. It exercises abstract type bindings (Time, AuthToken),
// recursive capability use (the validator pulls the clock and the expiry
// fetcher from the same context), and source-typed error raising.
//
// A context wires the suite like this:
//
//	b := delegation.NewBuilder("App")
//	typebind.Bind(b, auth.TimeTypeName, typebind.Use[time.Time]("use-std-time"))
//	typebind.Bind(b, auth.TokenTypeName, typebind.Use[string]("use-string-token"))
//	b.Bind(auth.ValidatorID, auth.ValidateNotExpired{})
//	b.Bind(auth.ClockID, auth.SystemClock{})
//	b.Bind(auth.ExpiryFetcherID, auth.JWTExpiryFetcher{})
package auth
