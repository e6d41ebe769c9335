package auth

import (
	"fmt"
	"time"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/raise"
	"github.com/kbukum/capkit/typebind"
)

func init() {
	capability.MustDeclareProvider(ValidateNotExpired{}, ValidatorID)
	capability.MustDeclareProvider(SystemClock{}, ClockID)
	capability.MustDeclareProvider(StoreExpiryFetcher{}, ExpiryFetcherID)
	capability.MustDeclareProvider(JWTExpiryFetcher{}, ExpiryFetcherID)
}

// ValidateNotExpired validates a token by comparing its expiry against the
// context's current time. It is context-generic: it requires the clock
// and the expiry fetcher capabilities from the same context and never
// sees the context's concrete error type — an expired token is raised by
// source type.
type ValidateNotExpired struct{}

func (ValidateNotExpired) ProviderName() string { return "validate-not-expired" }

func (ValidateNotExpired) Constraints() []capability.Constraint {
	return []capability.Constraint{
		typebind.ConstraintIs[time.Time](TimeTypeName),
	}
}

func (ValidateNotExpired) ValidateToken(ctx dispatch.Context, token string) error {
	now, err := CurrentTime(ctx)
	if err != nil {
		return err
	}

	expiry, err := FetchTokenExpiry(ctx, token)
	if err != nil {
		return err
	}

	if expiry.Before(now) {
		return raise.Error(ctx, ErrTokenExpired{Expiry: expiry})
	}
	return nil
}

// SystemClock reads the wall clock. It is the declared default for
// ClockID: contexts only bind a clock explicitly when they need a
// deterministic one.
type SystemClock struct{}

func (SystemClock) ProviderName() string { return "system-clock" }

func (SystemClock) CurrentTime(_ dispatch.Context) (time.Time, error) {
	return time.Now(), nil
}

// FixedClock reports a fixed instant. Intended for deterministic wiring
// in tests.
type FixedClock struct {
	At time.Time
}

func (FixedClock) ProviderName() string { return "fixed-clock" }

func (c FixedClock) CurrentTime(_ dispatch.Context) (time.Time, error) {
	return c.At, nil
}

// TokenStore is the impl-side dependency of StoreExpiryFetcher: a context
// that keeps token expiries itself.
type TokenStore interface {
	TokenExpiry(token string) (time.Time, bool)
}

// StoreExpiryFetcher fetches expiries from the context's own token store.
type StoreExpiryFetcher struct{}

func (StoreExpiryFetcher) ProviderName() string { return "store-expiry-fetcher" }

func (StoreExpiryFetcher) Constraints() []capability.Constraint {
	return []capability.Constraint{requireTokenStore}
}

func (StoreExpiryFetcher) FetchTokenExpiry(ctx dispatch.Context, token string) (time.Time, error) {
	store := ctx.(TokenStore)
	expiry, ok := store.TokenExpiry(token)
	if !ok {
		return time.Time{}, raise.Error(ctx, ErrUnknownToken{Token: token})
	}
	return expiry, nil
}

func requireTokenStore(ctx any) error {
	if _, ok := ctx.(TokenStore); !ok {
		return fmt.Errorf("context %T does not hold a token store", ctx)
	}
	return nil
}
