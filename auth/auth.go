package auth

import (
	"fmt"
	"time"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/typebind"
)

// Abstract type names bound per context.
const (
	// TimeTypeName is the abstract time type referenced by the suite.
	TimeTypeName typebind.Name = "Time"
	// TokenTypeName is the abstract token representation.
	TokenTypeName typebind.Name = "AuthToken"
)

// Capability IDs of the suite.
const (
	// ValidatorID names the capability of validating a bearer token.
	ValidatorID capability.ID = "auth-token-validator"
	// ExpiryFetcherID names the capability of fetching a token's expiry.
	ExpiryFetcherID capability.ID = "auth-token-expiry-fetcher"
	// ClockID names the capability of reading the current time.
	ClockID capability.ID = "current-time"
)

func init() {
	capability.MustDeclare(capability.Declaration{
		ID:          ValidatorID,
		Description: "validates a bearer token for a context",
	})
	capability.MustDeclare(capability.Declaration{
		ID:          ExpiryFetcherID,
		Description: "fetches the expiry time of a bearer token",
	})
	capability.MustDeclare(capability.Declaration{
		ID:          ClockID,
		Description: "reads the current time",
		Default:     SystemClock{},
	})
}

// TokenValidator is the provider interface of ValidatorID.
type TokenValidator interface {
	capability.Provider
	ValidateToken(ctx dispatch.Context, token string) error
}

// ExpiryFetcher is the provider interface of ExpiryFetcherID.
type ExpiryFetcher interface {
	capability.Provider
	FetchTokenExpiry(ctx dispatch.Context, token string) (time.Time, error)
}

// Clock is the provider interface of ClockID.
type Clock interface {
	capability.Provider
	CurrentTime(ctx dispatch.Context) (time.Time, error)
}

// ValidateToken validates token using the context's bound validator.
func ValidateToken(ctx dispatch.Context, token string) error {
	p, err := dispatch.Provider[TokenValidator](ctx, ValidatorID)
	if err != nil {
		return err
	}
	return p.ValidateToken(ctx, token)
}

// FetchTokenExpiry fetches the expiry of token using the context's bound
// fetcher.
func FetchTokenExpiry(ctx dispatch.Context, token string) (time.Time, error) {
	p, err := dispatch.Provider[ExpiryFetcher](ctx, ExpiryFetcherID)
	if err != nil {
		return time.Time{}, err
	}
	return p.FetchTokenExpiry(ctx, token)
}

// CurrentTime reads the current time using the context's bound clock.
func CurrentTime(ctx dispatch.Context) (time.Time, error) {
	p, err := dispatch.Provider[Clock](ctx, ClockID)
	if err != nil {
		return time.Time{}, err
	}
	return p.CurrentTime(ctx)
}

// ErrTokenExpired is the source error raised when a token's expiry lies
// in the past. Providers raise it by type; the context's raiser decides
// the final representation.
type ErrTokenExpired struct {
	Expiry time.Time
}

func (e ErrTokenExpired) Error() string {
	return fmt.Sprintf("auth token expired at %s", e.Expiry.Format(time.RFC3339))
}

// ErrUnknownToken is the source error raised when a token is not known to
// the context's token store.
type ErrUnknownToken struct {
	Token string
}

func (e ErrUnknownToken) Error() string {
	return fmt.Sprintf("unknown auth token %q", e.Token)
}
