package codec

import (
	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/dispatch"
)

// Capability IDs of the suite.
const (
	// FormatterID names the capability of formatting a context into a string.
	FormatterID capability.ID = "string-formatter"
	// ParserID names the capability of parsing a context from a string.
	ParserID capability.ID = "string-parser"
)

func init() {
	capability.MustDeclare(capability.Declaration{
		ID:          FormatterID,
		Description: "formats a context into a string",
	})
	capability.MustDeclare(capability.Declaration{
		ID:          ParserID,
		Description: "parses a context from a string",
	})
}

// StringFormatter is the provider interface of FormatterID: the context is
// an explicit parameter, so unrelated formatter implementations coexist.
type StringFormatter interface {
	capability.Provider
	FormatToString(ctx dispatch.Context) (string, error)
}

// StringParser is the provider interface of ParserID. Parsing fills the
// context value in place, so parser providers require an addressable
// context.
type StringParser interface {
	capability.Provider
	ParseFromString(ctx dispatch.Context, raw string) error
}

// FormatToString formats ctx using its bound formatter provider.
func FormatToString(ctx dispatch.Context) (string, error) {
	p, err := dispatch.Provider[StringFormatter](ctx, FormatterID)
	if err != nil {
		return "", err
	}
	return p.FormatToString(ctx)
}

// ParseFromString parses raw into ctx using its bound parser provider.
func ParseFromString(ctx dispatch.Context, raw string) error {
	p, err := dispatch.Provider[StringParser](ctx, ParserID)
	if err != nil {
		return err
	}
	return p.ParseFromString(ctx, raw)
}
