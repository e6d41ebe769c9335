package codec

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/raise"
)

func init() {
	capability.MustDeclareProvider(JSONFormatter{}, FormatterID)
	capability.MustDeclareProvider(PrettyJSONFormatter{}, FormatterID)
	capability.MustDeclareProvider(JSONParser{}, ParserID)
}

// JSONFormatter formats any context as compact JSON. It works for every
// context whose exported fields are JSON-encodable.
type JSONFormatter struct{}

func (JSONFormatter) ProviderName() string { return "format-as-json" }

func (JSONFormatter) FormatToString(ctx dispatch.Context) (string, error) {
	out, err := json.Marshal(ctx)
	if err != nil {
		return "", raise.Error(ctx, err)
	}
	return string(out), nil
}

// PrettyJSONFormatter formats any context as indented JSON.
type PrettyJSONFormatter struct{}

func (PrettyJSONFormatter) ProviderName() string { return "format-as-pretty-json" }

func (PrettyJSONFormatter) FormatToString(ctx dispatch.Context) (string, error) {
	out, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return "", raise.Error(ctx, err)
	}
	return string(out), nil
}

// JSONParser parses a context from a JSON string, filling the context
// value in place. Its impl-side constraint requires a non-nil pointer
// context; the constraint is not part of the provider interface and is
// checked only when parsing is actually resolved for a context.
type JSONParser struct{}

func (JSONParser) ProviderName() string { return "parse-from-json" }

func (JSONParser) Constraints() []capability.Constraint {
	return []capability.Constraint{requirePointerContext}
}

func (JSONParser) ParseFromString(ctx dispatch.Context, raw string) error {
	if err := json.Unmarshal([]byte(raw), ctx); err != nil {
		return raise.Error(ctx, err)
	}
	return nil
}

func requirePointerContext(ctx any) error {
	v := reflect.ValueOf(ctx)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("context %T is not an addressable pointer", ctx)
	}
	return nil
}
