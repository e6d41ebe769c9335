package codec

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/capkit/delegation"
	"github.com/kbukum/capkit/errors"
	"github.com/kbukum/capkit/raise"
)

// Person is a concrete context type. Its delegation table is unexported so
// formatter providers only ever see the data fields.
type Person struct {
	components *delegation.Table

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p *Person) Components() *delegation.Table { return p.components }

var personComponents = delegation.NewBuilder("Person").
	Bind(FormatterID, JSONFormatter{}).
	Bind(ParserID, JSONParser{}).
	MustBuild()

func newPerson(first, last string) *Person {
	return &Person{components: personComponents, FirstName: first, LastName: last}
}

func TestFormatPersonAsJSON(t *testing.T) {
	person := newPerson("John", "Smith")

	out, err := FormatToString(person)
	if err != nil {
		t.Fatalf("FormatToString failed: %v", err)
	}
	want := `{"first_name":"John","last_name":"Smith"}`
	if out != want {
		t.Errorf("expected %s, got %s", want, out)
	}
}

func TestParsePersonFromJSON(t *testing.T) {
	person := newPerson("", "")

	raw := `{"first_name":"John","last_name":"Smith"}`
	if err := ParseFromString(person, raw); err != nil {
		t.Fatalf("ParseFromString failed: %v", err)
	}
	if person.FirstName != "John" || person.LastName != "Smith" {
		t.Errorf("unexpected parse result: %+v", person)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	src := newPerson("John", "Smith")
	out, err := FormatToString(src)
	if err != nil {
		t.Fatalf("FormatToString failed: %v", err)
	}

	dst := newPerson("", "")
	if err := ParseFromString(dst, out); err != nil {
		t.Fatalf("ParseFromString failed: %v", err)
	}
	if dst.FirstName != src.FirstName || dst.LastName != src.LastName {
		t.Errorf("round trip mismatch: %+v vs %+v", dst, src)
	}
}

// PrettyPerson is the same data shape wired with the indenting formatter.
// Swapping the formatter binding must not disturb parsing.
type PrettyPerson struct {
	components *delegation.Table

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p *PrettyPerson) Components() *delegation.Table { return p.components }

var prettyComponents = delegation.NewBuilder("PrettyPerson").
	Bind(FormatterID, PrettyJSONFormatter{}).
	Bind(ParserID, JSONParser{}).
	MustBuild()

func TestRebindingFormatterLeavesParserUntouched(t *testing.T) {
	person := &PrettyPerson{components: prettyComponents, FirstName: "John", LastName: "Smith"}

	out, err := FormatToString(person)
	if err != nil {
		t.Fatalf("FormatToString failed: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("expected indented output, got %s", out)
	}
	if !strings.Contains(out, `"first_name": "John"`) {
		t.Errorf("unexpected pretty output: %s", out)
	}

	// Parsing consumes the compact form byte for byte, exactly as the
	// compact-formatter wiring does.
	parsed := &PrettyPerson{components: prettyComponents}
	if err := ParseFromString(parsed, `{"first_name":"John","last_name":"Smith"}`); err != nil {
		t.Fatalf("ParseFromString failed: %v", err)
	}
	if parsed.FirstName != "John" || parsed.LastName != "Smith" {
		t.Errorf("unexpected parse result: %+v", parsed)
	}

	// The pretty output itself parses back too.
	reparsed := &PrettyPerson{components: prettyComponents}
	if err := ParseFromString(reparsed, out); err != nil {
		t.Fatalf("ParseFromString of pretty output failed: %v", err)
	}
	if reparsed.FirstName != "John" {
		t.Errorf("unexpected reparse result: %+v", reparsed)
	}
}

// valuePerson exposes its table through a value receiver, so a value (not
// a pointer) satisfies dispatch.Context. Parsing into it is impossible.
type valuePerson struct {
	components *delegation.Table

	FirstName string `json:"first_name"`
}

func (p valuePerson) Components() *delegation.Table { return p.components }

func TestParserRequiresPointerContext(t *testing.T) {
	table := delegation.NewBuilder("ValuePerson").
		Bind(ParserID, JSONParser{}).
		MustBuild()
	person := valuePerson{components: table}

	// Building the table succeeded even though the constraint can never
	// hold; the failure surfaces at first use.
	err := ParseFromString(person, `{"first_name":"John"}`)
	if !errors.HasCode(err, errors.ErrCodeUnsatisfiedConstraint) {
		t.Errorf("expected UNSATISFIED_CONSTRAINT, got %v", err)
	}
}

func TestFormatterUnbound(t *testing.T) {
	table := delegation.NewBuilder("Bare").MustBuild()
	person := &Person{components: table}

	_, err := FormatToString(person)
	if !errors.HasCode(err, errors.ErrCodeMissingProvider) {
		t.Errorf("expected MISSING_PROVIDER, got %v", err)
	}
}

// brokenDoc carries a field the JSON encoder rejects, to exercise the
// raise path of formatter providers.
type brokenDoc struct {
	components *delegation.Table

	Stream chan int `json:"stream"`
}

func (d *brokenDoc) Components() *delegation.Table { return d.components }

func TestFormatterRaisesEncodingFailure(t *testing.T) {
	table := delegation.NewBuilder("BrokenDoc").
		Bind(FormatterID, JSONFormatter{}).
		MustBuild()
	doc := &brokenDoc{components: table, Stream: make(chan int)}

	// Without any raiser wired, conversion of the encoder error fails.
	_, err := FormatToString(doc)
	if !errors.HasCode(err, errors.ErrCodeConversionFailed) {
		t.Errorf("expected ERROR_CONVERSION_FAILED, got %v", err)
	}
}

func TestFormatterRaisesThroughGenericRaiser(t *testing.T) {
	b := delegation.NewBuilder("BrokenDoc").
		Bind(FormatterID, JSONFormatter{})
	raise.BindGeneric(b, raise.AsIs())
	doc := &brokenDoc{components: b.MustBuild(), Stream: make(chan int)}

	_, err := FormatToString(doc)
	if err == nil {
		t.Fatal("expected an encoding error")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("expected the encoder error passed through, got %v", err)
	}
}

func TestParserRaisesDecodingFailure(t *testing.T) {
	b := delegation.NewBuilder("Person").
		Bind(ParserID, JSONParser{})
	raise.BindGeneric(b, raise.AsIs())
	person := &Person{components: b.MustBuild()}

	err := ParseFromString(person, `{"first_name":`)
	if err == nil {
		t.Fatal("expected a decoding error")
	}
	var syntaxErr *json.SyntaxError
	if !stderrors.As(err, &syntaxErr) {
		// The decoder may report an unexpected EOF instead.
		if !strings.Contains(err.Error(), "unexpected end of JSON input") {
			t.Errorf("expected a JSON decode error, got %v", err)
		}
	}
}
