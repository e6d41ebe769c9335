package delegation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/capkit/capability"
	cerrors "github.com/kbukum/capkit/errors"
)

type fakeProvider struct{ name string }

func (p fakeProvider) ProviderName() string { return p.name }

type constrainedProvider struct {
	name   string
	checks []capability.Constraint
}

func (p constrainedProvider) ProviderName() string                 { return p.name }
func (p constrainedProvider) Constraints() []capability.Constraint { return p.checks }

const (
	capFormat capability.ID = "test-format"
	capParse  capability.ID = "test-parse"
)

func TestResolveSingleBinding(t *testing.T) {
	prov := fakeProvider{name: "json"}
	table, err := NewBuilder("Person").Bind(capFormat, prov).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Resolution is deterministic: same provider on every call.
	for i := 0; i < 3; i++ {
		got, err := table.Resolve(capFormat)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got.ProviderName() != "json" {
			t.Errorf("expected provider 'json', got %q", got.ProviderName())
		}
	}
}

func TestDuplicateBindingFailsBuild(t *testing.T) {
	_, err := NewBuilder("Person").
		Bind(capFormat, fakeProvider{name: "json"}).
		Bind(capFormat, fakeProvider{name: "pretty-json"}).
		Build()
	if err == nil {
		t.Fatal("expected AmbiguousProvider error")
	}
	if !cerrors.HasCode(err, cerrors.ErrCodeAmbiguousProvider) {
		t.Errorf("expected AMBIGUOUS_PROVIDER, got %v", err)
	}

	// Declaration order must not matter.
	_, err = NewBuilder("Person").
		Bind(capFormat, fakeProvider{name: "pretty-json"}).
		Bind(capFormat, fakeProvider{name: "json"}).
		Build()
	if !cerrors.HasCode(err, cerrors.ErrCodeAmbiguousProvider) {
		t.Errorf("expected AMBIGUOUS_PROVIDER regardless of order, got %v", err)
	}
}

func TestResolveMissingProvider(t *testing.T) {
	table, err := NewBuilder("Person").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	_, err = table.Resolve(capFormat)
	if err == nil {
		t.Fatal("expected MissingProvider error")
	}
	if !cerrors.HasCode(err, cerrors.ErrCodeMissingProvider) {
		t.Errorf("expected MISSING_PROVIDER, got %v", err)
	}
}

func TestResolveDeclaredDefault(t *testing.T) {
	const capWithDefault capability.ID = "test-with-default"
	def := fakeProvider{name: "default-provider"}
	if err := capability.Declare(capability.Declaration{
		ID:          capWithDefault,
		Description: "capability with a blanket default",
		Default:     def,
	}); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}

	// No explicit binding: the default applies.
	table := NewBuilder("Person").MustBuild()
	got, err := table.Resolve(capWithDefault)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ProviderName() != "default-provider" {
		t.Errorf("expected default provider, got %q", got.ProviderName())
	}

	// An explicit binding always wins over the default.
	explicit := fakeProvider{name: "explicit-provider"}
	table = NewBuilder("Person").Bind(capWithDefault, explicit).MustBuild()
	got, err = table.Resolve(capWithDefault)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ProviderName() != "explicit-provider" {
		t.Errorf("explicit binding must take precedence, got %q", got.ProviderName())
	}
}

func TestDelegationChainResolution(t *testing.T) {
	leaf := fakeProvider{name: "leaf"}

	inner := NewBuilder("InnerComponents").Bind(capFormat, leaf).MustBuild()
	middle := NewBuilder("MiddleComponents").Delegate(capFormat, inner).MustBuild()
	table := NewBuilder("Person").Delegate(capFormat, middle).MustBuild()

	got, err := table.Resolve(capFormat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ProviderName() != "leaf" {
		t.Errorf("expected chain to resolve to 'leaf', got %q", got.ProviderName())
	}
}

func TestDelegationChainDepthIndependence(t *testing.T) {
	leaf := fakeProvider{name: "leaf"}
	cur := NewBuilder("Depth0").Bind(capFormat, leaf).MustBuild()

	for depth := 1; depth <= 16; depth++ {
		cur = NewBuilder(fmt.Sprintf("Depth%d", depth)).Delegate(capFormat, cur).MustBuild()
	}

	got, err := cur.Resolve(capFormat)
	if err != nil {
		t.Fatalf("Resolve failed at depth 16: %v", err)
	}
	if got.ProviderName() != "leaf" {
		t.Errorf("expected 'leaf' at depth 16, got %q", got.ProviderName())
	}
}

func TestDeadEndedChainFailsBuild(t *testing.T) {
	// The aggregate carries a binding for a different capability, so the
	// chain for capFormat ends unresolvable.
	aggregate := NewBuilder("Aggregate").Bind(capParse, fakeProvider{name: "parser"}).MustBuild()

	_, err := NewBuilder("Person").Delegate(capFormat, aggregate).Build()
	if err == nil {
		t.Fatal("expected Build to fail on dead-ended chain")
	}
	if !cerrors.HasCode(err, cerrors.ErrCodeMissingProvider) {
		t.Errorf("expected MISSING_PROVIDER, got %v", err)
	}
}

func TestCyclicDelegationDetected(t *testing.T) {
	// Builders cannot express a cycle directly because tables are
	// immutable once built, so assemble the degenerate case by hand: a
	// table whose chain for capFormat leads back to itself.
	a := &Table{
		id:          "cycle-a",
		contextName: "CycleA",
		entries:     map[capability.ID]capability.Provider{},
	}
	b := &Table{
		id:          "cycle-b",
		contextName: "CycleB",
		entries:     map[capability.ID]capability.Provider{capFormat: a},
	}
	a.entries[capFormat] = b
	a.resolve = a.resolveChain

	_, err := a.Resolve(capFormat)
	if err == nil {
		t.Fatal("expected CyclicDelegation error")
	}
	if !cerrors.HasCode(err, cerrors.ErrCodeCyclicDelegation) {
		t.Errorf("expected CYCLIC_DELEGATION, got %v", err)
	}

	var fe *cerrors.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected framework error, got %T", err)
	}
	chain, _ := fe.Details["chain"].([]string)
	if len(chain) != 3 || chain[1] != "CycleB" {
		t.Errorf("unexpected chain detail: %v", chain)
	}
}

func TestConstraintsCheckedLazilyAndCached(t *testing.T) {
	evaluations := 0
	prov := constrainedProvider{
		name: "picky",
		checks: []capability.Constraint{func(ctx any) error {
			evaluations++
			if ctx == nil {
				return errors.New("context is nil")
			}
			return nil
		}},
	}

	// Binding a provider with an unsatisfiable constraint never fails.
	table := NewBuilder("Person").Bind(capFormat, prov).MustBuild()
	if evaluations != 0 {
		t.Fatalf("constraints must not run at build time under the lazy policy, ran %d times", evaluations)
	}

	resolved, err := table.Resolve(capFormat)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// First use evaluates; later uses hit the cache.
	if err := table.CheckConstraints(capFormat, resolved, "ctx"); err != nil {
		t.Fatalf("CheckConstraints failed: %v", err)
	}
	if err := table.CheckConstraints(capFormat, resolved, "ctx"); err != nil {
		t.Fatalf("CheckConstraints failed on cached path: %v", err)
	}
	if evaluations != 1 {
		t.Errorf("expected exactly 1 constraint evaluation, got %d", evaluations)
	}
}

func TestConstraintFailureIsCached(t *testing.T) {
	evaluations := 0
	prov := constrainedProvider{
		name: "always-fails",
		checks: []capability.Constraint{func(any) error {
			evaluations++
			return errors.New("never satisfied")
		}},
	}

	table := NewBuilder("Person").Bind(capFormat, prov).MustBuild()
	resolved, _ := table.Resolve(capFormat)

	for i := 0; i < 3; i++ {
		err := table.CheckConstraints(capFormat, resolved, "ctx")
		if !cerrors.HasCode(err, cerrors.ErrCodeUnsatisfiedConstraint) {
			t.Fatalf("expected UNSATISFIED_CONSTRAINT, got %v", err)
		}
	}
	if evaluations != 1 {
		t.Errorf("expected failure to be cached after 1 evaluation, got %d", evaluations)
	}
}

func TestEagerValidationFailsBuild(t *testing.T) {
	prov := constrainedProvider{
		name: "needs-store",
		checks: []capability.Constraint{func(ctx any) error {
			if _, ok := ctx.(string); !ok {
				return errors.New("context is not a string")
			}
			return nil
		}},
	}

	_, err := NewBuilder("Person", WithEagerValidation(42)).
		Bind(capFormat, prov).
		Build()
	if err == nil {
		t.Fatal("expected eager Build to fail")
	}
	if !cerrors.HasCode(err, cerrors.ErrCodeUnsatisfiedConstraint) {
		t.Errorf("expected UNSATISFIED_CONSTRAINT, got %v", err)
	}

	// The same wiring passes when the prototype satisfies the constraint.
	if _, err := NewBuilder("Person", WithEagerValidation("proto")).
		Bind(capFormat, prov).
		Build(); err != nil {
		t.Fatalf("eager Build with satisfying prototype failed: %v", err)
	}
}

func TestMiddlewareOrderAndInvocation(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(_ *Table, next ResolveFunc) ResolveFunc {
			return func(id capability.ID) (capability.Provider, error) {
				trace = append(trace, tag+"-in")
				p, err := next(id)
				trace = append(trace, tag+"-out")
				return p, err
			}
		}
	}

	table := NewBuilder("Person", WithMiddleware(mw("outer"), mw("inner"))).
		Bind(capFormat, fakeProvider{name: "json"}).
		MustBuild()

	trace = trace[:0] // Build pre-walks bindings; only observe the explicit call
	if _, err := table.Resolve(capFormat); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := "outer-in,inner-in,inner-out,outer-out"
	if got := strings.Join(trace, ","); got != want {
		t.Errorf("middleware order: expected %s, got %s", want, got)
	}
}

func TestBindingsIntrospection(t *testing.T) {
	aggregate := NewBuilder("Aggregate").Bind(capParse, fakeProvider{name: "parser"}).MustBuild()
	table := NewBuilder("Person").
		Bind(capFormat, fakeProvider{name: "json"}).
		Delegate(capParse, aggregate).
		MustBuild()

	bindings := table.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	if bindings[0].Capability != capFormat || bindings[0].Aggregate {
		t.Errorf("unexpected first binding: %+v", bindings[0])
	}
	if bindings[1].Capability != capParse || !bindings[1].Aggregate {
		t.Errorf("unexpected second binding: %+v", bindings[1])
	}
}

func TestBindAll(t *testing.T) {
	prov := fakeProvider{name: "json"}
	table := NewBuilder("Person").
		BindAll([]capability.ID{capFormat, capParse}, prov).
		MustBuild()

	for _, id := range []capability.ID{capFormat, capParse} {
		got, err := table.Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", id, err)
		}
		if got.ProviderName() != "json" {
			t.Errorf("expected 'json' for %s, got %q", id, got.ProviderName())
		}
	}
}

func TestTableIdentity(t *testing.T) {
	a := NewBuilder("Person").MustBuild()
	b := NewBuilder("Person").MustBuild()
	if a.ID() == b.ID() {
		t.Error("expected distinct table IDs")
	}
	if a.ProviderName() != "components/Person" {
		t.Errorf("unexpected aggregate provider name: %s", a.ProviderName())
	}
}
