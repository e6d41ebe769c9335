package capability

import (
	"sort"
	"sync"

	"github.com/kbukum/capkit/errors"
	"github.com/kbukum/capkit/logger"
	"github.com/kbukum/capkit/validation"
)

// Declaration declares one capability, process-wide.
type Declaration struct {
	// ID is the unique capability identifier.
	ID ID `json:"id" validate:"required"`
	// Description is a human-readable summary of the operation or
	// abstract type the capability names.
	Description string `json:"description" validate:"max=255"`
	// Default is an optional blanket provider used when a context's
	// delegation table carries no explicit binding for this capability.
	Default Provider `json:"-"`
}

// ProviderDeclaration records a provider and the capabilities it
// implements, for introspection of the wiring surface.
type ProviderDeclaration struct {
	// Name is the provider's unique name.
	Name string `json:"name" validate:"required"`
	// Implements lists the capability IDs the provider can serve.
	Implements []ID `json:"implements" validate:"min=1"`
	// Constrained reports whether the provider carries impl-side
	// constraints beyond its provider interface.
	Constrained bool `json:"constrained"`
}

// registry is the process-wide declaration registry. Declarations are
// created once at system-definition time and never mutated.
type registry struct {
	mu           sync.RWMutex
	capabilities map[ID]Declaration
	providers    map[string]ProviderDeclaration
}

var global = &registry{
	capabilities: make(map[ID]Declaration),
	providers:    make(map[string]ProviderDeclaration),
}

// Declare registers a capability declaration. Declaring the same ID twice
// is an error.
func Declare(d Declaration) error {
	if err := validation.Struct("capability", d); err != nil {
		return err
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if _, exists := global.capabilities[d.ID]; exists {
		return errors.DuplicateDeclaration("capability", string(d.ID))
	}
	global.capabilities[d.ID] = d

	logger.Debug("capability declared", logger.Fields(
		logger.FieldCapability, string(d.ID),
		"has_default", d.Default != nil,
	))
	return nil
}

// MustDeclare registers a capability declaration, panicking on error.
// Intended for package-level wiring at system-definition time.
func MustDeclare(d Declaration) {
	if err := Declare(d); err != nil {
		panic(err)
	}
}

// DeclareProvider registers a provider declaration for introspection.
// Declaring the same provider name twice is an error.
func DeclareProvider(p Provider, implements ...ID) error {
	d := ProviderDeclaration{
		Name:        p.ProviderName(),
		Implements:  implements,
		Constrained: len(ConstraintsOf(p)) > 0,
	}
	if err := validation.Struct("provider", d); err != nil {
		return err
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if _, exists := global.providers[d.Name]; exists {
		return errors.DuplicateDeclaration("provider", d.Name)
	}
	global.providers[d.Name] = d

	logger.Debug("provider declared", logger.Fields(
		logger.FieldProvider, d.Name,
		"implements", len(implements),
	))
	return nil
}

// MustDeclareProvider registers a provider declaration, panicking on error.
func MustDeclareProvider(p Provider, implements ...ID) {
	if err := DeclareProvider(p, implements...); err != nil {
		panic(err)
	}
}

// Declared reports whether a capability ID has been declared.
func Declared(id ID) bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	_, ok := global.capabilities[id]
	return ok
}

// Default returns the declared default provider for a capability, if any.
func Default(id ID) (Provider, bool) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	d, ok := global.capabilities[id]
	if !ok || d.Default == nil {
		return nil, false
	}
	return d.Default, true
}

// List returns all capability declarations sorted by ID.
func List() []Declaration {
	global.mu.RLock()
	defer global.mu.RUnlock()

	result := make([]Declaration, 0, len(global.capabilities))
	for _, d := range global.capabilities {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Providers returns all provider declarations sorted by name.
func Providers() []ProviderDeclaration {
	global.mu.RLock()
	defer global.mu.RUnlock()

	result := make([]ProviderDeclaration, 0, len(global.providers))
	for _, p := range global.providers {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Reset clears the process-wide registry. Intended for tests only.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.capabilities = make(map[ID]Declaration)
	global.providers = make(map[string]ProviderDeclaration)
}
