// Package validation provides input validation for capability, provider,
// and settings declarations.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for declaration structs passed into the capability registry.
//
// # Struct Tag Validation
//
//	type Declaration struct {
//	    ID          string `validate:"required"`
//	    Description string `validate:"max=255"`
//	}
//	err := validation.Struct("capability", decl)
//
// # Programmatic Validation
//
//	v := validation.New("provider")
//	v.Required("name", name)
//	err := v.Validate()
package validation
