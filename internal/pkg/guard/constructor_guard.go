// Package guard implements the constructor guard pattern used by domain objects
// to ensure they are only created through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was properly initialized through its
// constructor or created as a zero value. Embedding a ConstructorGuard in a value
// object or command makes zero-value instances fail validation, which keeps domain
// invariants enforced at the construction boundary.
//
// Example usage:
//
//	var ErrTokenNotConstructed = errors.New("AccessToken must be created via NewAccessToken")
//
//	type AccessToken struct {
//	    value string
//	    guard ConstructorGuard
//	}
//
//	func (t AccessToken) Validate() error {
//	    return t.guard.Validate(ErrTokenNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as properly
// constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its constructor.
// For zero-value instances it returns validationError, or ErrDefaultConstructorGuard
// when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
