package authorization

import (
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// NoRuleRegisteredError reports a permission check against a permission
// that has no rule registered for any of the object's capabilities. This
// is a configuration bug in the caller or the registry population, never
// an access denial, so it surfaces as an error rather than false.
type NoRuleRegisteredError struct {
	Permission string
	ObjectKey  string
	Tags       []entities.Tag
}

func (e *NoRuleRegisteredError) Error() string {
	return fmt.Sprintf("no rule registered for permission %q on %s (capabilities %v)",
		e.Permission, e.ObjectKey, e.Tags)
}

// InvariantViolationError reports that a rule body found the object graph
// in a state its logic assumes impossible (e.g. a required related object
// is missing). It is a fault, not a denial; the engine propagates it
// unchanged.
type InvariantViolationError struct {
	Rule   string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation in rule %s: %s", e.Rule, e.Reason)
}

// DuplicateRegistrationError reports two registrations for the same
// (permission, capability) pair. Registration happens once at process
// start, so this is a programmer error caught at build time of the
// registry, not at request time.
type DuplicateRegistrationError struct {
	Permission string
	Tag        entities.Tag
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("rule already registered for permission %q on capability %q",
		e.Permission, e.Tag)
}
