package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// Permission names used by the built-in rule library. The registry keys
// on open strings, so callers may introduce further names by registering
// rules for them.
const (
	PermissionView               = "View"
	PermissionEdit               = "Edit"
	PermissionAdmin              = "Admin"
	PermissionAppend             = "Append"
	PermissionDriver             = "Driver"
	PermissionModerate           = "Moderate"
	PermissionOwner              = "Owner"
	PermissionSpecial            = "Special"
	PermissionCommercial         = "Commercial"
	PermissionExpensiveRequest   = "ExpensiveRequest"
	PermissionProjectReview      = "ProjectReview"
	PermissionTranslationsAdmin  = "TranslationsAdmin"
	PermissionLanguagePacksAdmin = "LanguagePacksAdmin"
	PermissionMailingListManager = "MailingListManager"
)

// Rule is the decision contract every authorizer implements. A rule is
// bound to a single target object at construction time, holds a read-only
// reference to it, and lives for exactly one check.
//
// Returning (false, nil) is the only channel for "no". An error from a
// check is a fault (collaborator failure, invariant violation) and is
// propagated unchanged by the engine.
type Rule interface {
	// CheckUnauthenticated decides the permission for a caller with no
	// credentials.
	CheckUnauthenticated(ctx context.Context) (bool, error)

	// CheckAuthenticatedPerson decides the permission for a resolved
	// person (which may be a team).
	CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error)
}

// AccountRule is implemented by the few rules that decide directly on the
// authenticated account rather than a person profile. For every other
// rule the engine applies the default delegation: resolve the account to
// a person and re-dispatch, falling back to the unauthenticated check
// when no person exists.
type AccountRule interface {
	Rule

	// CheckAccountAuthenticated decides the permission for an
	// authenticated account that has no resolved person profile.
	CheckAccountAuthenticated(ctx context.Context, account *entities.Account) (bool, error)
}

// Constructor builds a rule bound to the given object. The registry only
// hands an object to a constructor registered for one of the object's
// capabilities, so constructors assert the concrete type directly.
type Constructor func(env *Env, obj entities.Securable) Rule

// base provides the default-deny implementations of both checks. Concrete
// rules embed it and override what they need.
type base struct{}

func (base) CheckUnauthenticated(ctx context.Context) (bool, error) {
	return false, nil
}

func (base) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return false, nil
}
