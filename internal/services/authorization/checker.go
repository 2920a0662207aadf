package authorization

import (
	"context"
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// MaxDepth is the maximum recursion depth for rules that re-enter the
// engine on related objects. Goal/target graphs are acyclic by domain
// construction; this guard only converts a broken graph into an error
// instead of a hang.
const MaxDepth = 100

// PermissionChecker is the public decision contract. Wrappers (caching,
// metrics) and the engine itself all satisfy it.
type PermissionChecker interface {
	// CheckPermission reports whether identity holds the named permission
	// on obj. False is the ordinary denial outcome; an error is a
	// configuration or invariant fault, never a denial.
	CheckPermission(ctx context.Context, permission string, obj entities.Securable, identity entities.Identity) (bool, error)
}

// Checker is the decision engine: it resolves the governing rule via the
// registry, binds it to the object and dispatches on the caller identity.
// It holds no per-call state and performs no caching, so one instance is
// safe for concurrent use once its registry is frozen.
type Checker struct {
	registry *Registry
	env      *Env
}

// NewChecker creates a checker over a frozen registry and the injected
// collaborators.
func NewChecker(registry *Registry, dir directory.Directory) (*Checker, error) {
	if !registry.Frozen() {
		return nil, fmt.Errorf("registry must be frozen before constructing a checker")
	}
	c := &Checker{registry: registry}
	c.env = &Env{
		people:      dir,
		teams:       dir,
		celebrities: dir,
		checker:     c,
	}
	return c, nil
}

type depthKey struct{}

// descend increments the recursion depth carried by the context, failing
// once MaxDepth is exceeded.
func descend(ctx context.Context) (context.Context, error) {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= MaxDepth {
		return nil, fmt.Errorf("maximum recursion depth exceeded (depth: %d)", depth)
	}
	return context.WithValue(ctx, depthKey{}, depth+1), nil
}

// CheckPermission implements PermissionChecker.
func (c *Checker) CheckPermission(ctx context.Context, permission string, obj entities.Securable, identity entities.Identity) (bool, error) {
	if err := validateCheck(permission, obj, identity); err != nil {
		return false, fmt.Errorf("invalid permission check: %w", err)
	}

	ctx, err := descend(ctx)
	if err != nil {
		return false, err
	}

	ctor, err := c.registry.Resolve(permission, obj)
	if err != nil {
		return false, err
	}

	return c.dispatch(ctx, ctor(c.env, obj), identity)
}

// dispatch is the three-way identity dispatch. For account-only callers
// the default delegation applies unless the rule decides on accounts
// itself: resolve the account to a person and re-dispatch, or degrade to
// the unauthenticated check when no person exists.
func (c *Checker) dispatch(ctx context.Context, rule Rule, identity entities.Identity) (bool, error) {
	switch id := identity.(type) {
	case entities.Unauthenticated:
		return rule.CheckUnauthenticated(ctx)

	case entities.AccountOnly:
		if accountRule, ok := rule.(AccountRule); ok {
			return accountRule.CheckAccountAuthenticated(ctx, id.Account)
		}
		person, err := c.env.people.ResolvePerson(ctx, id.Account)
		if err != nil {
			return false, fmt.Errorf("failed to resolve account %s: %w", id.Account.Email, err)
		}
		if person == nil {
			return rule.CheckUnauthenticated(ctx)
		}
		return rule.CheckAuthenticatedPerson(ctx, person)

	case entities.AuthenticatedPerson:
		return rule.CheckAuthenticatedPerson(ctx, id.Person)

	default:
		return false, fmt.Errorf("unknown identity variant: %T", identity)
	}
}

// validateCheck rejects malformed checks before rule resolution.
func validateCheck(permission string, obj entities.Securable, identity entities.Identity) error {
	if permission == "" {
		return fmt.Errorf("permission is required")
	}
	if obj == nil {
		return fmt.Errorf("object is required")
	}
	if identity == nil {
		return fmt.Errorf("identity is required")
	}
	switch id := identity.(type) {
	case entities.AccountOnly:
		if id.Account == nil {
			return fmt.Errorf("account identity has no account")
		}
	case entities.AuthenticatedPerson:
		if id.Person == nil {
			return fmt.Errorf("person identity has no person")
		}
	}
	return nil
}
