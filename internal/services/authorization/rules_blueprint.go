package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// viewSpecification governs "View" on specifications: public ones for
// everyone, private ones for the registrant, subscribers and admins.
type viewSpecification struct {
	base
	env  *Env
	spec *entities.Specification
}

func newViewSpecification(env *Env, obj entities.Securable) Rule {
	return &viewSpecification{env: env, spec: obj.(*entities.Specification)}
}

func (r *viewSpecification) CheckUnauthenticated(ctx context.Context) (bool, error) {
	return !r.spec.Private, nil
}

func (r *viewSpecification) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if !r.spec.Private {
		return true, nil
	}
	if ok, err := r.env.InTeam(ctx, person, r.spec.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := isSubscribed(ctx, r.env, person, r.spec.Subscribers); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// editSpecification governs "Edit" on specifications: the registrant,
// the target pillar's owning team, or admins. A specification always has
// a target by construction; a nil target is an invariant violation.
type editSpecification struct {
	base
	env  *Env
	spec *entities.Specification
}

func newEditSpecification(env *Env, obj entities.Securable) Rule {
	return &editSpecification{env: env, spec: obj.(*entities.Specification)}
}

func (r *editSpecification) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if r.spec.Target == nil {
		return false, &InvariantViolationError{
			Rule:   "editSpecification",
			Reason: "specification " + r.spec.Key() + " has no target",
		}
	}
	if ok, err := r.env.InTeam(ctx, person, r.spec.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := r.env.InTeam(ctx, person, r.spec.Target.ObjectOwner()); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// driverSpecification governs "Driver" on specifications: only once the
// specification has been proposed for a goal series, and then only for
// callers holding "Driver" on that goal. The nested check re-enters the
// engine; the goal graph is acyclic by construction and the engine's
// depth guard backstops it.
type driverSpecification struct {
	base
	env  *Env
	spec *entities.Specification
}

func newDriverSpecification(env *Env, obj entities.Securable) Rule {
	return &driverSpecification{env: env, spec: obj.(*entities.Specification)}
}

func (r *driverSpecification) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if r.spec.Goal == nil {
		return false, nil
	}
	return r.env.Check(ctx, PermissionDriver, r.spec.Goal, entities.AuthenticatedPerson{Person: person})
}
