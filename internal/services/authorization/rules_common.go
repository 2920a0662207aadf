package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// viewByLoggedInUser is the universal fallback for permission "View":
// any authenticated person may view, anonymous callers may not. The
// registry applies it to every object with no narrower view rule.
type viewByLoggedInUser struct {
	base
}

func newViewByLoggedInUser(env *Env, obj entities.Securable) Rule {
	return &viewByLoggedInUser{}
}

func (r *viewByLoggedInUser) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return true, nil
}

// adminByAdminsTeam grants only members of the admin celebrity team.
type adminByAdminsTeam struct {
	base
	env *Env
}

func newAdminByAdminsTeam(env *Env, obj entities.Securable) Rule {
	return &adminByAdminsTeam{env: env}
}

func (r *adminByAdminsTeam) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return r.env.IsAdmin(ctx, person)
}

// editByOwnersOrAdmins is the generic edit rule for anything owned:
// members of the owning person or team, or admins.
type editByOwnersOrAdmins struct {
	base
	env *Env
	obj entities.Owned
}

func newEditByOwnersOrAdmins(env *Env, obj entities.Securable) Rule {
	return &editByOwnersOrAdmins{env: env, obj: obj.(entities.Owned)}
}

func (r *editByOwnersOrAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.obj.ObjectOwner()); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// driverByDriversOrOwnersOrAdmins governs the "Driver" permission on
// anything with a driver list: the drivers themselves, members of the
// owning team, or admins.
type driverByDriversOrOwnersOrAdmins struct {
	base
	env *Env
	obj entities.Driven
}

func newDriverByDriversOrOwnersOrAdmins(env *Env, obj entities.Securable) Rule {
	return &driverByDriversOrOwnersOrAdmins{env: env, obj: obj.(entities.Driven)}
}

func (r *driverByDriversOrOwnersOrAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InAnyTeam(ctx, person, r.obj.ObjectDrivers()); err != nil || ok {
		return ok, err
	}
	if owned, hasOwner := r.obj.(entities.Owned); hasOwner {
		if ok, err := r.env.InTeam(ctx, person, owned.ObjectOwner()); err != nil || ok {
			return ok, err
		}
	}
	return r.env.IsAdmin(ctx, person)
}

// isSubscribed reports whether person is one of the subscribers, directly
// or through a subscribed team.
func isSubscribed(ctx context.Context, env *Env, person *entities.Person, subscribers []*entities.Person) (bool, error) {
	return env.InAnyTeam(ctx, person, subscribers)
}

// celebrityOrAdmin reports membership in the named celebrity team or the
// admin team, the disjunction most administrative overrides share.
func celebrityOrAdmin(ctx context.Context, env *Env, person *entities.Person, celebrity string) (bool, error) {
	if ok, err := env.InCelebrityTeam(ctx, person, celebrity); err != nil || ok {
		return ok, err
	}
	return env.InCelebrityTeam(ctx, person, directory.CelebrityAdmins)
}
