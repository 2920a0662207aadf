package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// publicToAllOrPrivateToSubscribersForBug governs "View" on bugs.
// Anonymous callers see only public bugs. Authenticated callers see
// public bugs, private bugs they reported or subscribe to (directly or
// via a subscribed team), and admins see everything.
type publicToAllOrPrivateToSubscribersForBug struct {
	base
	env *Env
	bug *entities.Bug
}

func newViewBug(env *Env, obj entities.Securable) Rule {
	return &publicToAllOrPrivateToSubscribersForBug{env: env, bug: obj.(*entities.Bug)}
}

func (r *publicToAllOrPrivateToSubscribersForBug) CheckUnauthenticated(ctx context.Context) (bool, error) {
	return !r.bug.Private, nil
}

func (r *publicToAllOrPrivateToSubscribersForBug) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if !r.bug.Private {
		return true, nil
	}
	if ok, err := r.env.InTeam(ctx, person, r.bug.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := isSubscribed(ctx, r.env, person, r.bug.Subscribers); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// editBug governs "Edit" on bugs: the reporter, subscribers and admins.
type editBug struct {
	base
	env *Env
	bug *entities.Bug
}

func newEditBug(env *Env, obj entities.Securable) Rule {
	return &editBug{env: env, bug: obj.(*entities.Bug)}
}

func (r *editBug) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.bug.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := isSubscribed(ctx, r.env, person, r.bug.Subscribers); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// Attachment rules borrow the bug's rules wholesale: the constructor
// binds the bug's own rule to the parent bug, forwarding every check
// unchanged.

func newViewBugAttachment(env *Env, obj entities.Securable) Rule {
	return newViewBug(env, obj.(*entities.BugAttachment).Bug)
}

func newEditBugAttachment(env *Env, obj entities.Securable) Rule {
	return newEditBug(env, obj.(*entities.BugAttachment).Bug)
}
