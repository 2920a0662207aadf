package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// editPersonBySelfOrAdmins governs "Edit" on persons and teams: the
// person themselves, members of the team (when the target is a team), or
// admins.
type editPersonBySelfOrAdmins struct {
	base
	env    *Env
	person *entities.Person
}

func newEditPerson(env *Env, obj entities.Securable) Rule {
	return &editPersonBySelfOrAdmins{env: env, person: obj.(*entities.Person)}
}

func (r *editPersonBySelfOrAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	// InTeam covers both cases: same person, or membership when the
	// target is a team.
	if ok, err := r.env.InTeam(ctx, person, r.person); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}

// editAccountBySameAccountOrAdmins governs "Edit" on accounts. It is one
// of the account-centric rules: an authenticated account may edit itself
// even when it has no person profile, so the account check is implemented
// directly instead of relying on the engine's account-to-person
// delegation.
type editAccountBySameAccountOrAdmins struct {
	base
	env     *Env
	account *entities.Account
}

func newEditAccount(env *Env, obj entities.Securable) Rule {
	return &editAccountBySameAccountOrAdmins{env: env, account: obj.(*entities.Account)}
}

// CheckAccountAuthenticated implements AccountRule.
func (r *editAccountBySameAccountOrAdmins) CheckAccountAuthenticated(ctx context.Context, account *entities.Account) (bool, error) {
	return account.Email == r.account.Email, nil
}

func (r *editAccountBySameAccountOrAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if r.account.PersonName != "" && person.Name == r.account.PersonName {
		return true, nil
	}
	return r.env.IsAdmin(ctx, person)
}
