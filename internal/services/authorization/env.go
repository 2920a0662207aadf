package authorization

import (
	"context"
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// Env carries the injected collaborators rule bodies consult: person
// resolution, team membership and celebrity lookup, plus a back-reference
// to the checker for rules that recursively check a different permission
// on a related object.
type Env struct {
	people      directory.PersonLookup
	teams       directory.TeamMembership
	celebrities directory.CelebrityRegistry
	checker     *Checker
}

// InTeam reports whether person participates in teamOrPerson. A nil team
// yields false, matching the collaborator contract.
func (e *Env) InTeam(ctx context.Context, person, teamOrPerson *entities.Person) (bool, error) {
	return e.teams.InTeam(ctx, person, teamOrPerson)
}

// InAnyTeam reports whether person participates in at least one of the
// given teams. Evaluation stops at the first hit since membership tests
// can be expensive.
func (e *Env) InAnyTeam(ctx context.Context, person *entities.Person, teams []*entities.Person) (bool, error) {
	for _, team := range teams {
		ok, err := e.teams.InTeam(ctx, person, team)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// InCelebrityTeam reports whether person participates in the named
// celebrity team. An unknown celebrity name propagates as an error.
func (e *Env) InCelebrityTeam(ctx context.Context, person *entities.Person, name string) (bool, error) {
	team, err := e.celebrities.Celebrity(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to resolve celebrity %q: %w", name, err)
	}
	return e.teams.InTeam(ctx, person, team)
}

// IsAdmin reports whether person participates in the admin celebrity
// team, the override nearly every administrative rule carries.
func (e *Env) IsAdmin(ctx context.Context, person *entities.Person) (bool, error) {
	return e.InCelebrityTeam(ctx, person, directory.CelebrityAdmins)
}

// Check recursively invokes the engine for a different permission and
// object under the same identity. The checker's depth guard bounds the
// recursion; goal and target graphs are acyclic by domain construction.
func (e *Env) Check(ctx context.Context, permission string, obj entities.Securable, identity entities.Identity) (bool, error) {
	return e.checker.CheckPermission(ctx, permission, obj, identity)
}
