// Package directory defines the collaborator interfaces the authorization
// engine consumes: person resolution, team membership and celebrity
// lookup. The engine is agnostic to how they are backed; the memory
// subpackage serves tests and tooling, the postgres subpackage serves
// deployments.
package directory

import (
	"context"
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// Celebrity names: process-wide singleton administrative persons and
// teams. Every concrete rule that grants an administrative override
// refers to one of these.
const (
	CelebrityAdmins             = "admin"
	CelebrityBazaarExperts      = "bazaar-experts"
	CelebrityBuilddAdmins       = "buildd-admins"
	CelebrityCommercialAdmins   = "commercial-admins"
	CelebrityJanitor            = "janitor"
	CelebrityMailingListExperts = "mailing-list-experts"
	CelebrityRegistryExperts    = "registry-experts"
	CelebrityRosettaExperts     = "rosetta-experts"
	CelebrityUbuntuBranches     = "ubuntu-branches"
	CelebrityUbuntuSecurity     = "ubuntu-security"
	CelebrityUbuntuTechBoard    = "techboard"
	CelebrityVCSImports         = "vcs-imports"
)

// PersonLookup resolves an authenticated account to its person profile.
type PersonLookup interface {
	// ResolvePerson returns the person linked to the account, or nil when
	// the account has no person profile. An error means the lookup itself
	// failed, not that no person exists.
	ResolvePerson(ctx context.Context, account *entities.Account) (*entities.Person, error)
}

// TeamMembership is the "inTeam" predicate. Implementations must handle
// team-in-team nesting and must return false, never an error, when the
// team argument is nil (rules routinely pass optional owners or drivers
// straight through).
type TeamMembership interface {
	// InTeam reports whether person participates in teamOrPerson, either
	// by being the same person or through (possibly nested) team
	// membership.
	InTeam(ctx context.Context, person, teamOrPerson *entities.Person) (bool, error)
}

// CelebrityRegistry resolves celebrity names to persons or teams.
type CelebrityRegistry interface {
	// Celebrity returns the person or team registered under the given
	// celebrity name. An unknown name is a configuration error.
	Celebrity(ctx context.Context, name string) (*entities.Person, error)
}

// UnknownCelebrityError is returned when a celebrity name has no
// registered person or team behind it.
type UnknownCelebrityError struct {
	Name string
}

func (e *UnknownCelebrityError) Error() string {
	return fmt.Sprintf("no person or team registered for celebrity %q", e.Name)
}

// Directory bundles the three collaborators a checker needs.
type Directory interface {
	PersonLookup
	TeamMembership
	CelebrityRegistry
}
