package authorization

import (
	"testing"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/directory/memory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// newTestDirectory builds the shared cast: ordinary persons, an owning
// team and one member team per celebrity.
func newTestDirectory() *memory.Directory {
	d := memory.New()

	for _, name := range []string{"alice", "bob", "carol", "amy", "bud", "carl", "rex", "rosa", "baz", "mel", "vic"} {
		d.AddPerson(&entities.Person{Name: name})
	}

	teams := map[string][]string{
		"team1":                {"alice"},
		"admins-team":          {"amy"},
		"buildd-team":          {"bud"},
		"commercial-team":      {"carl"},
		"registry-team":        {"rex"},
		"rosetta-team":         {"rosa"},
		"bazaar-team":          {"baz"},
		"mailing-experts-team": {"mel"},
		"vcs-imports-team":     {"vic"},
	}
	for team, members := range teams {
		d.AddPerson(&entities.Person{Name: team, IsTeam: true})
		for _, member := range members {
			d.AddMember(team, member)
		}
	}

	d.SetCelebrity(directory.CelebrityAdmins, "admins-team")
	d.SetCelebrity(directory.CelebrityBuilddAdmins, "buildd-team")
	d.SetCelebrity(directory.CelebrityCommercialAdmins, "commercial-team")
	d.SetCelebrity(directory.CelebrityRegistryExperts, "registry-team")
	d.SetCelebrity(directory.CelebrityRosettaExperts, "rosetta-team")
	d.SetCelebrity(directory.CelebrityBazaarExperts, "bazaar-team")
	d.SetCelebrity(directory.CelebrityMailingListExperts, "mailing-experts-team")
	d.SetCelebrity(directory.CelebrityVCSImports, "vcs-imports-team")

	d.LinkAccount("alice@example.com", "alice")

	return d
}

// newTestChecker builds a checker over the default registry and the
// given directory.
func newTestChecker(t *testing.T, d *memory.Directory) *Checker {
	t.Helper()
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	checker, err := NewChecker(registry, d)
	if err != nil {
		t.Fatalf("NewChecker() error = %v", err)
	}
	return checker
}

// person is a lookup helper that fails the test on unknown names.
func person(t *testing.T, d *memory.Directory, name string) *entities.Person {
	t.Helper()
	p := d.Person(name)
	if p == nil {
		t.Fatalf("fixture has no person %q", name)
	}
	return p
}

// asPerson wraps a fixture person into an identity.
func asPerson(t *testing.T, d *memory.Directory, name string) entities.Identity {
	return entities.AuthenticatedPerson{Person: person(t, d, name)}
}
