// Package memory provides an in-memory directory backed by plain maps.
// It serves unit tests, scenario fixtures and the CLI; the graph walk for
// nested team membership is the reference behavior the postgres backend's
// recursive query must match.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// Directory is an in-memory implementation of directory.Directory.
// Population happens up front; lookups are safe for concurrent use.
type Directory struct {
	mu          sync.RWMutex
	persons     map[string]*entities.Person   // by short name
	accounts    map[string]string             // account email -> person name
	members     map[string]map[string]bool    // team name -> direct member names
	celebrities map[string]string             // celebrity name -> person name
}

// New creates an empty in-memory directory.
func New() *Directory {
	return &Directory{
		persons:     make(map[string]*entities.Person),
		accounts:    make(map[string]string),
		members:     make(map[string]map[string]bool),
		celebrities: make(map[string]string),
	}
}

// AddPerson registers a person or team.
func (d *Directory) AddPerson(p *entities.Person) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.persons[p.Name] = p
}

// Person returns the registered person with the given short name, or nil.
func (d *Directory) Person(name string) *entities.Person {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.persons[name]
}

// LinkAccount links an account email to a person name.
func (d *Directory) LinkAccount(email, personName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts[email] = personName
}

// AddMember records a direct membership of member in team.
func (d *Directory) AddMember(teamName, memberName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.members[teamName] == nil {
		d.members[teamName] = make(map[string]bool)
	}
	d.members[teamName][memberName] = true
}

// RemoveMember removes a direct membership.
func (d *Directory) RemoveMember(teamName, memberName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.members[teamName], memberName)
}

// SetCelebrity registers the person name behind a celebrity name.
func (d *Directory) SetCelebrity(celebrity, personName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.celebrities[celebrity] = personName
}

// ResolvePerson implements directory.PersonLookup.
func (d *Directory) ResolvePerson(ctx context.Context, account *entities.Account) (*entities.Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.accounts[account.Email]
	if !ok {
		return nil, nil
	}
	person, ok := d.persons[name]
	if !ok {
		return nil, fmt.Errorf("account %s links to unknown person %q", account.Email, name)
	}
	return person, nil
}

// InTeam implements directory.TeamMembership. A nil team yields false; a
// person is always in "team" themselves; otherwise direct and nested
// memberships are walked.
func (d *Directory) InTeam(ctx context.Context, person, teamOrPerson *entities.Person) (bool, error) {
	if person == nil || teamOrPerson == nil {
		return false, nil
	}
	if person.Name == teamOrPerson.Name {
		return true, nil
	}
	if !teamOrPerson.IsTeam {
		return false, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	// Breadth-first walk down the membership graph from the team. Teams
	// may be nested and may even form cycles in a broken fixture; the
	// seen set keeps the walk finite.
	seen := map[string]bool{teamOrPerson.Name: true}
	queue := []string{teamOrPerson.Name}
	for len(queue) > 0 {
		team := queue[0]
		queue = queue[1:]
		for member := range d.members[team] {
			if member == person.Name {
				return true, nil
			}
			if seen[member] {
				continue
			}
			seen[member] = true
			if p, ok := d.persons[member]; ok && p.IsTeam {
				queue = append(queue, member)
			}
		}
	}
	return false, nil
}

// Celebrity implements directory.CelebrityRegistry.
func (d *Directory) Celebrity(ctx context.Context, name string) (*entities.Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	personName, ok := d.celebrities[name]
	if !ok {
		return nil, &directory.UnknownCelebrityError{Name: name}
	}
	person, ok := d.persons[personName]
	if !ok {
		return nil, fmt.Errorf("celebrity %q links to unknown person %q", name, personName)
	}
	return person, nil
}
