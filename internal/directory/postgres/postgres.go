// Package postgres backs the directory interfaces with the relational
// schema from the migrations: persons, accounts, team_members and
// celebrities.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// Directory implements directory.Directory over PostgreSQL.
type Directory struct {
	db *sql.DB
}

// New creates a Postgres-backed directory.
func New(db *sql.DB) *Directory {
	return &Directory{db: db}
}

var _ directory.Directory = (*Directory)(nil)

// ResolvePerson implements directory.PersonLookup. A missing account or
// an account without a person profile resolves to nil without error.
func (d *Directory) ResolvePerson(ctx context.Context, account *entities.Account) (*entities.Person, error) {
	if account == nil {
		return nil, nil
	}

	query := `
		SELECT p.name, p.display_name, p.is_team
		FROM accounts a
		JOIN persons p ON p.name = a.person_name
		WHERE a.email = $1
	`
	var person entities.Person
	err := d.db.QueryRowContext(ctx, query, account.Email).Scan(&person.Name, &person.DisplayName, &person.IsTeam)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve person for account %s: %w", account.Email, err)
	}
	return &person, nil
}

// InTeam implements directory.TeamMembership. Nesting is walked with a
// recursive CTE over the membership edges; a nil team is never an error.
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

	query := `
		WITH RECURSIVE members AS (
			SELECT member_name
			FROM team_members
			WHERE team_name = $1
			UNION
			SELECT tm.member_name
			FROM team_members tm
			JOIN members m ON tm.team_name = m.member_name
		)
		SELECT EXISTS (SELECT 1 FROM members WHERE member_name = $2)
	`
	var member bool
	if err := d.db.QueryRowContext(ctx, query, teamOrPerson.Name, person.Name).Scan(&member); err != nil {
		return false, fmt.Errorf("failed to check membership of %s in %s: %w", person.Name, teamOrPerson.Name, err)
	}
	return member, nil
}

// Celebrity implements directory.CelebrityRegistry.
func (d *Directory) Celebrity(ctx context.Context, name string) (*entities.Person, error) {
	query := `
		SELECT p.name, p.display_name, p.is_team
		FROM celebrities c
		JOIN persons p ON p.name = c.team_name
		WHERE c.celebrity_name = $1
	`
	var person entities.Person
	err := d.db.QueryRowContext(ctx, query, name).Scan(&person.Name, &person.DisplayName, &person.IsTeam)
	if err == sql.ErrNoRows {
		return nil, &directory.UnknownCelebrityError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up celebrity %s: %w", name, err)
	}
	return &person, nil
}

// AddPerson inserts or updates a person or team.
func (d *Directory) AddPerson(ctx context.Context, person *entities.Person) error {
	query := `
		INSERT INTO persons (name, display_name, is_team)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET display_name = $2, is_team = $3
	`
	if _, err := d.db.ExecContext(ctx, query, person.Name, person.DisplayName, person.IsTeam); err != nil {
		return fmt.Errorf("failed to add person %s: %w", person.Name, err)
	}
	return nil
}

// LinkAccount binds a login email to a person profile.
func (d *Directory) LinkAccount(ctx context.Context, email, personName string) error {
	query := `
		INSERT INTO accounts (email, person_name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET person_name = $2
	`
	if _, err := d.db.ExecContext(ctx, query, email, personName); err != nil {
		return fmt.Errorf("failed to link account %s: %w", email, err)
	}
	return nil
}

// AddMember adds a direct membership edge.
func (d *Directory) AddMember(ctx context.Context, teamName, memberName string) error {
	query := `
		INSERT INTO team_members (team_name, member_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := d.db.ExecContext(ctx, query, teamName, memberName); err != nil {
		return fmt.Errorf("failed to add %s to team %s: %w", memberName, teamName, err)
	}
	return nil
}

// RemoveMember removes a direct membership edge.
func (d *Directory) RemoveMember(ctx context.Context, teamName, memberName string) error {
	query := `DELETE FROM team_members WHERE team_name = $1 AND member_name = $2`
	if _, err := d.db.ExecContext(ctx, query, teamName, memberName); err != nil {
		return fmt.Errorf("failed to remove %s from team %s: %w", memberName, teamName, err)
	}
	return nil
}

// SetCelebrity registers the person or team behind a celebrity name.
func (d *Directory) SetCelebrity(ctx context.Context, celebrityName, teamName string) error {
	query := `
		INSERT INTO celebrities (celebrity_name, team_name)
		VALUES ($1, $2)
		ON CONFLICT (celebrity_name) DO UPDATE SET team_name = $2
	`
	if _, err := d.db.ExecContext(ctx, query, celebrityName, teamName); err != nil {
		return fmt.Errorf("failed to set celebrity %s: %w", celebrityName, err)
	}
	return nil
}
