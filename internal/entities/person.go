package entities

// Person is a person or team snapshot. Teams are persons with IsTeam set;
// the team-membership collaborator decides who participates in them.
type Person struct {
	Name        string // unique short name (e.g. "alice", "ubuntu-team")
	DisplayName string
	IsTeam      bool
}

// Key implements Securable.
func (p *Person) Key() string { return "person/" + p.Name }

// Capabilities implements Securable.
func (p *Person) Capabilities() []Tag { return []Tag{TagPerson, TagAny} }

// Account is an authentication account. PersonName is the short name of
// the linked person profile, empty when the account has no profile.
type Account struct {
	Email      string
	PersonName string
}

// Key implements Securable.
func (a *Account) Key() string { return "account/" + a.Email }

// Capabilities implements Securable.
func (a *Account) Capabilities() []Tag { return []Tag{TagAccount, TagAny} }
