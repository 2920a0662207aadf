package entities

// Specification is a feature specification (blueprint) snapshot.
//
// Target is the pillar the specification is filed against and is required
// by construction; rule bodies treat a nil Target as an invariant
// violation, not a denial. Goal is the series the specification has been
// proposed for and may be nil. Goal/target graphs are acyclic by domain
// construction; the engine's recursion guard is a safety net only.
type Specification struct {
	Name        string
	Private     bool
	Owner       *Person   // registrant
	Target      Owned     // *Product or *Distribution, never nil
	Goal        Securable // *ProductSeries or *DistroSeries, may be nil
	Subscribers []*Person
}

// Key implements Securable.
func (s *Specification) Key() string { return "specification/" + s.Name }

// Capabilities implements Securable.
func (s *Specification) Capabilities() []Tag {
	return []Tag{TagSpecification, TagHasOwner, TagAny}
}

// ObjectOwner implements Owned.
func (s *Specification) ObjectOwner() *Person { return s.Owner }

// MailingList is a team mailing list snapshot.
type MailingList struct {
	Team      *Person // the team the list belongs to
	TeamOwner *Person // owner of that team
}

// Key implements Securable.
func (l *MailingList) Key() string { return "mailinglist/" + l.Team.Name }

// Capabilities implements Securable.
func (l *MailingList) Capabilities() []Tag { return []Tag{TagMailingList, TagAny} }
