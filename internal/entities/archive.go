package entities

import "fmt"

// Archive is a package archive (primary archive or PPA) snapshot.
type Archive struct {
	Reference string // e.g. "ppa:mirror-team/staging"
	Owner     *Person
	Private   bool
	Enabled   bool
	Uploaders []*Person // explicit upload grants beyond the owning team
}

// Key implements Securable.
func (a *Archive) Key() string { return "archive/" + a.Reference }

// Capabilities implements Securable.
func (a *Archive) Capabilities() []Tag { return []Tag{TagArchive, TagHasOwner, TagAny} }

// ObjectOwner implements Owned.
func (a *Archive) ObjectOwner() *Person { return a.Owner }

// Attributes implements Attributed.
func (a *Archive) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"reference": a.Reference,
		"private":   a.Private,
		"enabled":   a.Enabled,
	}
}

// ArchivePublication is one entry in an archive's publishing history. Its
// visibility is borrowed from the archive it was published to.
type ArchivePublication struct {
	ID      int
	Archive *Archive
}

// Key implements Securable.
func (p *ArchivePublication) Key() string { return fmt.Sprintf("archivepublication/%d", p.ID) }

// Capabilities implements Securable.
func (p *ArchivePublication) Capabilities() []Tag { return []Tag{TagArchivePublication, TagAny} }
