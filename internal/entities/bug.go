package entities

import "fmt"

// Bug is a bug report snapshot. Private bugs are visible only to explicit
// subscribers (directly or via team subscription) and administrators.
type Bug struct {
	ID          int
	Private     bool
	Owner       *Person   // reporter
	Subscribers []*Person // explicit subscribers, persons or teams
}

// Key implements Securable.
func (b *Bug) Key() string { return fmt.Sprintf("bug/%d", b.ID) }

// Capabilities implements Securable.
func (b *Bug) Capabilities() []Tag { return []Tag{TagBug, TagHasOwner, TagAny} }

// ObjectOwner implements Owned.
func (b *Bug) ObjectOwner() *Person { return b.Owner }

// BugAttachment is an attachment on a bug. All of its permissions are
// borrowed from the bug it belongs to.
type BugAttachment struct {
	ID  int
	Bug *Bug
}

// Key implements Securable.
func (a *BugAttachment) Key() string { return fmt.Sprintf("bugattachment/%d", a.ID) }

// Capabilities implements Securable.
func (a *BugAttachment) Capabilities() []Tag { return []Tag{TagBugAttachment, TagAny} }
