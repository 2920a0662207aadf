package entities

import "fmt"

// Branch is a code branch snapshot. Private branches are visible only to
// the owner, explicit subscribers and administrative teams.
type Branch struct {
	UniqueName  string // e.g. "~alice/widget/trunk"
	Owner       *Person
	Private     bool
	Subscribers []*Person
}

// Key implements Securable.
func (b *Branch) Key() string { return "branch/" + b.UniqueName }

// Capabilities implements Securable.
func (b *Branch) Capabilities() []Tag { return []Tag{TagBranch, TagHasOwner, TagAny} }

// ObjectOwner implements Owned.
func (b *Branch) ObjectOwner() *Person { return b.Owner }

// BranchMergeProposal proposes merging Source into Target. A caller may
// see the proposal only when they may see both branches, so its
// visibility rule is the conjunction of the two branch visibility rules.
type BranchMergeProposal struct {
	ID         int
	Registrant *Person
	Source     *Branch
	Target     *Branch
}

// Key implements Securable.
func (m *BranchMergeProposal) Key() string { return fmt.Sprintf("mergeproposal/%d", m.ID) }

// Capabilities implements Securable.
func (m *BranchMergeProposal) Capabilities() []Tag { return []Tag{TagMergeProposal, TagAny} }
