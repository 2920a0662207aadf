package entities

import "fmt"

// Tag identifies a capability a securable object satisfies.
// Tags are open strings: new object types introduce new tags without
// touching this package's consumers.
type Tag string

const (
	// TagAny is the universal wildcard capability. Every securable object
	// lists it last in its linearization; it is what the registry's
	// "View" fallback is keyed on.
	TagAny Tag = "any"

	// Cross-cutting capabilities.
	TagHasOwner   Tag = "has_owner"   // exposes an owning person or team
	TagHasDrivers Tag = "has_drivers" // exposes a release-management driver list
	TagPillar     Tag = "pillar"      // top-level project container (product, distribution)

	// Exact-type capabilities.
	TagPerson             Tag = "person"
	TagAccount            Tag = "account"
	TagBug                Tag = "bug"
	TagBugAttachment      Tag = "bug_attachment"
	TagArchive            Tag = "archive"
	TagArchivePublication Tag = "archive_publication"
	TagBranch             Tag = "branch"
	TagMergeProposal      Tag = "merge_proposal"
	TagSpecification      Tag = "specification"
	TagProduct            Tag = "product"
	TagDistribution       Tag = "distribution"
	TagProductSeries      Tag = "product_series"
	TagDistroSeries       Tag = "distro_series"
	TagMailingList        Tag = "mailing_list"
)

// Securable is implemented by every object a permission can be checked
// against. Capabilities returns the object's capability linearization,
// ordered most specific first: the exact-type tag leads, broader tags
// follow in refinement order, and TagAny is always last. Rule resolution
// scans this order and takes the first registered hit, so the order IS
// the specificity ordering.
type Securable interface {
	// Key returns a stable identifier for the object, unique across all
	// securable objects (e.g. "bug/42"). Used for caching and tooling.
	Key() string

	// Capabilities returns the capability linearization, most specific
	// first, ending with TagAny.
	Capabilities() []Tag
}

// Attributed is implemented by securable objects that expose a flat
// attribute map for expression-gated rules.
type Attributed interface {
	Securable
	Attributes() map[string]interface{}
}

// Owned is implemented by securable objects with an owning person or team.
type Owned interface {
	Securable
	ObjectOwner() *Person
}

// Driven is implemented by securable objects with release-management
// drivers.
type Driven interface {
	Securable
	ObjectDrivers() []*Person
}

// CapabilityGraph records which capability tag refines which. It exists so
// that the linearizations entity types declare by hand can be checked for
// consistency: a tag must always appear before every tag it refines.
type CapabilityGraph struct {
	parents map[Tag][]Tag
}

// NewCapabilityGraph creates an empty capability graph.
func NewCapabilityGraph() *CapabilityGraph {
	return &CapabilityGraph{parents: make(map[Tag][]Tag)}
}

// Refine declares that child is a refinement of each given parent.
func (g *CapabilityGraph) Refine(child Tag, parents ...Tag) {
	g.parents[child] = append(g.parents[child], parents...)
}

// ancestors returns the transitive parents of a tag.
func (g *CapabilityGraph) ancestors(tag Tag) map[Tag]bool {
	seen := make(map[Tag]bool)
	var walk func(t Tag)
	walk = func(t Tag) {
		for _, p := range g.parents[t] {
			if !seen[p] {
				seen[p] = true
				walk(p)
			}
		}
	}
	walk(tag)
	return seen
}

// ValidateLinearization checks that tags is a valid linearization under
// the graph: non-empty, ending in TagAny, with every tag listed before
// all of its transitive parents.
func (g *CapabilityGraph) ValidateLinearization(tags []Tag) error {
	if len(tags) == 0 {
		return fmt.Errorf("empty capability linearization")
	}
	if tags[len(tags)-1] != TagAny {
		return fmt.Errorf("linearization must end with %q, got %q", TagAny, tags[len(tags)-1])
	}
	position := make(map[Tag]int, len(tags))
	for i, t := range tags {
		if prev, dup := position[t]; dup {
			return fmt.Errorf("tag %q listed twice (positions %d and %d)", t, prev, i)
		}
		position[t] = i
	}
	for i, t := range tags {
		for ancestor := range g.ancestors(t) {
			if pos, ok := position[ancestor]; ok && pos < i {
				return fmt.Errorf("tag %q must precede its parent %q", t, ancestor)
			}
		}
	}
	return nil
}

// DefaultCapabilityGraph returns the refinement graph for the built-in
// entity catalogue.
func DefaultCapabilityGraph() *CapabilityGraph {
	g := NewCapabilityGraph()
	g.Refine(TagHasOwner, TagAny)
	g.Refine(TagHasDrivers, TagAny)
	g.Refine(TagPillar, TagHasOwner)
	g.Refine(TagPerson, TagAny)
	g.Refine(TagAccount, TagAny)
	g.Refine(TagBug, TagHasOwner)
	g.Refine(TagBugAttachment, TagAny)
	g.Refine(TagArchive, TagHasOwner)
	g.Refine(TagArchivePublication, TagAny)
	g.Refine(TagBranch, TagHasOwner)
	g.Refine(TagMergeProposal, TagAny)
	g.Refine(TagSpecification, TagHasOwner)
	g.Refine(TagProduct, TagPillar)
	g.Refine(TagDistribution, TagPillar)
	g.Refine(TagProductSeries, TagHasDrivers, TagHasOwner)
	g.Refine(TagDistroSeries, TagHasDrivers, TagHasOwner)
	g.Refine(TagMailingList, TagAny)
	return g
}
