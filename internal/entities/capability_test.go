package entities

import (
	"strings"
	"testing"
)

func TestValidateLinearization_Catalogue(t *testing.T) {
	g := DefaultCapabilityGraph()

	product := &Product{Name: "widget", Owner: &Person{Name: "alice"}}
	distribution := &Distribution{Name: "osdist", Owner: &Person{Name: "alice"}}
	objects := []Securable{
		&Person{Name: "alice"},
		&Account{Email: "alice@example.com"},
		&Bug{ID: 1},
		&BugAttachment{ID: 1, Bug: &Bug{ID: 1}},
		&Archive{Reference: "ppa:alice/stuff"},
		&ArchivePublication{ID: 1},
		&Branch{UniqueName: "~alice/widget/trunk"},
		&BranchMergeProposal{ID: 1},
		&Specification{Name: "feature", Target: product},
		product,
		distribution,
		&ProductSeries{Name: "trunk", Product: product},
		&DistroSeries{Name: "stable", Distribution: distribution},
		&MailingList{Team: &Person{Name: "team", IsTeam: true}},
	}

	for _, obj := range objects {
		if err := g.ValidateLinearization(obj.Capabilities()); err != nil {
			t.Errorf("%s: invalid linearization %v: %v", obj.Key(), obj.Capabilities(), err)
		}
	}
}

func TestValidateLinearization_Errors(t *testing.T) {
	g := DefaultCapabilityGraph()

	tests := []struct {
		name    string
		tags    []Tag
		wantErr string
	}{
		{
			name:    "empty",
			tags:    nil,
			wantErr: "empty",
		},
		{
			name:    "missing wildcard",
			tags:    []Tag{TagBug, TagHasOwner},
			wantErr: "must end with",
		},
		{
			name:    "parent before child",
			tags:    []Tag{TagHasOwner, TagBug, TagAny},
			wantErr: "must precede",
		},
		{
			name:    "duplicate tag",
			tags:    []Tag{TagBug, TagBug, TagAny},
			wantErr: "twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidateLinearization(tt.tags)
			if err == nil {
				t.Fatalf("ValidateLinearization(%v) = nil, want error", tt.tags)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSecurableKeysUnique(t *testing.T) {
	product := &Product{Name: "widget"}
	objects := []Securable{
		&Person{Name: "widget"},
		product,
		&Bug{ID: 7},
		&BugAttachment{ID: 7},
		&Archive{Reference: "ppa:widget"},
		&ArchivePublication{ID: 7},
	}

	seen := make(map[string]string)
	for _, obj := range objects {
		key := obj.Key()
		if other, dup := seen[key]; dup {
			t.Errorf("key %q shared by %T and %s", key, obj, other)
		}
		seen[key] = key
	}
}

func TestIdentityCacheKeys(t *testing.T) {
	alice := &Person{Name: "alice"}
	account := &Account{Email: "alice@example.com"}

	keys := map[string]Identity{
		"anonymous":                 Unauthenticated{},
		"account/alice@example.com": AccountOnly{Account: account},
		"person/alice":              AuthenticatedPerson{Person: alice},
	}
	for want, id := range keys {
		if got := id.CacheKey(); got != want {
			t.Errorf("CacheKey() = %q, want %q", got, want)
		}
	}
}
