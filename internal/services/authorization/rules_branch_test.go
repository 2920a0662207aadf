package authorization

import (
	"context"
	"testing"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

func TestViewBranch(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	branch := &entities.Branch{
		UniqueName:  "~team1/widget/secret",
		Owner:       person(t, d, "team1"),
		Private:     true,
		Subscribers: []*entities.Person{person(t, d, "carol")},
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"anonymous", entities.Unauthenticated{}, false},
		{"owning team member", asPerson(t, d, "alice"), true},
		{"subscriber", asPerson(t, d, "carol"), true},
		{"unrelated person", asPerson(t, d, "bob"), false},
		{"bazaar expert", asPerson(t, d, "baz"), true},
		{"admin", asPerson(t, d, "amy"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionView, branch, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditBranch(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	branch := &entities.Branch{
		UniqueName: "~team1/widget/trunk",
		Owner:      person(t, d, "team1"),
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"owning team member", asPerson(t, d, "alice"), true},
		{"vcs-imports member", asPerson(t, d, "vic"), true},
		{"bazaar expert", asPerson(t, d, "baz"), true},
		{"unrelated person", asPerson(t, d, "bob"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionEdit, branch, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestViewMergeProposal pins the borrowed-visibility rule: a proposal is
// visible only to callers who may see both branches.
func TestViewMergeProposal(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	public := &entities.Branch{
		UniqueName: "~carol/widget/trunk",
		Owner:      person(t, d, "carol"),
	}
	private := &entities.Branch{
		UniqueName:  "~team1/widget/secret",
		Owner:       person(t, d, "team1"),
		Private:     true,
		Subscribers: []*entities.Person{person(t, d, "carol")},
	}
	proposal := &entities.BranchMergeProposal{
		ID:         1,
		Registrant: person(t, d, "carol"),
		Source:     private,
		Target:     public,
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"anonymous blocked by the private side", entities.Unauthenticated{}, false},
		{"sees only the public side", asPerson(t, d, "bob"), false},
		{"sees both sides via subscription", asPerson(t, d, "carol"), true},
		{"sees both sides via ownership", asPerson(t, d, "alice"), true},
		{"admin", asPerson(t, d, "amy"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionView, proposal, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewMergeProposal_BothPublic(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)

	proposal := &entities.BranchMergeProposal{
		ID:         2,
		Registrant: person(t, d, "carol"),
		Source:     &entities.Branch{UniqueName: "~carol/widget/fix", Owner: person(t, d, "carol")},
		Target:     &entities.Branch{UniqueName: "~carol/widget/trunk", Owner: person(t, d, "carol")},
	}

	got, err := checker.CheckPermission(context.Background(), PermissionView, proposal, entities.Unauthenticated{})
	if err != nil {
		t.Fatalf("CheckPermission() error = %v", err)
	}
	if !got {
		t.Error("anonymous caller denied on a fully public proposal")
	}
}

func TestEditMergeProposal(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	proposal := &entities.BranchMergeProposal{
		ID:         3,
		Registrant: person(t, d, "carol"),
		Source:     &entities.Branch{UniqueName: "~team1/widget/fix", Owner: person(t, d, "team1")},
		Target:     &entities.Branch{UniqueName: "~bob/widget/trunk", Owner: person(t, d, "bob")},
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"registrant", asPerson(t, d, "carol"), true},
		{"source branch team member", asPerson(t, d, "alice"), true},
		{"target branch owner", asPerson(t, d, "bob"), true},
		{"unrelated person", asPerson(t, d, "rosa"), false},
		{"admin", asPerson(t, d, "amy"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionEdit, proposal, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}
