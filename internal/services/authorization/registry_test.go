package authorization

import (
	"context"
	"errors"
	"testing"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(PermissionEdit, entities.TagBug, newEditBug); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := r.Register(PermissionEdit, entities.TagBug, newEditBug)
	var dup *DuplicateRegistrationError
	if !errors.As(err, &dup) {
		t.Fatalf("second Register() error = %v, want DuplicateRegistrationError", err)
	}
	if dup.Permission != PermissionEdit || dup.Tag != entities.TagBug {
		t.Errorf("DuplicateRegistrationError = %+v", dup)
	}
}

func TestRegistry_RegisterAfterFreeze(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	if err := r.Register(PermissionEdit, entities.TagBug, newEditBug); err == nil {
		t.Error("Register() after Freeze() = nil, want error")
	}
}

func TestRegistry_RejectsEmptyPermissionAndNilConstructor(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", entities.TagBug, newEditBug); err == nil {
		t.Error("Register(empty permission) = nil, want error")
	}
	if err := r.Register(PermissionEdit, entities.TagBug, nil); err == nil {
		t.Error("Register(nil constructor) = nil, want error")
	}
}

// TestRegistry_Specificity pins the most-specific-match behavior: with
// Edit registered both for the broad has_owner capability and narrower
// ones, only objects carrying the narrow capability get the narrow rule.
func TestRegistry_Specificity(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	owner := person(t, d, "team1")
	product := &entities.Product{Name: "widget", Owner: owner, Active: true}
	series := &entities.ProductSeries{Name: "trunk", Product: product}
	bug := &entities.Bug{ID: 1, Owner: person(t, d, "bob")}

	// rex is a registry expert: granted by the pillar edit rule, not by
	// the generic owned-object rule or the bug rule.
	rex := asPerson(t, d, "rex")

	tests := []struct {
		name string
		obj  entities.Securable
		want bool
	}{
		{"product satisfies the narrow pillar capability", product, true},
		{"series falls back to the generic owned rule", series, false},
		{"bug resolves its own edit rule", bug, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionEdit, tt.obj, rex)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ViewFallback(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	// Products have no registered view rule; the universal
	// logged-in-user fallback applies.
	product := &entities.Product{Name: "widget", Owner: person(t, d, "team1"), Active: true}

	allowed, err := checker.CheckPermission(ctx, PermissionView, product, asPerson(t, d, "bob"))
	if err != nil {
		t.Fatalf("CheckPermission() error = %v", err)
	}
	if !allowed {
		t.Error("authenticated person denied by the View fallback")
	}

	allowed, err = checker.CheckPermission(ctx, PermissionView, product, entities.Unauthenticated{})
	if err != nil {
		t.Fatalf("CheckPermission() error = %v", err)
	}
	if allowed {
		t.Error("anonymous caller allowed by the View fallback")
	}
}

func TestRegistry_UnregisteredPermissionFailsLoudly(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)

	bug := &entities.Bug{ID: 1, Owner: person(t, d, "bob")}
	_, err := checker.CheckPermission(context.Background(), "SomeUnregisteredPermission", bug, asPerson(t, d, "alice"))

	var noRule *NoRuleRegisteredError
	if !errors.As(err, &noRule) {
		t.Fatalf("CheckPermission() error = %v, want NoRuleRegisteredError", err)
	}
	if noRule.Permission != "SomeUnregisteredPermission" || noRule.ObjectKey != "bug/1" {
		t.Errorf("NoRuleRegisteredError = %+v", noRule)
	}
}

func TestRegistry_Registrations(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(PermissionEdit, entities.TagBug, newEditBug)
	r.MustRegister(PermissionAdmin, entities.TagAny, newAdminByAdminsTeam)
	r.Freeze()

	got := r.Registrations()
	want := []Registration{
		{Permission: PermissionAdmin, Tag: entities.TagAny},
		{Permission: PermissionEdit, Tag: entities.TagBug},
	}
	if len(got) != len(want) {
		t.Fatalf("Registrations() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Registrations()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
