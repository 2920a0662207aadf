package authorization

import (
	"context"
	"testing"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// TestAppendArchive is the canonical upload scenario: only members of
// the owning team and explicit uploaders may upload, and never to a
// disabled archive.
func TestAppendArchive(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	archive := &entities.Archive{
		Reference: "ppa:team1/staging",
		Owner:     person(t, d, "team1"),
		Enabled:   true,
		Uploaders: []*entities.Person{person(t, d, "carol")},
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"anonymous", entities.Unauthenticated{}, false},
		{"owning team member", asPerson(t, d, "alice"), true},
		{"explicit uploader", asPerson(t, d, "carol"), true},
		{"unrelated person", asPerson(t, d, "bob"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionAppend, archive, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppendArchive_DisabledGate(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)

	archive := &entities.Archive{
		Reference: "ppa:team1/frozen",
		Owner:     person(t, d, "team1"),
		Enabled:   false,
	}

	// Even the owning team may not upload to a disabled archive.
	got, err := checker.CheckPermission(context.Background(), PermissionAppend, archive, asPerson(t, d, "alice"))
	if err != nil {
		t.Fatalf("CheckPermission() error = %v", err)
	}
	if got {
		t.Error("upload allowed to a disabled archive")
	}
}

func TestViewArchive(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	private := &entities.Archive{
		Reference: "ppa:team1/private",
		Owner:     person(t, d, "team1"),
		Private:   true,
		Enabled:   true,
		Uploaders: []*entities.Person{person(t, d, "carol")},
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"anonymous", entities.Unauthenticated{}, false},
		{"owning team member", asPerson(t, d, "alice"), true},
		{"uploader", asPerson(t, d, "carol"), true},
		{"unrelated person", asPerson(t, d, "bob"), false},
		{"commercial admin", asPerson(t, d, "carl"), true},
		{"admin", asPerson(t, d, "amy"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionView, private, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}

	public := &entities.Archive{
		Reference: "ppa:team1/public",
		Owner:     person(t, d, "team1"),
		Enabled:   true,
	}
	got, err := checker.CheckPermission(ctx, PermissionView, public, entities.Unauthenticated{})
	if err != nil {
		t.Fatalf("CheckPermission() error = %v", err)
	}
	if !got {
		t.Error("anonymous caller denied on a public archive")
	}
}

// TestViewArchivePublication pins the publishing-history delegation:
// entries are exactly as visible as their archive.
func TestViewArchivePublication(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	archive := &entities.Archive{
		Reference: "ppa:team1/private",
		Owner:     person(t, d, "team1"),
		Private:   true,
		Enabled:   true,
	}
	publication := &entities.ArchivePublication{ID: 1, Archive: archive}

	for _, who := range []string{"alice", "bob", "amy"} {
		identity := asPerson(t, d, who)
		onArchive, err := checker.CheckPermission(ctx, PermissionView, archive, identity)
		if err != nil {
			t.Fatalf("CheckPermission(archive) error = %v", err)
		}
		onPublication, err := checker.CheckPermission(ctx, PermissionView, publication, identity)
		if err != nil {
			t.Fatalf("CheckPermission(publication) error = %v", err)
		}
		if onArchive != onPublication {
			t.Errorf("%s: publication = %v, archive = %v, want equal", who, onPublication, onArchive)
		}
	}
}

func TestAdminArchive_BuilddAdmins(t *testing.T) {
	d := newTestDirectory()
	checker := newTestChecker(t, d)
	ctx := context.Background()

	archive := &entities.Archive{
		Reference: "ubuntu/primary",
		Owner:     person(t, d, "team1"),
		Enabled:   true,
	}

	tests := []struct {
		name     string
		identity entities.Identity
		want     bool
	}{
		{"buildd admin", asPerson(t, d, "bud"), true},
		{"admin", asPerson(t, d, "amy"), true},
		{"owning team member", asPerson(t, d, "alice"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckPermission(ctx, PermissionAdmin, archive, tt.identity)
			if err != nil {
				t.Fatalf("CheckPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}
