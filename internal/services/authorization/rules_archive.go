package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// viewArchive governs "View" on archives. Public archives are visible to
// everyone, including anonymous callers. Private archives are visible to
// members of the owning team, explicit uploaders, commercial admins and
// admins.
type viewArchive struct {
	base
	env     *Env
	archive *entities.Archive
}

func newViewArchive(env *Env, obj entities.Securable) Rule {
	return &viewArchive{env: env, archive: obj.(*entities.Archive)}
}

func (r *viewArchive) CheckUnauthenticated(ctx context.Context) (bool, error) {
	return !r.archive.Private, nil
}

func (r *viewArchive) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if !r.archive.Private {
		return true, nil
	}
	if ok, err := r.env.InTeam(ctx, person, r.archive.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := r.env.InAnyTeam(ctx, person, r.archive.Uploaders); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityCommercialAdmins)
}

// appendArchive governs "Append" (upload) on archives: members of the
// owning team or explicit uploaders, and only while the archive accepts
// uploads at all (the enabled gate).
type appendArchive struct {
	base
	env     *Env
	archive *entities.Archive
	enabled *Gate
}

// newAppendArchive binds the compiled enabled gate into the constructor.
func newAppendArchive(enabled *Gate) Constructor {
	return func(env *Env, obj entities.Securable) Rule {
		return &appendArchive{env: env, archive: obj.(*entities.Archive), enabled: enabled}
	}
}

func (r *appendArchive) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if open, err := r.enabled.Allows(r.archive); err != nil || !open {
		return false, err
	}
	if ok, err := r.env.InTeam(ctx, person, r.archive.Owner); err != nil || ok {
		return ok, err
	}
	return r.env.InAnyTeam(ctx, person, r.archive.Uploaders)
}

// editArchive governs "Edit" on archives: the owning team, commercial
// admins and admins.
type editArchive struct {
	base
	env     *Env
	archive *entities.Archive
}

func newEditArchive(env *Env, obj entities.Securable) Rule {
	return &editArchive{env: env, archive: obj.(*entities.Archive)}
}

func (r *editArchive) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.archive.Owner); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityCommercialAdmins)
}

// adminArchiveByBuilddAdmins governs "Admin" on archives: buildd admins
// or admins, the build-farm override.
type adminArchiveByBuilddAdmins struct {
	base
	env *Env
}

func newAdminArchiveByBuilddAdmins(env *Env, obj entities.Securable) Rule {
	return &adminArchiveByBuilddAdmins{env: env}
}

func (r *adminArchiveByBuilddAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityBuilddAdmins)
}

// Publishing-history entries borrow the archive's view rule.

func newViewArchivePublication(env *Env, obj entities.Securable) Rule {
	return newViewArchive(env, obj.(*entities.ArchivePublication).Archive)
}
