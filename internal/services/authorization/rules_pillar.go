package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// editPillar governs "Edit" on pillars (products and distributions): the
// owning team, registry experts, or admins. It is deliberately narrower
// than the generic owned-object edit rule and shadows it in resolution.
type editPillar struct {
	base
	env    *Env
	pillar entities.Owned
}

func newEditPillar(env *Env, obj entities.Securable) Rule {
	return &editPillar{env: env, pillar: obj.(entities.Owned)}
}

func (r *editPillar) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.pillar.ObjectOwner()); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityRegistryExperts)
}

// translationsAdminByRosettaExpertsOrPillarOwners governs
// "TranslationsAdmin" on pillars. The source expressed this as multiple
// inheritance of two rule classes; here it is explicit composition: the
// rosetta-experts predicate OR the pillar edit predicate, called as
// ordinary functions.
type translationsAdminByRosettaExpertsOrPillarOwners struct {
	base
	env        *Env
	pillarEdit Rule
}

func newTranslationsAdmin(env *Env, obj entities.Securable) Rule {
	return &translationsAdminByRosettaExpertsOrPillarOwners{
		env:        env,
		pillarEdit: newEditPillar(env, obj),
	}
}

func (r *translationsAdminByRosettaExpertsOrPillarOwners) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InCelebrityTeam(ctx, person, directory.CelebrityRosettaExperts); err != nil || ok {
		return ok, err
	}
	return r.pillarEdit.CheckAuthenticatedPerson(ctx, person)
}

// languagePacksAdmin governs "LanguagePacksAdmin" on pillars: rosetta
// experts or admins only.
type languagePacksAdmin struct {
	base
	env *Env
}

func newLanguagePacksAdmin(env *Env, obj entities.Securable) Rule {
	return &languagePacksAdmin{env: env}
}

func (r *languagePacksAdmin) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityRosettaExperts)
}

// projectReview governs "ProjectReview" on products: registry experts or
// admins, and only while the product is active (the active gate).
type projectReview struct {
	base
	env     *Env
	product *entities.Product
	active  *Gate
}

func newProjectReview(active *Gate) Constructor {
	return func(env *Env, obj entities.Securable) Rule {
		return &projectReview{env: env, product: obj.(*entities.Product), active: active}
	}
}

func (r *projectReview) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if open, err := r.active.Allows(r.product); err != nil || !open {
		return false, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityRegistryExperts)
}

// commercialByCommercialAdmins governs "Commercial" on pillars:
// commercial admins or admins.
type commercialByCommercialAdmins struct {
	base
	env *Env
}

func newCommercial(env *Env, obj entities.Securable) Rule {
	return &commercialByCommercialAdmins{env: env}
}

func (r *commercialByCommercialAdmins) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityCommercialAdmins)
}

// moderateMailingList governs "Moderate" on team mailing lists: the
// owner of the team behind the list, mailing list experts, or admins.
type moderateMailingList struct {
	base
	env  *Env
	list *entities.MailingList
}

func newModerateMailingList(env *Env, obj entities.Securable) Rule {
	return &moderateMailingList{env: env, list: obj.(*entities.MailingList)}
}

func (r *moderateMailingList) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.list.TeamOwner); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityMailingListExperts)
}

// mailingListManager governs "MailingListManager" on any object:
// mailing list experts or admins.
type mailingListManager struct {
	base
	env *Env
}

func newMailingListManager(env *Env, obj entities.Securable) Rule {
	return &mailingListManager{env: env}
}

func (r *mailingListManager) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityMailingListExperts)
}
