package authorization

import (
	"context"

	"github.com/gatehouse-project/gatehouse/internal/directory"
	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// viewBranch governs "View" on branches. Public branches are visible to
// everyone. Private branches are visible to the owning team, explicit
// subscribers, bazaar experts and admins.
type viewBranch struct {
	base
	env    *Env
	branch *entities.Branch
}

func newViewBranch(env *Env, obj entities.Securable) Rule {
	return &viewBranch{env: env, branch: obj.(*entities.Branch)}
}

func (r *viewBranch) CheckUnauthenticated(ctx context.Context) (bool, error) {
	return !r.branch.Private, nil
}

func (r *viewBranch) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if !r.branch.Private {
		return true, nil
	}
	if ok, err := r.env.InTeam(ctx, person, r.branch.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := isSubscribed(ctx, r.env, person, r.branch.Subscribers); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityBazaarExperts)
}

// editBranch governs "Edit" on branches: the owning team, bazaar experts,
// the vcs-imports team (import branches are maintained by it) and admins.
type editBranch struct {
	base
	env    *Env
	branch *entities.Branch
}

func newEditBranch(env *Env, obj entities.Securable) Rule {
	return &editBranch{env: env, branch: obj.(*entities.Branch)}
}

func (r *editBranch) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.branch.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := r.env.InCelebrityTeam(ctx, person, directory.CelebrityVCSImports); err != nil || ok {
		return ok, err
	}
	return celebrityOrAdmin(ctx, r.env, person, directory.CelebrityBazaarExperts)
}

// viewMergeProposal borrows the visibility rules of both branches: a
// caller sees a proposal only when both the source and the target branch
// visibility checks pass.
type viewMergeProposal struct {
	source Rule
	target Rule
}

func newViewMergeProposal(env *Env, obj entities.Securable) Rule {
	proposal := obj.(*entities.BranchMergeProposal)
	return &viewMergeProposal{
		source: newViewBranch(env, proposal.Source),
		target: newViewBranch(env, proposal.Target),
	}
}

func (r *viewMergeProposal) CheckUnauthenticated(ctx context.Context) (bool, error) {
	if ok, err := r.source.CheckUnauthenticated(ctx); err != nil || !ok {
		return false, err
	}
	return r.target.CheckUnauthenticated(ctx)
}

func (r *viewMergeProposal) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.source.CheckAuthenticatedPerson(ctx, person); err != nil || !ok {
		return false, err
	}
	return r.target.CheckAuthenticatedPerson(ctx, person)
}

// editMergeProposal governs "Edit" on merge proposals: the registrant,
// either branch's owning team, or admins.
type editMergeProposal struct {
	base
	env      *Env
	proposal *entities.BranchMergeProposal
}

func newEditMergeProposal(env *Env, obj entities.Securable) Rule {
	return &editMergeProposal{env: env, proposal: obj.(*entities.BranchMergeProposal)}
}

func (r *editMergeProposal) CheckAuthenticatedPerson(ctx context.Context, person *entities.Person) (bool, error) {
	if ok, err := r.env.InTeam(ctx, person, r.proposal.Registrant); err != nil || ok {
		return ok, err
	}
	if ok, err := r.env.InTeam(ctx, person, r.proposal.Source.Owner); err != nil || ok {
		return ok, err
	}
	if ok, err := r.env.InTeam(ctx, person, r.proposal.Target.Owner); err != nil || ok {
		return ok, err
	}
	return r.env.IsAdmin(ctx, person)
}
