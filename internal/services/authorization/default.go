package authorization

import (
	"fmt"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// DefaultRegistry builds, populates and freezes the registry for the
// built-in rule library. It is the single place a rule is bound to a
// (permission, capability) pair; everything else in the engine is
// registration-driven.
func DefaultRegistry() (*Registry, error) {
	celEngine, err := NewCELEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL engine: %w", err)
	}
	archiveEnabled, err := celEngine.Compile(`resource.enabled == true`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile archive gate: %w", err)
	}
	productActive, err := celEngine.Compile(`resource.active == true`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile product gate: %w", err)
	}

	r := NewRegistry()

	// View. Objects with no entry here fall back to the universal
	// logged-in-user rule.
	r.MustRegister(PermissionView, entities.TagBug, newViewBug)
	r.MustRegister(PermissionView, entities.TagBugAttachment, newViewBugAttachment)
	r.MustRegister(PermissionView, entities.TagArchive, newViewArchive)
	r.MustRegister(PermissionView, entities.TagArchivePublication, newViewArchivePublication)
	r.MustRegister(PermissionView, entities.TagBranch, newViewBranch)
	r.MustRegister(PermissionView, entities.TagMergeProposal, newViewMergeProposal)
	r.MustRegister(PermissionView, entities.TagSpecification, newViewSpecification)

	// Edit. The generic owned-object rule is the broad fallback; the
	// narrower registrations shadow it per capability order.
	r.MustRegister(PermissionEdit, entities.TagHasOwner, newEditByOwnersOrAdmins)
	r.MustRegister(PermissionEdit, entities.TagPillar, newEditPillar)
	r.MustRegister(PermissionEdit, entities.TagPerson, newEditPerson)
	r.MustRegister(PermissionEdit, entities.TagAccount, newEditAccount)
	r.MustRegister(PermissionEdit, entities.TagBug, newEditBug)
	r.MustRegister(PermissionEdit, entities.TagBugAttachment, newEditBugAttachment)
	r.MustRegister(PermissionEdit, entities.TagArchive, newEditArchive)
	r.MustRegister(PermissionEdit, entities.TagBranch, newEditBranch)
	r.MustRegister(PermissionEdit, entities.TagMergeProposal, newEditMergeProposal)
	r.MustRegister(PermissionEdit, entities.TagSpecification, newEditSpecification)

	// Admin.
	r.MustRegister(PermissionAdmin, entities.TagAny, newAdminByAdminsTeam)
	r.MustRegister(PermissionAdmin, entities.TagArchive, newAdminArchiveByBuilddAdmins)

	// Append.
	r.MustRegister(PermissionAppend, entities.TagArchive, newAppendArchive(archiveEnabled))

	// Driver.
	r.MustRegister(PermissionDriver, entities.TagHasDrivers, newDriverByDriversOrOwnersOrAdmins)
	r.MustRegister(PermissionDriver, entities.TagPillar, newDriverByDriversOrOwnersOrAdmins)
	r.MustRegister(PermissionDriver, entities.TagSpecification, newDriverSpecification)

	// Translations and reviews.
	r.MustRegister(PermissionTranslationsAdmin, entities.TagPillar, newTranslationsAdmin)
	r.MustRegister(PermissionLanguagePacksAdmin, entities.TagPillar, newLanguagePacksAdmin)
	r.MustRegister(PermissionProjectReview, entities.TagProduct, newProjectReview(productActive))
	r.MustRegister(PermissionCommercial, entities.TagPillar, newCommercial)

	// Mailing lists.
	r.MustRegister(PermissionModerate, entities.TagMailingList, newModerateMailingList)
	r.MustRegister(PermissionMailingListManager, entities.TagAny, newMailingListManager)

	r.Freeze()
	return r, nil
}
