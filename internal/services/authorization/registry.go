package authorization

import (
	"fmt"
	"sort"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// registryKey identifies one registration.
type registryKey struct {
	permission string
	tag        entities.Tag
}

// Registry maps (permission, capability) pairs to rule constructors. It
// is populated once at process start, frozen, and thereafter read-only,
// which makes Resolve safe for unsynchronized concurrent use.
type Registry struct {
	rules  map[registryKey]Constructor
	frozen bool
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[registryKey]Constructor)}
}

// Register adds a rule constructor for the given permission and
// capability. Registering a duplicate pair or registering after Freeze is
// a programmer error and fails immediately.
func (r *Registry) Register(permission string, tag entities.Tag, ctor Constructor) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen: cannot register %q on %q", permission, tag)
	}
	if permission == "" {
		return fmt.Errorf("permission name must not be empty")
	}
	if ctor == nil {
		return fmt.Errorf("nil constructor for permission %q on %q", permission, tag)
	}
	key := registryKey{permission: permission, tag: tag}
	if _, exists := r.rules[key]; exists {
		return &DuplicateRegistrationError{Permission: permission, Tag: tag}
	}
	r.rules[key] = ctor
	return nil
}

// MustRegister is Register for static registration tables, panicking on
// the programmer errors Register reports.
func (r *Registry) MustRegister(permission string, tag entities.Tag, ctor Constructor) {
	if err := r.Register(permission, tag, ctor); err != nil {
		panic(err)
	}
}

// Freeze makes the registry immutable. It must be called before the
// first Resolve from concurrent callers.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Resolve returns the constructor of the most specific rule registered
// for the permission and the object's capabilities. The object's declared
// linearization is scanned most-specific-first and the first registered
// hit wins, so a rule on a narrow capability always beats one on a
// broader capability.
//
// A permission with no hit falls back to the universal logged-in-user
// view rule when the permission is "View"; any other permission yields
// *NoRuleRegisteredError.
func (r *Registry) Resolve(permission string, obj entities.Securable) (Constructor, error) {
	tags := obj.Capabilities()
	for _, tag := range tags {
		if ctor, ok := r.rules[registryKey{permission: permission, tag: tag}]; ok {
			return ctor, nil
		}
	}
	if permission == PermissionView {
		return newViewByLoggedInUser, nil
	}
	return nil, &NoRuleRegisteredError{
		Permission: permission,
		ObjectKey:  obj.Key(),
		Tags:       tags,
	}
}

// Registration describes one entry of a frozen registry, for tooling.
type Registration struct {
	Permission string
	Tag        entities.Tag
}

// Registrations returns all entries sorted by permission, then capability.
func (r *Registry) Registrations() []Registration {
	out := make([]Registration, 0, len(r.rules))
	for key := range r.rules {
		out = append(out, Registration{Permission: key.permission, Tag: key.tag})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Permission != out[j].Permission {
			return out[i].Permission < out[j].Permission
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
