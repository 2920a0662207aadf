package entities

// Identity is the caller identity a permission check runs under. Exactly
// one of the three variants is active per check:
//
//   - Unauthenticated: no credentials at all
//   - AccountOnly: an authenticated account with no resolved person profile
//   - AuthenticatedPerson: a fully resolved person (which may be a team)
//
// The sealed-interface-plus-type-switch shape mirrors how permission rules
// are dispatched: each variant is pure data and the engine pattern-matches
// on it.
type Identity interface {
	isIdentity()

	// CacheKey returns a stable string distinguishing this identity from
	// any other, for use in caller-side decision caches.
	CacheKey() string
}

// Unauthenticated is the identity of a caller with no credentials.
type Unauthenticated struct{}

func (Unauthenticated) isIdentity() {}

// CacheKey implements Identity.
func (Unauthenticated) CacheKey() string { return "anonymous" }

// AccountOnly is the identity of an authenticated account for which no
// person profile has been resolved. The engine attempts resolution via
// the person lookup collaborator; rules that care about the account
// itself implement the account check directly.
type AccountOnly struct {
	Account *Account
}

func (AccountOnly) isIdentity() {}

// CacheKey implements Identity.
func (i AccountOnly) CacheKey() string { return "account/" + i.Account.Email }

// AuthenticatedPerson is the identity of a fully resolved person.
type AuthenticatedPerson struct {
	Person *Person
}

func (AuthenticatedPerson) isIdentity() {}

// CacheKey implements Identity.
func (i AuthenticatedPerson) CacheKey() string { return "person/" + i.Person.Name }
