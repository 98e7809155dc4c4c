package auth

// Role is the capability level resolved for a caller.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleNone     Role = "none"
)

// CustomerDirectory answers whether a username belongs to a known customer.
// The ledger implements it.
type CustomerDirectory interface {
	HasCustomer(username string) bool
}

// Authenticator resolves a (username, password) pair to a Role by consulting
// the credential store. It has no side effects.
type Authenticator struct {
	adminUsername string
	store         *CredentialStore
	customers     CustomerDirectory
}

// NewAuthenticator wires an authenticator to its credential store and the
// customer directory.
func NewAuthenticator(adminUsername string, store *CredentialStore, customers CustomerDirectory) *Authenticator {
	return &Authenticator{
		adminUsername: adminUsername,
		store:         store,
		customers:     customers,
	}
}

// Authenticate returns RoleAdmin for the configured administrator identity,
// RoleCustomer for a known customer, RoleNone otherwise. The password check
// runs in every branch so the outcome's cost does not depend on whether the
// username exists.
func (a *Authenticator) Authenticate(username, password string) Role {
	verified := a.store.Verify(username, password)
	if !verified {
		return RoleNone
	}
	if username == a.adminUsername {
		return RoleAdmin
	}
	if a.customers.HasCustomer(username) {
		return RoleCustomer
	}
	return RoleNone
}
