package domain

// Identity is the per-request caller identity attached by the
// authentication layer and passed explicitly into every core operation.
type Identity struct {
	ID   string
	Role Role
}

// IdentityOf derives the caller identity from a loaded user.
func IdentityOf(u *User) Identity {
	return Identity{ID: u.ID, Role: u.Role}
}
