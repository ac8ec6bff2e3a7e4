package models

// Role is the account privilege tier. Ordering is owner > admin > user;
// checks go through AtLeast so a tier always satisfies its own minimum.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

var roleRank = map[Role]int{
	RoleUser:  0,
	RoleAdmin: 1,
	RoleOwner: 2,
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r meets the minimum required tier. Unknown roles
// never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	minRank, ok := roleRank[min]
	if !ok {
		return false
	}
	return rank >= minRank
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
