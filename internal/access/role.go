// Package access holds the staff role lattice used to gate the admin API:
// superadmin ⊇ admin ⊇ moderator. Every other role ranks below moderator.
package access

import "strings"

type Role string

const (
	Customer   Role = "customer"
	Wholesale  Role = "wholesale"
	Moderator  Role = "moderator"
	Admin      Role = "admin"
	Superadmin Role = "superadmin"
)

// All lists every role a user record may carry.
var All = []Role{Customer, Wholesale, Moderator, Admin, Superadmin}

// Parse normalizes s and reports whether it names a known role.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// ParseRequired parses a guard requirement. Only staff roles can be required.
func ParseRequired(s string) (Role, bool) {
	r, ok := Parse(s)
	if !ok || !IsAdmin(r) {
		return "", false
	}
	return r, true
}

// Rank orders the staff roles; non-staff roles rank 0.
func Rank(r Role) int {
	switch r {
	case Superadmin:
		return 3
	case Admin:
		return 2
	case Moderator:
		return 1
	default:
		return 0
	}
}

// IsAdmin reports whether r is any staff role.
func IsAdmin(r Role) bool { return Rank(r) > 0 }

// HasRequiredRole is true when nothing is required, on an exact match, or when
// the hierarchy implies the requirement (admin covers moderator, superadmin
// covers admin and therefore moderator).
func HasRequiredRole(r, required Role) bool {
	if required == "" || r == required {
		return true
	}
	need := Rank(required)
	return need > 0 && Rank(r) >= need
}

// Permits combines both checks the admin guard makes.
func Permits(r, required Role) bool {
	return IsAdmin(r) && HasRequiredRole(r, required)
}

// CanAssign reports whether actor may set role target on a user whose current
// role is current. Staff roles above moderator can only be granted by a
// superadmin; nobody may modify a user who outranks them.
func CanAssign(actor, current, target Role) bool {
	if !IsAdmin(actor) {
		return false
	}
	if Rank(current) > Rank(actor) {
		return false
	}
	if Rank(target) >= Rank(Admin) && actor != Superadmin {
		return false
	}
	return Rank(target) <= Rank(actor)
}

// CanManage reports whether actor may delete or edit a user holding role r.
func CanManage(actor, r Role) bool {
	return IsAdmin(actor) && Rank(r) <= Rank(actor)
}
