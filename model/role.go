package model

// Role is a closed set of seven values. SUPER_ADMIN sits above every
// organization; CEO owns exactly one organization; MANAGER is the
// organization-scoped administrative tier; the remaining four are peer
// operational roles sharing one rank.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleCEO        Role = "CEO"
	RoleManager    Role = "MANAGER"
	RoleDeveloper  Role = "DEVELOPER"
	RoleSupport    Role = "SUPPORT"
	RoleHR         Role = "HR"
	RoleFinance    Role = "FINANCE"
)

// roleRank is used only for minimum-threshold checks, never for membership
// checks. Peer operational roles deliberately share a rank: they are equals in
// privilege but still distinguishable by name in allow-lists.
var roleRank = map[Role]int{
	RoleSuperAdmin: 100,
	RoleCEO:        90,
	RoleManager:    70,
	RoleDeveloper:  50,
	RoleSupport:    50,
	RoleHR:         50,
	RoleFinance:    50,
}

// AllRoles lists every valid role value.
var AllRoles = []Role{
	RoleSuperAdmin, RoleCEO, RoleManager,
	RoleDeveloper, RoleSupport, RoleHR, RoleFinance,
}

// IsValid reports whether r is one of the seven known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the numeric level of the role. Unrecognized roles rank 0 and
// therefore never satisfy a positive threshold.
func (r Role) Rank() int {
	return roleRank[r]
}

// In reports exact membership of r in allowed. The SUPER_ADMIN bypass is
// applied by the callers that want it, not here, so the predicate stays usable
// for strict name checks.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// AtLeast reports whether r's rank meets the threshold role's rank.
func (r Role) AtLeast(threshold Role) bool {
	return r.Rank() >= threshold.Rank()
}
