package auth

// ============================================================================
// ROLES
// ============================================================================

type Role string

const (
	RoleUser         Role = "user"
	RoleCompanyAdmin Role = "company_admin"
	RoleAdmin        Role = "admin"
	RoleEmployer     Role = "employer"
)

func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCompanyAdmin, RoleAdmin, RoleEmployer:
		return true
	}
	return false
}

// IsCompanyRole reports whether the role acts on behalf of a company
func (r Role) IsCompanyRole() bool {
	return r == RoleCompanyAdmin || r == RoleEmployer
}

// EmployerRoles are allowed to manage jobs and applications of their company
func EmployerRoles() []Role {
	return []Role{RoleCompanyAdmin, RoleEmployer}
}

// ManagerRoles are the employer roles plus the platform admin
func ManagerRoles() []Role {
	return append(EmployerRoles(), RoleAdmin)
}
