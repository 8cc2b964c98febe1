package entity

type Role string

const (
	RoleStaff   Role = "Staff"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

type Capability string

const (
	CapUpload          Capability = "upload"
	CapAssignedDocs    Capability = "assigned-documents"
	CapApprovals       Capability = "approvals"
	CapApprovedDocs    Capability = "approved-documents"
	CapManagerOverview Capability = "manager-dashboard"
	CapCreateUser      Capability = "create-user"
	CapAdminConsole    Capability = "admin"
)

var roleCapabilities = map[Role][]Capability{
	RoleStaff:   {CapUpload, CapAssignedDocs},
	RoleManager: {CapApprovals, CapApprovedDocs, CapManagerOverview},
	RoleAdmin:   {CapApprovals, CapApprovedDocs, CapManagerOverview, CapCreateUser, CapAdminConsole},
}

// Can reports whether navigation and actions for c are shown to the role.
// It only hides links; the backend still authorizes every call.
func (r Role) Can(c Capability) bool {
	for _, v := range roleCapabilities[r] {
		if v == c {
			return true
		}
	}

	return false
}

var Departments = []string{"General", "Engineering", "HR", "Finance", "Safety", "Procurement"}
