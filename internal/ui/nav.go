package ui

import (
	"github.com/samandr77/docflow/internal/entity"
)

type Link struct {
	Label string
	Path  string
	Cap   entity.Capability
}

var links = []Link{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Upload", Path: "/upload", Cap: entity.CapUpload},
	{Label: "Assigned documents", Path: "/assigned-documents", Cap: entity.CapAssignedDocs},
	{Label: "Manager dashboard", Path: "/manager-dashboard", Cap: entity.CapManagerOverview},
	{Label: "Approvals", Path: "/approvals", Cap: entity.CapApprovals},
	{Label: "Approved documents", Path: "/approved-documents", Cap: entity.CapApprovedDocs},
	{Label: "Analytics", Path: "/stats"},
	{Label: "Alerts", Path: "/alerts"},
	{Label: "Profile", Path: "/profile"},
	{Label: "Create user", Path: "/create-user", Cap: entity.CapCreateUser},
	{Label: "Admin", Path: "/admin", Cap: entity.CapAdminConsole},
}

// NavLinks are the links shown to role. Links without a capability are
// shown to everyone.
func NavLinks(role entity.Role) []Link {
	out := make([]Link, 0, len(links))

	for _, l := range links {
		if l.Cap == "" || role.Can(l.Cap) {
			out = append(out, l)
		}
	}

	return out
}
