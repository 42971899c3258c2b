// Package rbac holds the static role/permission model. The permission table
// is built once at package init and never mutated afterwards; role
// definitions are a deployment-time decision, not user data.
package rbac

// Role is one of the fixed, seniority-ordered privilege levels.
type Role string

const (
	RoleViewer      Role = "viewer"
	RoleContributor Role = "contributor"
	RoleEditor      Role = "editor"
	RoleAdmin       Role = "admin"
)

// Resource is a named category of protected data or operations.
type Resource string

const (
	ResourceUsers    Resource = "users"
	ResourceContent  Resource = "content"
	ResourceSystem   Resource = "system"
	ResourceLogs     Resource = "logs"
	ResourceFiles    Resource = "files"
	ResourceBranches Resource = "branches"
	ResourceProducts Resource = "products"
	ResourceProfiles Resource = "profiles"
)

// Action is a verb applied to a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionUpload Action = "upload"
)

// roleRank orders roles by seniority. Unknown roles are absent and rank below
// every valid role.
var roleRank = map[Role]int{
	RoleViewer:      0,
	RoleContributor: 1,
	RoleEditor:      2,
	RoleAdmin:       3,
}

var allResources = []Resource{
	ResourceUsers,
	ResourceContent,
	ResourceSystem,
	ResourceLogs,
	ResourceFiles,
	ResourceBranches,
	ResourceProducts,
	ResourceProfiles,
}

// permissions maps every role to its full grant set. Every valid role has an
// entry for every resource; an empty action set means denial.
var permissions = map[Role]map[Resource][]Action{
	RoleViewer: {
		ResourceUsers:    {},
		ResourceContent:  {ActionRead},
		ResourceSystem:   {},
		ResourceLogs:     {},
		ResourceFiles:    {ActionRead},
		ResourceBranches: {ActionRead},
		ResourceProducts: {ActionRead},
		ResourceProfiles: {ActionRead},
	},
	RoleContributor: {
		ResourceUsers:    {},
		ResourceContent:  {ActionCreate, ActionRead, ActionUpdate},
		ResourceSystem:   {},
		ResourceLogs:     {},
		ResourceFiles:    {ActionRead, ActionUpload},
		ResourceBranches: {ActionCreate, ActionRead, ActionUpdate},
		ResourceProducts: {ActionCreate, ActionRead, ActionUpdate},
		ResourceProfiles: {ActionCreate, ActionRead, ActionUpdate},
	},
	RoleEditor: {
		ResourceUsers:    {},
		ResourceContent:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceSystem:   {},
		ResourceLogs:     {},
		ResourceFiles:    {ActionRead, ActionUpload, ActionDelete},
		ResourceBranches: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceProducts: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceProfiles: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	},
	RoleAdmin: {
		ResourceUsers:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceContent:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceSystem:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceLogs:     {ActionRead, ActionDelete},
		ResourceFiles:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionUpload},
		ResourceBranches: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceProducts: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceProfiles: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	},
}

// HasPermission reports whether role may perform action on resource. It is a
// total function: unknown roles, resources or actions yield false, never an
// error, so a permission check can gate any request without defensive
// wrapping.
func HasPermission(role Role, resource Resource, action Action) bool {
	grants, ok := permissions[role]
	if !ok {
		return false
	}
	actions, ok := grants[resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// HasRoleOrHigher reports whether role is at least as senior as required.
// Unknown roles on either side yield false.
func HasRoleOrHigher(role, required Role) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}

// IsValidRole reports whether candidate names one of the fixed roles.
func IsValidRole(candidate string) bool {
	_, ok := roleRank[Role(candidate)]
	return ok
}

// RolePermissions returns a copy of the full grant set for role. Unknown
// roles get an empty, non-nil map so callers can iterate without nil checks.
func RolePermissions(role Role) map[Resource][]Action {
	out := make(map[Resource][]Action, len(allResources))
	grants, ok := permissions[role]
	if !ok {
		return out
	}
	for resource, actions := range grants {
		out[resource] = append([]Action(nil), actions...)
	}
	return out
}

// Roles returns the fixed role set in seniority order.
func Roles() []Role {
	return []Role{RoleViewer, RoleContributor, RoleEditor, RoleAdmin}
}

// Resources returns the fixed resource vocabulary.
func Resources() []Resource {
	return append([]Resource(nil), allResources...)
}
