// Package authz holds the declarative role policy: one table mapping
// (resource, operation) to the roles allowed to invoke it. Handlers and
// services consult the table instead of branching on role strings inline.
// Parent callers are additionally restricted at the data level by ownership
// checks in the services; the table only answers the role question.
package authz

import "github.com/David2024patton/studio4-dance/internal/core/domain"

// Resource names an API resource group.
type Resource string

// Operation names an action on a resource.
type Operation string

const (
	ResourceUsers        Resource = "users"
	ResourceBilling      Resource = "billing"
	ResourceClasses      Resource = "classes"
	ResourceEvents       Resource = "events"
	ResourceDashboard    Resource = "dashboard"
	ResourceChat         Resource = "chat"

	OpRead         Operation = "read"
	OpList         Operation = "list"
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpDelete       Operation = "delete"
	OpEnroll       Operation = "enroll"
	OpRegister     Operation = "register"
	OpParticipants Operation = "participants"
	OpCharge       Operation = "charge"
	OpPayment      Operation = "payment"
	OpSummary      Operation = "summary"
	OpReadAny      Operation = "read_any"
)

type key struct {
	resource  Resource
	operation Operation
}

// anyAuthenticated marks an operation open to every authenticated role.
var anyAuthenticated = []domain.Role{
	domain.RoleParent, domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance, domain.RoleInstructor,
}

var staffBilling = []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance}

// policy is the single allow-list table. Absent entries deny everyone.
var policy = map[key][]domain.Role{
	{ResourceUsers, OpRead}:   anyAuthenticated, // own profile
	{ResourceUsers, OpUpdate}: anyAuthenticated, // own profile
	{ResourceUsers, OpList}:   {domain.RoleOwner, domain.RoleAdmin},
	{ResourceUsers, OpReadAny}: {
		domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance, domain.RoleInstructor,
	},
	{ResourceUsers, OpDelete}: {domain.RoleOwner},

	{ResourceBilling, OpRead}:    anyAuthenticated,
	{ResourceBilling, OpReadAny}: staffBilling,
	{ResourceBilling, OpCreate}:  staffBilling,
	{ResourceBilling, OpCharge}:  staffBilling,
	{ResourceBilling, OpPayment}: anyAuthenticated,
	{ResourceBilling, OpSummary}: staffBilling,

	{ResourceClasses, OpList}:   anyAuthenticated,
	{ResourceClasses, OpRead}:   anyAuthenticated,
	{ResourceClasses, OpEnroll}: anyAuthenticated, // parents limited to own students

	{ResourceEvents, OpList}:     anyAuthenticated,
	{ResourceEvents, OpRead}:     anyAuthenticated,
	{ResourceEvents, OpRegister}: anyAuthenticated, // parents limited to own students
	{ResourceEvents, OpParticipants}: {
		domain.RoleOwner, domain.RoleAdmin, domain.RoleFinance, domain.RoleInstructor,
	},
	{ResourceEvents, OpCreate}: {domain.RoleOwner, domain.RoleAdmin},
	{ResourceEvents, OpUpdate}: {domain.RoleOwner, domain.RoleAdmin},
	{ResourceEvents, OpDelete}: {domain.RoleOwner},

	{ResourceDashboard, OpRead}: {domain.RoleParent},

	{ResourceChat, OpRead}:   anyAuthenticated, // history
	{ResourceChat, OpDelete}: anyAuthenticated, // own history only
}

// Allowed reports whether role may perform operation on resource.
func Allowed(role domain.Role, resource Resource, operation Operation) bool {
	allowed, ok := policy[key{resource, operation}]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns the allow-list for an operation. Nil means closed.
func AllowedRoles(resource Resource, operation Operation) []domain.Role {
	return policy[key{resource, operation}]
}
