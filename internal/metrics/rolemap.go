package metrics

import "github.com/kanthai/launchpad/internal/models"

// FunctionGroup maps a functional area label to the owner roles whose
// tasks count toward it. The mapping is declared explicitly rather than
// inferred from role names.
type FunctionGroup struct {
	Name  string
	Roles []string
}

// FunctionGroups lists the functional areas in display order. PM rolls up
// under Operations, and Admin/Finance stand in for Compliance.
var FunctionGroups = []FunctionGroup{
	{Name: "E-Commerce", Roles: []string{models.RoleEcom}},
	{Name: "Marketing", Roles: []string{models.RoleMarketing}},
	{Name: "Operations", Roles: []string{models.RoleOps, models.RolePM}},
	{Name: "CS / After-Sales", Roles: []string{models.RoleCS, models.RoleAfterService}},
	{Name: "Compliance", Roles: []string{models.RoleAdmin, models.RoleFinance}},
}
