package models

// Owner roles a task definition can default to.
const (
	RoleAdmin        = "Admin"
	RolePM           = "PM"
	RoleOps          = "Ops"
	RoleEcom         = "Ecom"
	RoleMarketing    = "Marketing"
	RoleCS           = "CS"
	RoleAfterService = "AfterService"
	RoleFinance      = "Finance"
)

// AllRoles lists every owner role in display order.
var AllRoles = []string{
	RoleAdmin,
	RolePM,
	RoleOps,
	RoleEcom,
	RoleMarketing,
	RoleCS,
	RoleAfterService,
	RoleFinance,
}

// RoleAssignment binds a role to an owner email for one product. Task
// generation resolves each definition's default owner role through these.
type RoleAssignment struct {
	ProductID  string `gorm:"size:16;primaryKey"`
	Role       string `gorm:"size:32;primaryKey"`
	OwnerEmail string `gorm:"size:128"`
	Note       string `gorm:"size:255"`
}

func (RoleAssignment) TableName() string { return "product_role_assignments" }

// RoleDefault is the team-wide fallback owner for a role, used to prefill
// assignments when a product is created without one for that role.
type RoleDefault struct {
	Role       string `gorm:"size:32;primaryKey"`
	OwnerEmail string `gorm:"size:128"`
	Note       string `gorm:"size:255"`
}
