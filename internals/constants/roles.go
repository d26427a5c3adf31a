package constants

// Role names carried in the JWT "role" claim.
const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)
