package auth

import "github.com/fekuna/omnipos-poultry-service/internal/model"

type Capability string

const (
	CatalogView     Capability = "catalog.view"
	CatalogManage   Capability = "catalog.manage"
	UsersManage     Capability = "users.manage"
	SalesView       Capability = "sales.view"
	Ordering        Capability = "ordering"
	Dashboard       Capability = "dashboard"
	InventoryAdjust Capability = "inventory.adjust"
)

// Screen names the landing view a role is sent to after login.
type Screen string

const (
	ScreenAdmin   Screen = "admin"
	ScreenManager Screen = "manager"
	ScreenStaff   Screen = "staff"
	ScreenLogin   Screen = "login"
)

type roleProfile struct {
	home Screen
	caps []Capability
}

var profiles = map[model.Role]roleProfile{
	model.RoleAdmin: {
		home: ScreenAdmin,
		caps: []Capability{CatalogView, CatalogManage, UsersManage, SalesView, Ordering, Dashboard, InventoryAdjust},
	},
	model.RoleManager: {
		home: ScreenManager,
		caps: []Capability{CatalogView, CatalogManage, UsersManage, SalesView, InventoryAdjust},
	},
	model.RoleStaff: {
		home: ScreenStaff,
		caps: []Capability{CatalogView, Ordering},
	},
}

// Capabilities returns a copy of the role's capability list. Unknown roles get none.
func Capabilities(role model.Role) []Capability {
	p, ok := profiles[role]
	if !ok {
		return nil
	}
	out := make([]Capability, len(p.caps))
	copy(out, p.caps)
	return out
}

func HasCapability(role model.Role, c Capability) bool {
	for _, have := range profiles[role].caps {
		if have == c {
			return true
		}
	}
	return false
}

// HomeScreen falls back to the login screen for unknown roles.
func HomeScreen(role model.Role) Screen {
	if p, ok := profiles[role]; ok {
		return p.home
	}
	return ScreenLogin
}
