package middlewares

import (
	"net/http"

	"github.com/ray-remotestate/pos/models"
)

// Resource names the route groups gated by role.
type Resource string

const (
	ResourceOrders    Resource = "orders"
	ResourceTables    Resource = "tables"
	ResourceKDS       Resource = "kds"
	ResourceRegisters Resource = "registers"
	ResourceInventory Resource = "inventory"
)

var capabilities = map[models.Role]map[Resource]bool{
	models.RoleAdmin: {
		ResourceOrders:    true,
		ResourceTables:    true,
		ResourceKDS:       true,
		ResourceRegisters: true,
		ResourceInventory: true,
	},
	models.RoleCashier: {
		ResourceOrders:    true,
		ResourceTables:    true,
		ResourceRegisters: true,
		ResourceInventory: true,
	},
	models.RoleWaiter: {
		ResourceOrders: true,
		ResourceTables: true,
	},
	models.RoleChef: {
		ResourceKDS:    true,
		ResourceOrders: true,
	},
}

// CanAccess is the capability check consumed by route setup and by any
// presentation layer deciding which tabs to show.
func CanAccess(role models.Role, resource Resource) bool {
	return capabilities[role][resource]
}

// RequireAccess gates a subrouter on the staff role carried in the
// verified claims.
func RequireAccess(resource Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetAuthenticatedStaff(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !CanAccess(claims.Role, resource) {
				http.Error(w, "forbidden: insufficient role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
