package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ray-remotestate/pos/models"
)

func TestCanAccess(t *testing.T) {
	cases := []struct {
		role     models.Role
		resource Resource
		want     bool
	}{
		{models.RoleAdmin, ResourceRegisters, true},
		{models.RoleAdmin, ResourceKDS, true},
		{models.RoleCashier, ResourceRegisters, true},
		{models.RoleCashier, ResourceKDS, false},
		{models.RoleWaiter, ResourceOrders, true},
		{models.RoleWaiter, ResourceRegisters, false},
		{models.RoleChef, ResourceKDS, true},
		{models.RoleChef, ResourceTables, false},
		{models.Role("intruder"), ResourceOrders, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanAccess(tc.role, tc.resource), "%s -> %s", tc.role, tc.resource)
	}
}
