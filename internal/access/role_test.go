package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(Superadmin))
	assert.True(t, IsAdmin(Admin))
	assert.True(t, IsAdmin(Moderator))
	assert.False(t, IsAdmin(Wholesale))
	assert.False(t, IsAdmin(Customer))
	assert.False(t, IsAdmin(""))
}

func TestHasRequiredRole(t *testing.T) {
	cases := []struct {
		role, required Role
		want           bool
	}{
		{Customer, "", true},
		{Moderator, Moderator, true},
		{Admin, Moderator, true},
		{Superadmin, Admin, true},
		{Superadmin, Moderator, true},
		{Moderator, Admin, false},
		{Admin, Superadmin, false},
		{Moderator, Superadmin, false},
		{Customer, Moderator, false},
		{Wholesale, Admin, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasRequiredRole(tc.role, tc.required), "%s requires %s", tc.role, tc.required)
	}
}

func TestPermits(t *testing.T) {
	// a customer with no requirement is still not staff
	assert.False(t, Permits(Customer, ""))
	assert.True(t, Permits(Moderator, ""))
	assert.True(t, Permits(Superadmin, Moderator))
	assert.False(t, Permits(Moderator, Admin))
}

func TestParse(t *testing.T) {
	r, ok := Parse(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, Admin, r)

	_, ok = Parse("owner")
	assert.False(t, ok)

	_, ok = ParseRequired("wholesale")
	assert.False(t, ok)
	r, ok = ParseRequired("moderator")
	assert.True(t, ok)
	assert.Equal(t, Moderator, r)
}

func TestCanAssign(t *testing.T) {
	assert.True(t, CanAssign(Admin, Customer, Moderator))
	assert.True(t, CanAssign(Admin, Wholesale, Customer))
	assert.False(t, CanAssign(Admin, Customer, Admin), "only superadmin grants admin")
	assert.False(t, CanAssign(Admin, Superadmin, Customer), "cannot demote a superior")
	assert.True(t, CanAssign(Superadmin, Admin, Superadmin))
	assert.True(t, CanAssign(Moderator, Customer, Wholesale))
	assert.False(t, CanAssign(Customer, Customer, Wholesale))
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(Admin, Admin))
	assert.False(t, CanManage(Admin, Superadmin))
	assert.False(t, CanManage(Customer, Customer))
}
