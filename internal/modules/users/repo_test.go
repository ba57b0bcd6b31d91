package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func TestRepo_RoleAndList(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := users.NewRepo(db)
	mod := seedUser(t, db, access.Moderator)
	seedUser(t, db, access.Customer)
	seedUser(t, db, access.Customer)

	role, err := repo.Role(ctx, mod.ID)
	require.NoError(t, err)
	assert.Equal(t, access.Moderator, role)

	_, err = repo.Role(ctx, "nope")
	assert.ErrorIs(t, err, users.ErrNotFound)

	res, err := repo.List(ctx, users.ListParams{Role: "customer"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	res, err = repo.List(ctx, users.ListParams{Q: mod.Email[:6]})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, mod.ID, res.Items[0].ID)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts["customer"])
	assert.EqualValues(t, 1, counts["moderator"])
}

func TestRepo_Wholesale(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := users.NewRepo(db)
	c := seedUser(t, db, access.Customer)

	u, err := repo.RequestWholesale(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, access.Wholesale, u.Role)
	assert.False(t, u.WholesaleApproved)

	u, err = repo.SetWholesale(ctx, c.ID, true)
	require.NoError(t, err)
	assert.True(t, u.WholesaleApproved)

	staff := seedUser(t, db, access.Admin)
	_, err = repo.RequestWholesale(ctx, staff.ID)
	assert.ErrorIs(t, err, users.ErrInvalidRole)
}

func TestRepo_LoyaltyPoints(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := users.NewRepo(db)
	c := seedUser(t, db, access.Customer)

	u, err := repo.SetLoyaltyPoints(ctx, c.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, u.LoyaltyPoints)

	_, err = repo.SetLoyaltyPoints(ctx, c.ID, -1)
	assert.ErrorIs(t, err, users.ErrNegativePoints)

	require.NoError(t, users.AddLoyaltyPointsTx(ctx, db, c.ID, 30))
	u, err = repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, u.LoyaltyPoints)

	_, err = repo.SetLoyaltyPoints(ctx, "missing", 5)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "chili@example.com", users.NormalizeEmail("  Chili@Example.COM "))
}
