package orders_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func seedOrder(t *testing.T, db *gorm.DB, userID *string, email, number string) orders.Order {
	t.Helper()
	id := uuid.NewString()
	o := orders.Order{
		ID:            id,
		OrderNumber:   number,
		UserID:        userID,
		Email:         email,
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentPending,
		SubtotalCents: 1000,
		TotalCents:    1799,
		ShippingCents: 799,
		Currency:      "USD",
		Items: []orders.OrderItem{{
			ID:             uuid.NewString(),
			OrderID:        id,
			ProductID:      uuid.NewString(),
			ProductName:    "Smoked Ghost",
			SKU:            "SG-1",
			UnitPriceCents: 1000,
			Quantity:       1,
			LineTotalCents: 1000,
			Currency:       "USD",
		}},
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func strp(s string) *string { return &s }

func TestAdminService_Update(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	o := seedOrder(t, db, nil, "guest@example.com", "SS-20260101-AAAAAA")
	svc := orders.NewAdminService(db)
	repo := orders.NewRepo(db)

	got, ev, err := svc.Update(ctx, orders.UpdateInput{
		OrderID:       o.ID,
		ActorUserID:   "admin-1",
		Status:        strp(orders.StatusShipped),
		PaymentStatus: strp(orders.PaymentPaid),
		Note:          "tracking 1Z999",
	})
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, got.Status)
	assert.Equal(t, orders.PaymentPaid, got.PaymentStatus)
	require.Len(t, ev, 2)
	assert.Equal(t, "status", ev[0].Field)
	assert.Equal(t, orders.StatusPending, ev[0].FromValue)
	assert.Equal(t, orders.StatusShipped, ev[0].ToValue)
	require.NotNil(t, ev[0].Note)
	assert.Equal(t, "tracking 1Z999", *ev[0].Note)

	// any status may follow any other
	got, _, err = svc.Update(ctx, orders.UpdateInput{OrderID: o.ID, ActorUserID: "admin-1", Status: strp(orders.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPending, got.Status)

	// a note alone is recorded
	_, ev, err = svc.Update(ctx, orders.UpdateInput{OrderID: o.ID, ActorUserID: "admin-1", Note: "called customer"})
	require.NoError(t, err)
	require.Len(t, ev, 1)
	assert.Equal(t, "note", ev[0].Field)

	_, all, err := repo.AdminGetDetail(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAdminService_UpdateRejects(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	o := seedOrder(t, db, nil, "guest@example.com", "SS-20260101-BBBBBB")
	svc := orders.NewAdminService(db)

	_, _, err := svc.Update(ctx, orders.UpdateInput{OrderID: o.ID, Status: strp("lost")})
	assert.ErrorIs(t, err, orders.ErrInvalidStatus)

	_, _, err = svc.Update(ctx, orders.UpdateInput{OrderID: o.ID, PaymentStatus: strp("maybe")})
	assert.ErrorIs(t, err, orders.ErrInvalidPaymentStatus)

	_, _, err = svc.Update(ctx, orders.UpdateInput{OrderID: o.ID})
	assert.ErrorIs(t, err, orders.ErrNothingToUpdate)

	// same value and no note is a no-op request
	_, _, err = svc.Update(ctx, orders.UpdateInput{OrderID: o.ID, Status: strp(orders.StatusPending)})
	assert.ErrorIs(t, err, orders.ErrNothingToUpdate)

	_, _, err = svc.Update(ctx, orders.UpdateInput{OrderID: uuid.NewString(), Status: strp(orders.StatusShipped)})
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestAdminService_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	o := seedOrder(t, db, nil, "guest@example.com", "SS-20260101-CCCCCC")
	svc := orders.NewAdminService(db)

	require.NoError(t, svc.Delete(ctx, o.ID))
	var n int64
	require.NoError(t, db.Model(&orders.OrderItem{}).Where("order_id = ?", o.ID).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, svc.Delete(ctx, o.ID), orders.ErrNotFound)
}

func TestRepo_ListingAndOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := orders.NewRepo(db)

	owner := users.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, users.NewRepo(db).Create(ctx, &owner))
	uid := owner.ID

	mine := seedOrder(t, db, &uid, "owner@example.com", "SS-20260102-DDDDDD")
	seedOrder(t, db, nil, "owner@example.com", "SS-20260102-EEEEEE")
	other := seedOrder(t, db, strp(uuid.NewString()), "else@example.com", "SS-20260102-FFFFFF")

	res, err := repo.ListByUser(ctx, orders.ListByUserParams{UserID: uid})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	_, err = repo.GetForUser(ctx, mine.ID, uid)
	require.NoError(t, err)
	_, err = repo.GetForUser(ctx, other.ID, uid)
	assert.ErrorIs(t, err, orders.ErrNotFound)

	adm, err := repo.AdminList(ctx, orders.AdminListParams{Q: "ffffff"})
	require.NoError(t, err)
	require.Len(t, adm.Items, 1)
	assert.Equal(t, other.ID, adm.Items[0].ID)
	assert.Len(t, adm.Items[0].Items, 1)

	adm, err = repo.AdminList(ctx, orders.AdminListParams{Q: "OWNER@"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, adm.Total)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[orders.StatusPending])
	assert.EqualValues(t, 0, counts[orders.StatusShipped])
}
