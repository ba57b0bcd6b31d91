package users_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, role access.Role) users.User {
	t.Helper()
	id := uuid.NewString()
	u := users.User{
		ID:           id,
		Email:        id[:8] + "@example.com",
		PasswordHash: "x",
		FirstName:    "F" + id[:4],
		LastName:     "L" + id[:4],
		Role:         role,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedSession(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Exec(
		"INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at, updated_at, last_seen_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		uuid.NewString(), userID, []byte(uuid.NewString()), now.Add(time.Hour), now, now, now,
	).Error)
}

func count(t *testing.T, db *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Where(where, args...).Count(&n).Error)
	return n
}

func newBulk(db *gorm.DB, m mailer.Service) *users.BulkService {
	return users.NewBulkService(db, m, "shop@example.com", "Salt & Scoville", testutil.Logger())
}

func TestBulkDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, access.Admin)
	a := seedUser(t, db, access.Customer)
	b := seedUser(t, db, access.Wholesale)
	seedSession(t, db, a.ID)

	n, err := newBulk(db, nil).Delete(ctx, users.Actor{ID: admin.ID, Role: access.Admin}, []string{a.ID, b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Zero(t, count(t, db, "users", "id IN ?", []string{a.ID, b.ID}))
	assert.Zero(t, count(t, db, "sessions", "user_id = ?", a.ID))
	assert.EqualValues(t, 1, count(t, db, "users", "id = ?", admin.ID))
}

func TestBulkDelete_AllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, access.Admin)
	a := seedUser(t, db, access.Customer)
	super := seedUser(t, db, access.Superadmin)
	actor := users.Actor{ID: admin.ID, Role: access.Admin}
	bulk := newBulk(db, nil)

	t.Run("outranked user in selection", func(t *testing.T) {
		_, err := bulk.Delete(ctx, actor, []string{a.ID, super.ID})
		assert.ErrorIs(t, err, users.ErrOutranked)
		assert.EqualValues(t, 1, count(t, db, "users", "id = ?", a.ID))
	})

	t.Run("self in selection", func(t *testing.T) {
		_, err := bulk.Delete(ctx, actor, []string{a.ID, admin.ID})
		assert.ErrorIs(t, err, users.ErrSelfAction)
		assert.EqualValues(t, 1, count(t, db, "users", "id = ?", a.ID))
	})

	t.Run("unknown ids", func(t *testing.T) {
		ghost := uuid.NewString()
		_, err := bulk.Delete(ctx, actor, []string{a.ID, ghost})
		var missing *users.MissingUsersError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{ghost}, missing.IDs)
		assert.EqualValues(t, 1, count(t, db, "users", "id = ?", a.ID))
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := bulk.Delete(ctx, actor, []string{" ", ""})
		assert.ErrorIs(t, err, users.ErrEmptySelection)
	})
}

func TestBulkChangeRole(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, access.Admin)
	super := seedUser(t, db, access.Superadmin)
	a := seedUser(t, db, access.Customer)
	b := seedUser(t, db, access.Wholesale)
	require.NoError(t, db.Model(&users.User{}).Where("id = ?", b.ID).Update("wholesale_approved", true).Error)
	bulk := newBulk(db, nil)
	repo := users.NewRepo(db)

	n, err := bulk.ChangeRole(ctx, users.Actor{ID: admin.ID, Role: access.Admin}, []string{a.ID, b.ID}, access.Moderator)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, access.Moderator, got.Role)
	assert.False(t, got.WholesaleApproved)

	t.Run("admin cannot grant admin", func(t *testing.T) {
		_, err := bulk.ChangeRole(ctx, users.Actor{ID: admin.ID, Role: access.Admin}, []string{a.ID}, access.Admin)
		assert.ErrorIs(t, err, users.ErrOutranked)
		got, _ := repo.Get(ctx, a.ID)
		assert.Equal(t, access.Moderator, got.Role)
	})

	t.Run("superadmin can grant admin", func(t *testing.T) {
		_, err := bulk.ChangeRole(ctx, users.Actor{ID: super.ID, Role: access.Superadmin}, []string{a.ID}, access.Admin)
		require.NoError(t, err)
		role, err := repo.Role(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, access.Admin, role)
	})

	t.Run("cannot demote self", func(t *testing.T) {
		_, err := bulk.ChangeRole(ctx, users.Actor{ID: super.ID, Role: access.Superadmin}, []string{super.ID}, access.Customer)
		assert.ErrorIs(t, err, users.ErrSelfAction)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := bulk.ChangeRole(ctx, users.Actor{ID: super.ID, Role: access.Superadmin}, []string{a.ID}, access.Role("owner"))
		assert.ErrorIs(t, err, users.ErrInvalidRole)
	})
}

func TestExportCSV(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := seedUser(t, db, access.Customer)
	b := seedUser(t, db, access.Wholesale)
	seedUser(t, db, access.Customer)
	bulk := newBulk(db, nil)

	var buf bytes.Buffer
	n, err := bulk.ExportCSV(ctx, []string{b.ID, a.ID}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "email", "first_name", "last_name", "role", "wholesale_approved", "loyalty_points", "created_at"}, rows[0])
	assert.Equal(t, b.ID, rows[1][0])
	assert.Equal(t, "wholesale", rows[1][4])
	assert.Equal(t, "false", rows[1][5])

	buf.Reset()
	n, err = bulk.ExportCSV(ctx, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBulkEmail(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, access.Admin)
	var ids []string
	for range 5 {
		ids = append(ids, seedUser(t, db, access.Customer).ID)
	}
	failing := seedUser(t, db, access.Customer)
	ids = append(ids, failing.ID)

	m := &mailer.Mock{FailFor: map[string]error{failing.Email: fmt.Errorf("mailbox full")}}
	res, err := newBulk(db, m).Email(ctx, users.Actor{ID: admin.ID, Role: access.Admin}, ids, users.EmailInput{
		Subject: "New sauces",
		Body:    "Hi {{first_name}}, the ghost pepper batch is back.",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Sent)
	assert.Equal(t, []string{failing.ID}, res.FailedIDs)

	msgs := m.Messages()
	require.Len(t, msgs, 5)
	for _, msg := range msgs {
		assert.Equal(t, "New sauces", msg.Subject)
		assert.Equal(t, "shop@example.com", msg.From)
		assert.NotContains(t, msg.TextBody, "{{first_name}}")
	}
}
