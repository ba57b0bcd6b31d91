package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetOrCreateUserCart(ctx context.Context, userID string) (Cart, error) {
	return GetOrCreateUserCartTx(ctx, r.db, userID)
}

// GetOrCreateUserCartTx works on any handle, including an open transaction.
func GetOrCreateUserCartTx(ctx context.Context, db *gorm.DB, userID string) (Cart, error) {
	var c Cart
	err := db.WithContext(ctx).FirstOrCreate(&c, Cart{UserID: &userID}).Error
	return c, err
}

func (r *Repo) Items(ctx context.Context, cartID string) ([]CartItem, error) {
	return ItemsTx(ctx, r.db, cartID)
}

func ItemsTx(ctx context.Context, db *gorm.DB, cartID string) ([]CartItem, error) {
	var items []CartItem
	err := db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// AddItem merges qty into an existing line, capped at MaxQty.
func (r *Repo) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing CartItem
		err := tx.First(&existing, "cart_id = ? AND product_id = ?", cartID, productID).Error
		if err == nil {
			n := min(existing.Quantity+qty, MaxQty)
			return tx.Model(&CartItem{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{"quantity": n, "updated_at": time.Now()}).Error
		}
		if !dberr.IsNotFound(err) {
			return err
		}
		now := time.Now()
		item := CartItem{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  min(qty, MaxQty),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&item).Error
	})
}

func (r *Repo) UpdateItemQty(ctx context.Context, cartID, productID string, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(ctx, cartID, productID)
	}
	res := r.db.WithContext(ctx).Model(&CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]any{"quantity": qty, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) RemoveItem(ctx context.Context, cartID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) ClearCart(ctx context.Context, cartID string) error {
	return ClearCartTx(ctx, r.db, cartID)
}

func ClearCartTx(ctx context.Context, db *gorm.DB, cartID string) error {
	return db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}
