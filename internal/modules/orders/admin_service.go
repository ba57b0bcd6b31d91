package orders

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

// UpdateInput edits an order from the back office. Nil fields stay as they
// are. Any status in the closed set may be set regardless of the current one.
type UpdateInput struct {
	OrderID       string
	ActorUserID   string
	Status        *string
	PaymentStatus *string
	Note          string
}

func (s *AdminService) Update(ctx context.Context, in UpdateInput) (Order, []OrderEvent, error) {
	note := strings.TrimSpace(in.Note)
	if in.Status == nil && in.PaymentStatus == nil && note == "" {
		return Order{}, nil, ErrNothingToUpdate
	}
	if in.Status != nil && !slices.Contains(Statuses, *in.Status) {
		return Order{}, nil, ErrInvalidStatus
	}
	if in.PaymentStatus != nil && !slices.Contains(PaymentStatuses, *in.PaymentStatus) {
		return Order{}, nil, ErrInvalidPaymentStatus
	}

	var events []OrderEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.First(&o, "id = ?", in.OrderID).Error; err != nil {
			if dberr.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		var notePtr *string
		if note != "" {
			notePtr = &note
		}
		newEvent := func(field, from, to string) OrderEvent {
			return OrderEvent{
				ID:          uuid.NewString(),
				OrderID:     o.ID,
				ActorUserID: in.ActorUserID,
				Field:       field,
				FromValue:   from,
				ToValue:     to,
				Note:        notePtr,
				CreatedAt:   now,
			}
		}

		updates := map[string]any{}
		if in.Status != nil && *in.Status != o.Status {
			updates["status"] = *in.Status
			events = append(events, newEvent("status", o.Status, *in.Status))
		}
		if in.PaymentStatus != nil && *in.PaymentStatus != o.PaymentStatus {
			updates["payment_status"] = *in.PaymentStatus
			events = append(events, newEvent("payment_status", o.PaymentStatus, *in.PaymentStatus))
		}
		if len(events) == 0 {
			if notePtr == nil {
				return ErrNothingToUpdate
			}
			events = append(events, newEvent("note", "", ""))
		}

		if len(updates) > 0 {
			updates["updated_at"] = now
			if err := tx.Model(&Order{}).Where("id = ?", o.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		return Order{}, nil, err
	}

	o, err := NewRepo(s.db).GetWithItems(ctx, in.OrderID)
	return o, events, err
}

// Delete removes the order with its items and audit trail.
func (s *AdminService) Delete(ctx context.Context, orderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&OrderEvent{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Order{}, "id = ?", orderID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
