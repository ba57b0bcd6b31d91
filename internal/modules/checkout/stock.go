package checkout

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type StockLine struct {
	ProductID string
	Qty       int
}

// DeductStockInTx runs inside the caller's transaction. Each product is
// decremented with a conditional update so concurrent checkouts can never
// drive stock below zero.
func DeductStockInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		want[ln.ProductID] += max(ln.Qty, 1)
	}

	// Rows are touched in id order so two checkouts cannot deadlock.
	var oos []OutOfStockItem
	for _, id := range slices.Sorted(maps.Keys(want)) {
		req := want[id]
		res := tx.WithContext(ctx).
			Table("products").
			Where("id = ? AND stock_quantity >= ?", id, req).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", req))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			continue
		}

		var avail int
		if err := tx.WithContext(ctx).
			Table("products").
			Select("stock_quantity").
			Where("id = ?", id).
			Scan(&avail).Error; err != nil {
			return err
		}
		oos = append(oos, OutOfStockItem{ProductID: id, Requested: req, Available: avail})
	}
	if len(oos) > 0 {
		return &OutOfStockError{Items: oos}
	}
	return nil
}

// withTxRetry reruns fn in a fresh transaction on deadlocks and lock wait
// timeouts.
func withTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	backoff := 50 * time.Millisecond
	for i := 1; ; i++ {
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil || i >= attempts || !retryable(err) {
			return err
		}
		t := time.NewTimer(time.Duration(i) * backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

func retryable(err error) bool {
	return dberr.IsRetryable(err) || errors.Is(err, errNumberTaken)
}
