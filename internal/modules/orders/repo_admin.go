package orders

import (
	"context"
	"strings"
)

type AdminListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

func (r *Repo) AdminList(ctx context.Context, in AdminListParams) (ListResult, error) {
	page, size := pageBounds(in.Page, in.PageSize, 30)

	base := r.db.WithContext(ctx).Model(&Order{})
	if st := strings.TrimSpace(in.Status); st != "" {
		base = base.Where("status = ?", st)
	}
	// matches order number or customer e-mail
	if q := strings.ToLower(strings.TrimSpace(in.Q)); q != "" {
		like := "%" + q + "%"
		base = base.Where("(LOWER(order_number) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Order
	if err := base.Scopes(newestPage(page, size)).Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) AdminGetDetail(ctx context.Context, orderID string) (Order, []OrderEvent, error) {
	o, err := r.GetWithItems(ctx, orderID)
	if err != nil {
		return Order{}, nil, err
	}
	var ev []OrderEvent
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ev, "order_id = ?", orderID).Error; err != nil {
		return Order{}, nil, err
	}
	return o, ev, nil
}

func (r *Repo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(Statuses))
	for _, s := range Statuses {
		out[s] = 0
	}
	for _, rw := range rows {
		out[rw.Status] = rw.Count
	}
	return out, nil
}
