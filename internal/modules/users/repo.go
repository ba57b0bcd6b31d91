package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = access.Customer
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", NormalizeEmail(email)).Error; err != nil {
		if dberr.IsNotFound(err) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Role loads only the role column; the admin guard calls it on every request.
func (r *Repo) Role(ctx context.Context, id string) (access.Role, error) {
	var roles []string
	if err := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Limit(1).Pluck("role", &roles).Error; err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", ErrNotFound
	}
	return access.Role(roles[0]), nil
}

type ListParams struct {
	Q        string
	Role     string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []User
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	base := r.db.WithContext(ctx).Model(&User{})
	if role := strings.TrimSpace(in.Role); role != "" {
		base = base.Where("role = ?", role)
	}
	if q := strings.TrimSpace(in.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("(email LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", like, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}
	var items []User
	if err := base.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

// FindByIDs returns the users in ids order and fails with
// *MissingUsersError when any id is unknown.
func (r *Repo) FindByIDs(ctx context.Context, ids []string) ([]User, error) {
	return findByIDs(r.db.WithContext(ctx), ids)
}

func findByIDs(db *gorm.DB, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	var found []User
	if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]User, 0, len(ids))
	var missing []string
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, u)
	}
	if len(missing) > 0 {
		return nil, &MissingUsersError{IDs: missing}
	}
	return out, nil
}

// All returns every user, oldest first.
func (r *Repo) All(ctx context.Context) ([]User, error) {
	var items []User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) SetWholesale(ctx context.Context, id string, approved bool) (User, error) {
	updates := map[string]any{
		"wholesale_approved": approved,
		"updated_at":         time.Now(),
	}
	return r.update(ctx, id, updates)
}

// RequestWholesale moves a customer to the wholesale role pending approval.
func (r *Repo) RequestWholesale(ctx context.Context, id string) (User, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u.Role != access.Customer && u.Role != access.Wholesale {
		return User{}, ErrInvalidRole
	}
	return r.update(ctx, id, map[string]any{
		"role":       access.Wholesale,
		"updated_at": time.Now(),
	})
}

func (r *Repo) SetLoyaltyPoints(ctx context.Context, id string, points int) (User, error) {
	if points < 0 {
		return User{}, ErrNegativePoints
	}
	return r.update(ctx, id, map[string]any{
		"loyalty_points": points,
		"updated_at":     time.Now(),
	})
}

// AddLoyaltyPointsTx runs inside the caller's transaction.
func AddLoyaltyPointsTx(ctx context.Context, tx *gorm.DB, id string, points int) error {
	if points <= 0 {
		return nil
	}
	return tx.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}

func (r *Repo) CountByRole(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Role] = rw.Count
	}
	return out, nil
}

func (r *Repo) update(ctx context.Context, id string, updates map[string]any) (User, error) {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return User{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
