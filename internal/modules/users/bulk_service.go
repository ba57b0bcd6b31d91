package users

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
)

const emailConcurrency = 4

// BulkService applies one admin action to a selection of users. Delete and
// role changes run in a single transaction: either every selected user is
// changed or none is.
type BulkService struct {
	db       *gorm.DB
	mail     mailer.Service
	from     string
	fromName string
	log      *slog.Logger
}

func NewBulkService(db *gorm.DB, m mailer.Service, from, fromName string, l *slog.Logger) *BulkService {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BulkService{db: db, mail: m, from: from, fromName: fromName, log: l}
}

// Delete removes every selected user together with their sessions, carts and
// heat profiles. Orders are kept for bookkeeping.
func (s *BulkService) Delete(ctx context.Context, actor Actor, ids []string) (int, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		selected, err := findByIDs(tx, ids)
		if err != nil {
			return err
		}
		for _, u := range selected {
			if u.ID == actor.ID {
				return ErrSelfAction
			}
			if !access.CanManage(actor.Role, u.Role) {
				return ErrOutranked
			}
		}

		for _, stmt := range []string{
			"DELETE FROM sessions WHERE user_id IN ?",
			"DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id IN ?)",
			"DELETE FROM carts WHERE user_id IN ?",
			"DELETE FROM heat_profiles WHERE user_id IN ?",
		} {
			if err := tx.Exec(stmt, ids).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id IN ?", ids).Delete(&User{})
		if res.Error != nil {
			return res.Error
		}
		if int(res.RowsAffected) != len(ids) {
			return fmt.Errorf("bulk delete: expected %d rows, deleted %d", len(ids), res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "users_bulk_deleted", "actor_id", actor.ID, "count", len(ids))
	return len(ids), nil
}

// ChangeRole sets role on every selected user.
func (s *BulkService) ChangeRole(ctx context.Context, actor Actor, ids []string, role access.Role) (int, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	if _, ok := access.Parse(string(role)); !ok {
		return 0, ErrInvalidRole
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		selected, err := findByIDs(tx, ids)
		if err != nil {
			return err
		}
		for _, u := range selected {
			if u.ID == actor.ID && u.Role != role {
				return ErrSelfAction
			}
			if !access.CanAssign(actor.Role, u.Role, role) {
				return ErrOutranked
			}
		}

		updates := map[string]any{"role": role, "updated_at": time.Now()}
		// leaving the wholesale tier drops the approval with it
		if role != access.Wholesale {
			updates["wholesale_approved"] = false
		}
		return tx.Model(&User{}).Where("id IN ?", ids).Updates(updates).Error
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "users_bulk_role_changed", "actor_id", actor.ID, "role", string(role), "count", len(ids))
	return len(ids), nil
}

var csvHeader = []string{"id", "email", "first_name", "last_name", "role", "wholesale_approved", "loyalty_points", "created_at"}

// ExportCSV writes the selected users, or every user when ids is empty.
func (s *BulkService) ExportCSV(ctx context.Context, ids []string, w io.Writer) (int, error) {
	ids = normalizeIDs(ids)
	repo := NewRepo(s.db)

	var list []User
	var err error
	if len(ids) == 0 {
		list, err = repo.All(ctx)
	} else {
		list, err = repo.FindByIDs(ctx, ids)
	}
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, u := range list {
		rec := []string{
			u.ID,
			u.Email,
			u.FirstName,
			u.LastName,
			string(u.Role),
			strconv.FormatBool(u.WholesaleApproved),
			strconv.Itoa(u.LoyaltyPoints),
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(list), cw.Error()
}

type EmailInput struct {
	Subject string
	Body    string
}

type EmailResult struct {
	Sent      int      `json:"sent"`
	FailedIDs []string `json:"failed_ids"`
}

// Email sends the same message to every selected user. Individual delivery
// failures are reported in the result, not as an error.
func (s *BulkService) Email(ctx context.Context, actor Actor, ids []string, in EmailInput) (EmailResult, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return EmailResult{}, ErrEmptySelection
	}
	selected, err := NewRepo(s.db).FindByIDs(ctx, ids)
	if err != nil {
		return EmailResult{}, err
	}

	var (
		mu      sync.Mutex
		res     = EmailResult{FailedIDs: []string{}}
		g, gctx = errgroup.WithContext(ctx)
	)
	g.SetLimit(emailConcurrency)

	for _, u := range selected {
		g.Go(func() error {
			msg := mailer.Email{
				From:     s.from,
				FromName: s.fromName,
				To:       []string{u.Email},
				Subject:  in.Subject,
				TextBody: personalize(in.Body, u),
			}
			err := s.mail.Send(gctx, msg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.WarnContext(ctx, "bulk_email_failed", "user_id", u.ID, "err", err)
				res.FailedIDs = append(res.FailedIDs, u.ID)
				return nil
			}
			res.Sent++
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(res.FailedIDs)
	s.log.InfoContext(ctx, "users_bulk_emailed", "actor_id", actor.ID, "sent", res.Sent, "failed", len(res.FailedIDs))
	return res, nil
}

func personalize(body string, u User) string {
	name := u.FirstName
	if name == "" {
		name = "there"
	}
	return strings.ReplaceAll(body, "{{first_name}}", name)
}

// normalizeIDs trims, drops blanks and de-duplicates while keeping order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
