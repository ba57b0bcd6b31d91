package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
)

// Session is a database-backed login session. Clients hold the opaque Token;
// only its SHA-256 is stored.
type Session struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	UserID     string    `gorm:"type:char(36);not null;index:ix_sessions_user_id"`
	TokenHash  []byte    `gorm:"size:32;not null;uniqueIndex:ux_sessions_token_hash"`
	ExpiresAt  time.Time `gorm:"not null;index:ix_sessions_expires_at"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`

	Token string `gorm:"-"` // set by Create only
}

func (Session) TableName() string { return "sessions" }

type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &SessionStore{db: db, ttl: ttl}
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Create opens a new session for userID.
func (s *SessionStore) Create(ctx context.Context, userID string) (*Session, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	token := base64.RawURLEncoding.EncodeToString(secret)
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		TokenHash:  hashToken(token),
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		LastSeenAt: now,
		Token:      token,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Lookup returns the live session the token belongs to.
func (s *SessionStore) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	var sess Session
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", hashToken(token), time.Now()).
		First(&sess).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Touch bumps last_seen_at at most once a minute.
func (s *SessionStore) Touch(ctx context.Context, sess *Session) {
	now := time.Now()
	if now.Sub(sess.LastSeenAt) < time.Minute {
		return
	}
	_ = s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", sess.ID).
		Updates(map[string]any{"last_seen_at": now, "updated_at": now}).Error
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}

// DeleteExpired purges sessions past their expiry and returns how many went.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&Session{})
	return res.RowsAffected, res.Error
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
