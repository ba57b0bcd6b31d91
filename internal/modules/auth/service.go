package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
)

type Service struct {
	users    *users.Repo
	sessions *SessionStore
	cost     int
}

func NewService(repo *users.Repo, sessions *SessionStore) *Service {
	return &Service{users: repo, sessions: sessions, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Sessions() *SessionStore { return s.sessions }

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (users.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return users.User{}, err
	}
	u := users.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, *Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, nil, ErrInvalidCredentials
		}
		return users.User{}, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return users.User{}, nil, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return users.User{}, nil, err
	}
	return u, sess, nil
}

// Resolve maps a session token to its session and user.
func (s *Service) Resolve(ctx context.Context, token string) (users.User, *Session, error) {
	sess, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return users.User{}, nil, err
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, nil, ErrSessionNotFound
		}
		return users.User{}, nil, err
	}
	s.sessions.Touch(ctx, sess)
	return u, sess, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
