package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/filecms/filecms/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput    = errors.New("invalid username")
	ErrPasswordTooLong = errors.New("password is too long")
)

// AdminUsername is the account seeded at startup when an admin password is configured.
const AdminUsername = "admin"

// Service is the credential store: username to bcrypt hash.
type Service struct {
	repo UserRepository
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// dummyHash is compared against for unknown users so a miss costs the same
// as a wrong password.
func (s *Service) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummy
}

// Authenticate reports whether password matches the stored hash for username.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

// Register adds a user. Blank usernames and names with surrounding
// whitespace are ErrInvalidInput, existing ones ErrAlreadyTaken; in both cases
// the store is left unchanged. Names are stored exactly as given.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || strings.TrimSpace(username) != username {
		return ErrInvalidInput
	}
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return fmt.Errorf("hash password failed: %w", err)
	}
	return s.repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
}

// SeedAdmin registers the admin account unless it already exists.
func (s *Service) SeedAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	err := s.Register(ctx, AdminUsername, password)
	if errors.Is(err, ErrAlreadyTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
