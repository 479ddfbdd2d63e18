package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps repository operations with session lifetime rules.
type Service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(r Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{repo: r, ttl: ttl}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// New returns an unsaved, anonymous session.
func (s *Service) New() *Session {
	return &Session{ID: uuid.NewString(), ExpiresAt: time.Now().UTC().Add(s.ttl)}
}

// Load returns the stored session or nil when it is unknown or expired.
func (s *Service) Load(ctx context.Context, id string) (*Session, error) {
	return s.repo.Get(ctx, id)
}

// Save stores sess and slides its expiry forward.
func (s *Service) Save(ctx context.Context, sess *Session) error {
	sess.ExpiresAt = time.Now().UTC().Add(s.ttl)
	return s.repo.Save(ctx, sess)
}

// Renew gives sess a new id and deletes the record stored under the old one.
func (s *Service) Renew(ctx context.Context, sess *Session) error {
	old := sess.ID
	sess.ID = uuid.NewString()
	if old == "" {
		return nil
	}
	return s.repo.Delete(ctx, old)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
