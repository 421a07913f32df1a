package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"jobport/internal/pkg/jwt"

	"github.com/google/uuid"
)

const (
	revokedTokenPrefix = "session:revoked:"
	revokedUserPrefix  = "session:user_revoked_at:"
)

// Denylist is the subset of the cache the revocation service needs.
type Denylist interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Notifier pushes a session_revoked event to the user's live connections so
// clients can drop their local session instead of waiting for the next 401.
type Notifier interface {
	NotifyUser(userID uuid.UUID, payload []byte)
}

type revokedEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// Service turns "forced logout" into an explicit signal: a denylist entry
// the auth middleware consults, plus a push to the affected user. Entries
// expire with the tokens they shadow, so the denylist stays small.
type Service struct {
	denylist Denylist
	notifier Notifier
	logger   *log.Logger

	maxTokenLifetime time.Duration
	now              func() time.Time
}

func NewService(denylist Denylist, notifier Notifier, maxTokenLifetime time.Duration, logger *log.Logger) *Service {
	if maxTokenLifetime <= 0 {
		maxTokenLifetime = 7 * 24 * time.Hour
	}
	return &Service{
		denylist:         denylist,
		notifier:         notifier,
		logger:           logger,
		maxTokenLifetime: maxTokenLifetime,
		now:              time.Now,
	}
}

// Revoke denylists a single presented token until it would have expired
// anyway, then notifies the owner's connections.
func (s *Service) Revoke(ctx context.Context, token string, claims jwt.Claims) error {
	ttl := claims.ExpiredAt.Sub(s.now())
	if ttl > 0 {
		key := revokedTokenPrefix + tokenDigest(token)
		if err := s.denylist.SetWithTTL(ctx, key, claims.UserID.String(), ttl); err != nil {
			return err
		}
	}

	s.notifyRevoked(claims.UserID)
	return nil
}

// RevokeAllForUser invalidates every token issued to the user before now.
// Used after a role change, where outstanding tokens still carry the old
// role claim.
func (s *Service) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	key := revokedUserPrefix + userID.String()
	watermark := s.now().UTC()
	if err := s.denylist.SetJSON(ctx, key, watermark, s.maxTokenLifetime); err != nil {
		return err
	}

	s.notifyRevoked(userID)
	return nil
}

// IsRevoked reports whether the token, or every token of its user issued
// before the user's revocation watermark, has been revoked.
func (s *Service) IsRevoked(ctx context.Context, token string, claims jwt.Claims) (bool, error) {
	revoked, err := s.denylist.Exists(ctx, revokedTokenPrefix+tokenDigest(token))
	if err != nil {
		return false, err
	}
	if revoked {
		return true, nil
	}

	var watermark time.Time
	found, err := s.denylist.GetJSON(ctx, revokedUserPrefix+claims.UserID.String(), &watermark)
	if err != nil {
		return false, err
	}
	if found && !claims.IssuedAt.After(watermark) {
		return true, nil
	}
	return false, nil
}

func (s *Service) notifyRevoked(userID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	b, err := json.Marshal(revokedEvent{Type: "session_revoked", UserID: userID.String()})
	if err != nil {
		return
	}
	s.notifier.NotifyUser(userID, b)
	if s.logger != nil {
		s.logger.Printf("session revoked | user_id=%s", userID)
	}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
