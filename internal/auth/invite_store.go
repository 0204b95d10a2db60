package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinix/internal/cache"
	"clinix/internal/errors"
)

const invitePrefix = "invite:"

// InviteTTL is how long a patient has to redeem an invite minted when a
// doctor books on their behalf.
const InviteTTL = 72 * time.Hour

// InviteStore hands out one-time tokens that let an auto-provisioned
// patient set their own password. Tokens are single use: redeeming
// deletes them.
type InviteStore interface {
	CreateInvite(ctx context.Context, userID uuid.UUID) (string, error)
	RedeemInvite(ctx context.Context, token string) (uuid.UUID, error)
}

// RedisInviteStore keeps invite tokens in redis with a TTL. The cache
// client fails safe, so a dead redis means invites cannot be redeemed
// until it returns, never that they silently succeed.
type RedisInviteStore struct {
	cache *cache.Client
}

var _ InviteStore = (*RedisInviteStore)(nil)

// NewInviteStore creates a redis-backed invite store.
func NewInviteStore(cache *cache.Client) *RedisInviteStore {
	return &RedisInviteStore{cache: cache}
}

// CreateInvite mints a one-time token bound to userID.
func (s *RedisInviteStore) CreateInvite(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, invitePrefix+token, []byte(userID.String()), InviteTTL); err != nil {
		return "", err
	}
	return token, nil
}

// RedeemInvite resolves and consumes a token. Unknown, expired, or
// already-used tokens all come back as ErrInvalidInvite.
func (s *RedisInviteStore) RedeemInvite(ctx context.Context, token string) (uuid.UUID, error) {
	data, _ := s.cache.Get(ctx, invitePrefix+token)
	if data == nil {
		return uuid.Nil, errors.ErrInvalidInvite
	}
	userID, err := uuid.Parse(string(data))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidInvite
	}
	_ = s.cache.Delete(ctx, invitePrefix+token)
	return userID, nil
}
