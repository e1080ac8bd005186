package identity

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"loja-admin/internal/model"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "identity:account:"

// cachedAccount keeps the hash under its own key; model.Account only
// exposes it through the identity wire name.
type cachedAccount struct {
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Role         model.Role `json:"role"`
}

// CachedLookup remembers accounts in Redis. A nil client turns it into a
// pass-through, and Redis errors fall back to the wrapped lookup.
type CachedLookup struct {
	next  Lookup
	rdb   *redis.Client
	ttl   time.Duration
	opTTL time.Duration
}

func NewCachedLookup(next Lookup, rdb *redis.Client, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, rdb: rdb, ttl: ttl, opTTL: 2 * time.Second}
}

func (l *CachedLookup) FindByEmail(ctx context.Context, email, authorization string) (*model.Account, error) {
	if l.rdb == nil || l.ttl <= 0 {
		return l.next.FindByEmail(ctx, email, authorization)
	}
	key := cacheKeyPrefix + email

	cacheCtx, cancel := context.WithTimeout(ctx, l.opTTL)
	data, err := l.rdb.Get(cacheCtx, key).Bytes()
	cancel()
	if err == nil {
		var cached cachedAccount
		if err := json.Unmarshal(data, &cached); err == nil {
			return &model.Account{Email: cached.Email, PasswordHash: cached.PasswordHash, Role: cached.Role}, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("identity cache get %s: %v", email, err)
	}

	account, err := l.next.FindByEmail(ctx, email, authorization)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedAccount{Email: account.Email, PasswordHash: account.PasswordHash, Role: account.Role})
	if err == nil {
		setCtx, cancel := context.WithTimeout(ctx, l.opTTL)
		if err := l.rdb.Set(setCtx, key, payload, l.ttl).Err(); err != nil {
			log.Printf("identity cache set %s: %v", email, err)
		}
		cancel()
	}
	return account, nil
}

// Forget drops a cached account so the next lookup hits the identity service.
func (l *CachedLookup) Forget(ctx context.Context, email string) {
	if l.rdb == nil {
		return
	}
	if err := l.rdb.Del(ctx, cacheKeyPrefix+email).Err(); err != nil {
		log.Printf("identity cache del %s: %v", email, err)
	}
}
