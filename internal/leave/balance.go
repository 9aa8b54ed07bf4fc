package leave

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	leaveerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/leave/errors"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const balanceCacheTTL = 60 * time.Second

// BalanceResolver derives remaining balance on demand: entitlement minus the
// working days already held by pending and approved leaves. Nothing is
// stored; redis only memoizes the derivation and every leave mutation
// invalidates it.
type BalanceResolver struct {
	leaves  Repository
	configs sysconfig.Repository
	rdb     *redis.Client
	group   singleflight.Group
	logger  *zap.Logger
}

func NewBalanceResolver(leaves Repository, configs sysconfig.Repository, rdb *redis.Client, logger ...*zap.Logger) *BalanceResolver {
	l := zap.L().Named("leave.balance")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.balance")
	}
	return &BalanceResolver{leaves: leaves, configs: configs, rdb: rdb, logger: l}
}

func balanceCacheKey(userID string, year int) string {
	return fmt.Sprintf("leave:balance:%s:%d", userID, year)
}

// Resolve returns per-type balances for one user and year. Concurrent
// resolves for the same key are coalesced.
func (b *BalanceResolver) Resolve(ctx context.Context, userID string, year int) (map[string]TypeBalance, error) {
	key := balanceCacheKey(userID, year)

	if b.rdb != nil {
		if cached, err := b.rdb.Get(ctx, key).Bytes(); err == nil {
			var balances map[string]TypeBalance
			if err := json.Unmarshal(cached, &balances); err == nil {
				return balances, nil
			}
		}
	}

	result, err, _ := b.group.Do(key, func() (any, error) {
		balances, err := b.compute(ctx, userID, year)
		if err != nil {
			return nil, err
		}

		if b.rdb != nil {
			if payload, err := json.Marshal(balances); err == nil {
				if err := b.rdb.Set(ctx, key, payload, balanceCacheTTL).Err(); err != nil {
					b.logger.Warn("balance cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}

		return balances, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(map[string]TypeBalance), nil
}

// Remaining is the single-type view used by the apply guard.
func (b *BalanceResolver) Remaining(ctx context.Context, userID, leaveType string, year int) (int, error) {
	balances, err := b.compute(ctx, userID, year)
	if err != nil {
		return 0, err
	}
	tb, ok := balances[leaveType]
	if !ok {
		return 0, leaveerrors.ErrUnknownLeaveType
	}
	return tb.Remaining, nil
}

// Invalidate drops the memoized balances after a leave mutation.
func (b *BalanceResolver) Invalidate(ctx context.Context, userID string, year int) {
	if b.rdb == nil {
		return
	}
	key := balanceCacheKey(userID, year)
	if err := b.rdb.Del(ctx, key).Err(); err != nil {
		b.logger.Warn("balance cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (b *BalanceResolver) compute(ctx context.Context, userID string, year int) (map[string]TypeBalance, error) {
	cfg, err := b.configs.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, leaveerrors.ErrNoConfigForYear
	}

	used, err := b.leaves.UsedWorkingDaysByType(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	entitlements := cfg.EntitlementMap()
	balances := make(map[string]TypeBalance, len(entitlements))
	for leaveType, entitlement := range entitlements {
		remaining := entitlement - used[leaveType]
		if remaining < 0 {
			remaining = 0
		}
		balances[leaveType] = TypeBalance{
			Entitlement: entitlement,
			Used:        used[leaveType],
			Remaining:   remaining,
		}
	}
	return balances, nil
}
