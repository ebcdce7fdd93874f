package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%s"
	PlanKeyPrefix     = "plan:%s"
	PlanListKey       = "plans:all"
	OwnerPlansPrefix  = "plans:owner:%s"
	ExchangeKeyPrefix = "oauth:code:%s"
)

const (
	UserTTL     = 5 * time.Minute
	PlanTTL     = 10 * time.Minute
	PlanListTTL = 1 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PlanKey(planID string) string {
	return fmt.Sprintf(PlanKeyPrefix, planID)
}

func OwnerPlansKey(ownerID string) string {
	return fmt.Sprintf(OwnerPlansPrefix, ownerID)
}

func ExchangeKey(code string) string {
	return fmt.Sprintf(ExchangeKeyPrefix, code)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePlan drops every cached view a plan mutation can stale:
// the plan itself, the global listing, and the owner's listing.
func InvalidatePlan(ctx context.Context, planID, ownerID string) {
	Invalidate(ctx, PlanKey(planID))
	Invalidate(ctx, PlanListKey)
	if ownerID != "" {
		Invalidate(ctx, OwnerPlansKey(ownerID))
	}
}
