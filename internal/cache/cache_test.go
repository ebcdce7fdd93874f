package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPlan struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPlan) func() error {
		return func() error {
			fetches++
			dest.ID = "p1"
			dest.Title = "Learn Go"
			return nil
		}
	}

	var first cachedPlan
	err := Aside(ctx, PlanKey("p1"), &first, PlanTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Learn Go", first.Title)

	var second cachedPlan
	err = Aside(ctx, PlanKey("p1"), &second, PlanTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second read should come from cache")
	assert.Equal(t, "Learn Go", second.Title)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedPlan
	err := Aside(ctx, PlanKey("p2"), &dest, PlanTTL, func() error {
		return assert.AnError
	})
	assert.Error(t, err)

	found, err := GetJSON(ctx, PlanKey("p2"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedPlan
	for i := 0; i < 2; i++ {
		err := Aside(ctx, PlanKey("p3"), &dest, PlanTTL, func() error {
			fetches++
			dest.ID = "p3"
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fetches, "without redis every read hits the source")
}

func TestInvalidatePlan(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PlanKey("p1"), cachedPlan{ID: "p1"}, time.Minute))
	require.NoError(t, SetJSON(ctx, PlanListKey, []cachedPlan{{ID: "p1"}}, time.Minute))
	require.NoError(t, SetJSON(ctx, OwnerPlansKey("u1"), []cachedPlan{{ID: "p1"}}, time.Minute))

	InvalidatePlan(ctx, "p1", "u1")

	assert.False(t, mr.Exists(PlanKey("p1")))
	assert.False(t, mr.Exists(PlanListKey))
	assert.False(t, mr.Exists(OwnerPlansKey("u1")))
}

func TestExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey("u1"), cachedPlan{ID: "u1"}, UserTTL))
	mr.FastForward(UserTTL + time.Second)

	var dest cachedPlan
	found, err := GetJSON(ctx, UserKey("u1"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
