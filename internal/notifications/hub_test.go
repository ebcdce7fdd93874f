package notifications

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register("u1", nil, nil)
	require.NoError(t, err)
	c2, err := hub.Register("u1", nil, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount())

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ConnectionCount())

	// Unregistering twice is a no-op.
	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ConnectionCount())

	hub.Unregister(c2)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHubPerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register("u1", nil, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register("u1", nil, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register("u2", nil, nil)
	assert.NoError(t, err)
}

func TestHubPublishFollowRouting(t *testing.T) {
	hub := NewHub()

	feed, err := hub.Register("watcher", nil, nil)
	require.NoError(t, err)
	planOnly, err := hub.Register("follower", nil, []string{"p1"})
	require.NoError(t, err)
	other, err := hub.Register("other", nil, []string{"p2"})
	require.NoError(t, err)

	event := FollowEvent{
		Type:       EventFollowed,
		PlanID:     "p1",
		UserID:     "u2",
		Followers:  3,
		OccurredAt: time.Now().UTC(),
	}
	hub.PublishFollow(event)

	for _, c := range []*Client{feed, planOnly} {
		select {
		case data := <-c.Send:
			var got FollowEvent
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, EventFollowed, got.Type)
			assert.Equal(t, "p1", got.PlanID)
			assert.Equal(t, 3, got.Followers)
		default:
			t.Fatalf("client %s received no event", c.UserID)
		}
	}

	select {
	case <-other.Send:
		t.Fatal("client watching another plan received the event")
	default:
	}
}
