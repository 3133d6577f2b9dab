package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisFeedDeliversOriginTag(t *testing.T) {
	client := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := NewRedisFeed(client)
	events, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, ChangeChannel, "writer-1").Err())

	select {
	case ev := <-events:
		assert.Equal(t, "writer-1", ev.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event delivered")
	}
}

func TestRedisFeedClosesOnCancel(t *testing.T) {
	client := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	feed := NewRedisFeed(client)
	events, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not torn down")
	}
}
