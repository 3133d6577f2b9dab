package ledger

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ChangeChannel is the redis pub/sub channel carrying ledger change
// notifications. The payload is the writer's origin tag.
const ChangeChannel = "guestdesk:ledger:changed"

// RedisFeed delivers change notifications over redis pub/sub.
type RedisFeed struct {
	client  *redis.Client
	channel string
}

// NewRedisFeed returns a feed listening on the default change channel.
func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client, channel: ChangeChannel}
}

// Subscribe starts a pub/sub subscription. The returned channel closes
// when ctx is cancelled, tearing the connection down with it.
func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	sub := f.client.Subscribe(ctx, f.channel)
	// Force the subscription handshake so a dead redis fails fast here
	// instead of silently never delivering.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	events := make(chan ChangeEvent)
	go func() {
		defer close(events)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case events <- ChangeEvent{Origin: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}
