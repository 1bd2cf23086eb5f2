// Package realtime consumes the server's change stream and folds the
// deltas into the local store. One WebSocket connection is held per
// subscribed collection; lost connections are redialed with jittered
// exponential backoff.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/novakart/storesync/internal/models"
	"github.com/novakart/storesync/pkg/api"
)

// Config configures the change stream client
type Config struct {
	URL                  string
	Token                string
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int
}

func (c *Config) defaults() {
	if c.ReconnectBaseDelay == 0 {
		c.ReconnectBaseDelay = 1 * time.Second
	}
	if c.ReconnectMaxDelay == 0 {
		c.ReconnectMaxDelay = 30 * time.Second
	}
	if c.MaxReconnectAttempts == 0 {
		c.MaxReconnectAttempts = 10
	}
}

// backoff computes redial delays. The attempt counter resets once a
// connection has stayed up for a minute, so a long-lived stream that
// drops once does not start near its cap.
type backoff struct {
	base        time.Duration
	max         time.Duration
	maxAttempts int
	attempt     int
	connectedAt time.Time
}

func (b *backoff) exhausted() bool {
	return b.maxAttempts > 0 && b.attempt >= b.maxAttempts
}

func (b *backoff) markConnected() {
	b.connectedAt = time.Now()
}

func (b *backoff) next() time.Duration {
	if !b.connectedAt.IsZero() && time.Since(b.connectedAt) > time.Minute {
		b.attempt = 0
	}
	jitter := time.Duration(rand.Float64() * float64(b.base) * 0.5)
	delay := time.Duration(math.Min(
		float64(b.base)*math.Pow(2, float64(b.attempt))+float64(jitter),
		float64(b.max),
	))
	b.attempt++
	return delay
}

// Subscriber streams collection deltas from the remote service
type Subscriber struct {
	logger *slog.Logger
	cfg    Config
}

func NewSubscriber(cfg Config, logger *slog.Logger) *Subscriber {
	cfg.defaults()
	return &Subscriber{cfg: cfg, logger: logger}
}

// Subscribe opens a change stream for one collection. The first dial is
// synchronous so the caller learns immediately whether the stream is up;
// after that the subscription redials on its own. The returned channel
// closes when ctx is cancelled or the reconnect budget runs out.
func (s *Subscriber) Subscribe(ctx context.Context, collection models.Collection) (<-chan models.Delta, error) {
	conn, err := s.dial(ctx, collection)
	if err != nil {
		return nil, err
	}

	deltas := make(chan models.Delta)
	go s.run(ctx, conn, collection, deltas)
	return deltas, nil
}

func (s *Subscriber) dial(ctx context.Context, collection models.Collection) (*websocket.Conn, error) {
	wsURL := strings.Replace(s.cfg.URL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL += "/api/v1/stream?token=" + s.cfg.Token

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial change stream: %w", err)
	}

	cmd := api.SubscribeCommand{Action: "subscribe", Collection: string(collection)}
	if err := wsjson.Write(ctx, conn, cmd); err != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		return nil, fmt.Errorf("failed to subscribe to %s: %w", collection, err)
	}

	return conn, nil
}

func (s *Subscriber) run(ctx context.Context, conn *websocket.Conn, collection models.Collection, deltas chan<- models.Delta) {
	defer close(deltas)

	b := &backoff{
		base:        s.cfg.ReconnectBaseDelay,
		max:         s.cfg.ReconnectMaxDelay,
		maxAttempts: s.cfg.MaxReconnectAttempts,
	}
	b.markConnected()

	for {
		err := s.readLoop(ctx, conn, collection, deltas)
		_ = conn.Close(websocket.StatusNormalClosure, "")
		if ctx.Err() != nil {
			return
		}

		s.logger.Warn("change stream disconnected",
			"collection", collection, "error", err)

		for {
			if b.exhausted() {
				s.logger.Error("change stream gave up reconnecting",
					"collection", collection, "attempts", b.attempt)
				return
			}

			delay := b.next()
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			conn, err = s.dial(ctx, collection)
			if err == nil {
				b.markConnected()
				s.logger.Info("change stream reconnected",
					"collection", collection)
				break
			}
			s.logger.Warn("change stream redial failed",
				"collection", collection, "error", err)
		}
	}
}

// readLoop decodes envelopes off one connection until it fails
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn, collection models.Collection, deltas chan<- models.Delta) error {
	for {
		var env api.Envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			return err
		}

		switch env.Type {
		case api.EnvelopeSubscribed:
			s.logger.Debug("change stream subscribed", "collection", collection)

		case api.EnvelopeError:
			s.logger.Warn("change stream server error",
				"collection", collection, "payload", string(env.Payload))

		case api.EnvelopeDelta:
			var event api.DeltaEvent
			if err := json.Unmarshal(env.Payload, &event); err != nil {
				s.logger.Warn("malformed delta, skipping",
					"collection", collection, "error", err)
				continue
			}
			delta := models.Delta{
				Type:       models.DeltaType(event.EventType),
				Collection: models.Collection(event.Collection),
				Entity:     event.Record,
			}
			select {
			case deltas <- delta:
			case <-ctx.Done():
				return ctx.Err()
			}

		default:
			s.logger.Debug("unknown envelope type, skipping",
				"type", env.Type)
		}
	}
}
