package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// envelope is the fanout message shared between API instances.
type envelope struct {
	Origin         string          `json:"origin"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	Type           string          `json:"type"`
	Data           json.RawMessage `json:"data"`
}

// AMQPRelay fans events out to every API instance through a RabbitMQ
// fanout exchange. Each instance delivers its own events locally and
// ignores them when they come back from the broker.
type AMQPRelay struct {
	local    Broadcaster
	url      string
	exchange string
	origin   string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPRelay creates a relay in front of local
func NewAMQPRelay(local Broadcaster, url, exchange string) *AMQPRelay {
	return &AMQPRelay{
		local:    local,
		url:      url,
		exchange: exchange,
		origin:   uuid.NewString(),
	}
}

// Publish delivers the event to local clients, then forwards it to the
// other instances. A broker failure is logged and does not fail the call.
func (r *AMQPRelay) Publish(ctx context.Context, orgID uuid.UUID, event string, payload interface{}) error {
	if err := r.local.Publish(ctx, orgID, event, payload); err != nil {
		return err
	}

	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()
	if ch == nil {
		slog.WarnContext(ctx, "realtime relay not connected, event delivered locally only", "event", event)
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	body, err := json.Marshal(envelope{Origin: r.origin, OrganizationID: orgID, Type: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := ch.PublishWithContext(ctx, r.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	}); err != nil {
		slog.WarnContext(ctx, "realtime relay publish failed", "event", event, "error", err)
	}
	return nil
}

// Run connects to the broker and relays remote events to local clients
// until ctx is canceled, reconnecting with backoff.
func (r *AMQPRelay) Run(ctx context.Context) {
	backoff := time.Second
	for {
		err := r.session(ctx)
		if ctx.Err() != nil {
			return
		}
		slog.Warn("realtime relay disconnected", "error", err, "retry_in", backoff.String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (r *AMQPRelay) session(ctx context.Context) error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(r.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", r.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	r.setChannel(ch)
	defer r.setChannel(nil)
	slog.Info("realtime relay connected", "exchange", r.exchange, "queue", q.Name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := r.handleDelivery(ctx, d.Body); err != nil {
				slog.Warn("realtime relay dropped message", "error", err)
			}
		}
	}
}

func (r *AMQPRelay) setChannel(ch *amqp.Channel) {
	r.mu.Lock()
	r.ch = ch
	r.mu.Unlock()
}

func (r *AMQPRelay) handleDelivery(ctx context.Context, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if env.Origin == r.origin {
		return nil
	}
	if env.OrganizationID == uuid.Nil || env.Type == "" {
		return errors.New("missing organization or type")
	}

	var payload interface{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return r.local.Publish(ctx, env.OrganizationID, env.Type, payload)
}
