package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
)

type eventPublisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) error
}

// PubsubPublisher adapts the Pub/Sub topic publisher to the dispatcher.
type PubsubPublisher struct {
	topic *pubsub.Publisher
}

func NewPubsubPublisher(topic *pubsub.Publisher) (*PubsubPublisher, error) {
	if topic == nil {
		return nil, fmt.Errorf("pubsub publisher required")
	}
	return &PubsubPublisher{topic: topic}, nil
}

func (p *PubsubPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) error {
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish notification event: %w", err)
	}
	return nil
}

// Dispatcher publishes order lifecycle events. Publishing is strictly
// best-effort: a lost event costs an email, never an order.
type Dispatcher struct {
	publisher eventPublisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewDispatcher builds a dispatcher with the required dependencies.
func NewDispatcher(publisher eventPublisher, logg *logger.Logger) (*Dispatcher, error) {
	if publisher == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Dispatcher{publisher: publisher, logg: logg, now: time.Now}, nil
}

// OrderPlaced announces a freshly placed order.
func (d *Dispatcher) OrderPlaced(ctx context.Context, order *models.Order) {
	d.publish(ctx, enums.NotificationOrderPlaced, order)
}

// OrderDispatched announces a dispatched order.
func (d *Dispatcher) OrderDispatched(ctx context.Context, order *models.Order) {
	d.publish(ctx, enums.NotificationOrderDispatched, order)
}

func (d *Dispatcher) publish(ctx context.Context, kind enums.NotificationKind, order *models.Order) {
	if order == nil {
		return
	}
	logCtx := d.logg.WithOrderID(ctx, order.ID.String())

	event := eventFromOrder(kind, order, d.now())
	payload, err := json.Marshal(event)
	if err != nil {
		d.logg.Error(logCtx, "encoding notification event", err)
		return
	}

	attributes := map[string]string{eventTypeAttribute: string(kind)}
	if err := d.publisher.Publish(ctx, payload, attributes); err != nil {
		d.logg.Error(logCtx, "publishing notification event", err)
	}
}
