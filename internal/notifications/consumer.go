package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/cutiefy/cutiefy-backend/pkg/mailer"
)

// Consumer turns order lifecycle events into the three storefront emails.
// Malformed or unsendable messages are acked after logging; a notification is
// never worth redelivering forever.
type Consumer struct {
	subscription *pubsub.Subscriber
	mail         mailer.Mailer
	adminEmail   string
	logg         *logger.Logger
}

// NewConsumer builds the email consumer.
func NewConsumer(subscription *pubsub.Subscriber, mail mailer.Mailer, adminEmail string, logg *logger.Logger) (*Consumer, error) {
	if subscription == nil {
		return nil, fmt.Errorf("notification subscription required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if adminEmail == "" {
		return nil, fmt.Errorf("admin email required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		subscription: subscription,
		mail:         mail,
		adminEmail:   adminEmail,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		c.process(ctx, msg.Attributes[eventTypeAttribute], msg.Data)
		msg.Ack()
	})
}

func (c *Consumer) process(ctx context.Context, eventType string, data []byte) {
	logCtx := c.logg.WithField(ctx, "event_type", eventType)

	kind, err := enums.ParseNotificationKind(eventType)
	if err != nil {
		c.logg.Info(logCtx, "skipping unknown notification event")
		return
	}

	var event OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		c.logg.Error(logCtx, "decoding notification event", err)
		return
	}
	logCtx = c.logg.WithOrderID(logCtx, event.OrderID.String())

	switch kind {
	case enums.NotificationOrderPlaced:
		c.sendOrderPlaced(logCtx, event)
	case enums.NotificationOrderDispatched:
		c.sendOrderDispatched(logCtx, event)
	}
}

func (c *Consumer) sendOrderPlaced(ctx context.Context, event OrderEvent) {
	if html, err := renderTemplate(orderPlacedTemplate, event); err != nil {
		c.logg.Error(ctx, "rendering order confirmation", err)
	} else if err := c.mail.Send(ctx, mailer.Message{
		To:      event.CustomerEmail,
		Subject: subjectOrderConfirmation,
		HTML:    html,
	}); err != nil {
		c.logg.Error(ctx, "sending order confirmation", err)
	}

	if html, err := renderTemplate(newOrderAlertTemplate, event); err != nil {
		c.logg.Error(ctx, "rendering admin order alert", err)
	} else if err := c.mail.Send(ctx, mailer.Message{
		To:      c.adminEmail,
		Subject: subjectNewOrder(event.CustomerName),
		HTML:    html,
	}); err != nil {
		c.logg.Error(ctx, "sending admin order alert", err)
	}
}

func (c *Consumer) sendOrderDispatched(ctx context.Context, event OrderEvent) {
	html, err := renderTemplate(orderDispatchedTemplate, event)
	if err != nil {
		c.logg.Error(ctx, "rendering dispatch receipt", err)
		return
	}
	if err := c.mail.Send(ctx, mailer.Message{
		To:      event.CustomerEmail,
		Subject: subjectOrderDispatched,
		HTML:    html,
	}); err != nil {
		c.logg.Error(ctx, "sending dispatch receipt", err)
	}
}
