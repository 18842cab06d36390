// Package notify carries state-transition notifications out of the engines.
// Dispatch is fire-and-forget: the engines attempt exactly one dispatch per
// committed transition and a failed dispatch never rolls the transition back.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/config"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

type Dispatcher interface {
	Dispatch(notification domain.Notification)
}

// AMQPDispatcher publishes notifications to a durable queue; the notifier
// worker records and delivers them.
type AMQPDispatcher struct {
	cfg     *config.Config
	channel *amqp.Channel
}

func NewAMQPDispatcher(cfg *config.Config, channel *amqp.Channel) *AMQPDispatcher {
	return &AMQPDispatcher{
		cfg:     cfg,
		channel: channel,
	}
}

func (d *AMQPDispatcher) Dispatch(notification domain.Notification) {
	body, err := json.Marshal(notification)
	if err != nil {
		slog.Error("failed to encode notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(d.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = d.channel.PublishWithContext(
		ctx,
		"",
		d.cfg.RabbitMQ.Queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("failed to publish notification", "type", notification.Type, "recipient", notification.UserID, "error", err)
	}
}
