package events

import (
	"context"
	"parkspot/config"
	"parkspot/infras/kafka"
	statsDto "parkspot/internal/domains/stats/model/dto"
	statsService "parkspot/internal/domains/stats/service"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer applies booking created events to the capacity ledger. Delivery
// is at most once: a failed update is logged and the message is not retried,
// leaving the ledger stale until the next reconcile.
type Consumer struct {
	client kafka.Client
	stats  statsService.Stats
	cfg    *config.Config
}

func NewConsumer(client kafka.Client, stats statsService.Stats, cfg *config.Config) *Consumer {
	return &Consumer{
		client: client,
		stats:  stats,
		cfg:    cfg,
	}
}

// Start blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.BookingCreated, func(msg kafkaGo.Message) {
		c.handleBookingCreated(ctx, msg)
	})
}

func (c *Consumer) handleBookingCreated(ctx context.Context, msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[statsDto.BookingSummary](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking created event, dropping")

		return
	}

	summary, ok := decoded.Value.(statsDto.BookingSummary)
	if !ok {
		log.Error().Msg("unexpected booking created payload type, dropping")

		return
	}

	if err := c.stats.UpdateOnBooking(ctx, summary); err != nil {
		log.Error().Err(err).Str("bookingID", summary.BookingID).Msg("capacity update failed, ledger will drift until reconcile")
	}
}
