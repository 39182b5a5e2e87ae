package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"parkspot/config"
	kafkaMocks "parkspot/infras/kafka/mocks"
	bookingDto "parkspot/internal/domains/booking/model/dto"
	statsDto "parkspot/internal/domains/stats/model/dto"
	statsMocks "parkspot/internal/domains/stats/service/mocks"
	"parkspot/internal/events"
)

func newConsumer(t *testing.T) (*events.Consumer, *statsMocks.MockStats, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStats := statsMocks.NewMockStats(ctrl)
	mockClient := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "parkspot-stats"
	cfg.Kafka.Topics.BookingCreated = "booking.created"

	return events.NewConsumer(mockClient, mockStats, cfg), mockStats, mockClient
}

// deliver subscribes the consumer and feeds it a single message.
func deliver(mockClient *kafkaMocks.MockClient, msg kafkaGo.Message) {
	mockClient.EXPECT().
		Consume(gomock.Any(), "parkspot-stats", "booking.created", gomock.Any()).
		Do(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) {
			handler(msg)
		})
}

// The event published on booking creation must decode into the summary the
// capacity updater consumes.
func TestConsumer_AppliesPublishedEvent(t *testing.T) {
	consumer, mockStats, mockClient := newConsumer(t)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := bookingDto.BookingCreatedEvent{
		BookingID:     "booking-id-123",
		Reference:     "BK1234567890",
		FacilityID:    "facility-id-123",
		UserID:        "user-id-123",
		VehicleID:     "vehicle-id-123",
		VehicleType:   "two-wheeler",
		Amount:        20,
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		DurationHours: 2,
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	deliver(mockClient, kafkaGo.Message{Value: payload})

	mockStats.EXPECT().
		UpdateOnBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, summary statsDto.BookingSummary) error {
			assert.Equal(t, event.BookingID, summary.BookingID)
			assert.Equal(t, event.FacilityID, summary.FacilityID)
			assert.Equal(t, event.VehicleType, summary.VehicleType)
			assert.Equal(t, event.Amount, summary.Amount)
			assert.Equal(t, event.StartTime, summary.StartTime)
			assert.Equal(t, event.EndTime, summary.EndTime)

			return nil
		})

	consumer.Start(context.Background())
}

func TestConsumer_DropsMalformedPayload(t *testing.T) {
	consumer, _, mockClient := newConsumer(t)

	// No stats expectation: a payload that cannot decode is dropped.
	deliver(mockClient, kafkaGo.Message{Value: []byte("not-json")})

	consumer.Start(context.Background())
}

func TestConsumer_FailedUpdateIsNotRetried(t *testing.T) {
	consumer, mockStats, mockClient := newConsumer(t)

	payload, err := json.Marshal(bookingDto.BookingCreatedEvent{BookingID: "booking-id-123"})
	require.NoError(t, err)

	deliver(mockClient, kafkaGo.Message{Value: payload})

	mockStats.EXPECT().
		UpdateOnBooking(gomock.Any(), gomock.Any()).
		Return(errors.New("facility not found"))

	consumer.Start(context.Background())
}
