package events_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogPublisher_PublishBatch(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	publisher := events.NewSlogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))
	batch := []shared.DomainEvent{
		shared.BaseEvent{ID: "e1", Type: "qrcode.created", Aggregate: "QR001", OccurredOn: time.Now()},
		shared.BaseEvent{ID: "e2", Type: "scan.completed", Aggregate: "QR001", OccurredOn: time.Now()},
	}

	// Act
	require.NoError(t, publisher.PublishBatch(batch))

	// Assert
	out := buf.String()
	assert.Contains(t, out, "event_type=qrcode.created")
	assert.Contains(t, out, "event_type=scan.completed")
	assert.Contains(t, out, "component=events")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("domain_event")))
}
