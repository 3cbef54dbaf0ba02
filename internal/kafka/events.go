package kafka

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/notify"
)

// Events publishes dashboard notifications and store changes as
// versioned envelopes. StoreChanges may be nil, in which case store
// changes share the notifications producer.
type Events struct {
	Notifications *Producer
	StoreChanges  *Producer
	Service       string
}

var _ notify.Notifier = (*Events)(nil)

func (e *Events) Notify(_ context.Context, n notify.Notification) {
	payload := catalog.NotificationPayload{Title: n.Title, Description: n.Description, Variant: string(n.Variant)}
	e.publish(e.Notifications, catalog.EventNotification, "", payload)
}

// StoreChanged matches store.OnChange once bound to an entity name.
func (e *Events) StoreChanged(entity string, count int) {
	p := e.StoreChanges
	if p == nil {
		p = e.Notifications
	}
	e.publish(p, catalog.EventStoreChanged, entity, catalog.StoreChangedPayload{Entity: entity, Count: count})
}

func (e *Events) publish(p *Producer, eventType, correlationID string, payload any) {
	ev := catalog.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.Service,
		CorrelationID: correlationID,
		Payload:       MustMarshal(payload),
	}
	key := correlationID
	if key == "" {
		key = ev.EventID
	}
	p.Publish(catalog.PartitionKey(key), MustMarshal(ev),
		kafka.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
