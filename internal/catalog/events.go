package catalog

import (
	"encoding/json"
	"time"
)

const (
	EventNotification = "Notification"
	EventStoreChanged = "StoreChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "seller-dashboard"
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type NotificationPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

type StoreChangedPayload struct {
	Entity string `json:"entity"` // products | video-content | orders
	Count  int    `json:"count"`
}
