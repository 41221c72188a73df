package amqp

import (
	"encoding/json"
	"time"
)

// CatalogRefreshMessage asks a worker to re-pull the benefit catalog from
// its origin. It carries no payload beyond the reason, the worker fetches
// the full catalog itself.
type CatalogRefreshMessage struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewCatalogRefreshMessage creates a refresh message with the given reason
func NewCatalogRefreshMessage(reason string) *CatalogRefreshMessage {
	return &CatalogRefreshMessage{
		Reason:      reason,
		RequestedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CatalogRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CatalogRefreshMessageFromJSON creates a message from JSON bytes
func CatalogRefreshMessageFromJSON(data []byte) (*CatalogRefreshMessage, error) {
	var msg CatalogRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
