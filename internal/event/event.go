package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderPlaced   = "OrderPlaced"
	TypeStockReceived = "StockReceived"
)

// Envelope is the JSON shape of every message on the broker.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type OrderPlacedItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlaced struct {
	OrderID      string            `json:"order_id"`
	CustomerName string            `json:"customer_name"`
	Total        decimal.Decimal   `json:"total"`
	Items        []OrderPlacedItem `json:"items"`
}

type StockReceived struct {
	ItemType    string `json:"item_type"`
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity"`
	ReferenceID string `json:"reference_id"`
	Notes       string `json:"notes"`
}

func New(eventType string, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}, nil
}

// Decode parses raw into an envelope and unmarshals its payload into dst
// after checking the event type.
func Decode(raw []byte, wantType string, dst interface{}) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventType != wantType {
		return &env, fmt.Errorf("unexpected event type %q, want %q", env.EventType, wantType)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return &env, fmt.Errorf("decode %s payload: %w", wantType, err)
	}
	return &env, nil
}
