package realtime

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypePoolUpdate is for messages that update a pool's round state.
	MessageTypePoolUpdate MessageType = "poolUpdate"
	// MessageTypePaymentReminder is for late-payment nudges.
	MessageTypePaymentReminder MessageType = "paymentReminder"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// PoolUpdatePayload is the payload for a poolUpdate message.
type PoolUpdatePayload struct {
	PoolID     string `json:"pool_id"`
	Round      int    `json:"round"`
	MemberName string `json:"member_name,omitempty"`
	Amount     int64  `json:"amount,omitempty"`
	Event      string `json:"event"`
}
