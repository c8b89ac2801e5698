package models

import "time"

type ChatSender string
type ChatMessageType string

const (
	SenderCustomer ChatSender = "customer"
	SenderAdmin    ChatSender = "admin"

	MessageTypeText  ChatMessageType = "text"
	MessageTypeImage ChatMessageType = "image"
)

// ChatMessage is a single message in a guest conversation. Messages are
// never mutated after creation; ordering is by CreatedAt ascending and ID
// uniqueness is the backend's responsibility.
type ChatMessage struct {
	ID        string          `json:"_id"`
	GuestID   string          `json:"guestId"`
	Name      string          `json:"name,omitempty"` // customer display name
	Sender    ChatSender      `json:"sender"`
	Type      ChatMessageType `json:"type"`
	Message   string          `json:"message,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SendMessageRequest is the POST /api/chat and /api/chat/admin/send body.
type SendMessageRequest struct {
	GuestID      string          `json:"guestId"`
	CustomerName string          `json:"customerName,omitempty"`
	Sender       ChatSender      `json:"sender,omitempty"`
	Type         ChatMessageType `json:"type"`
	Message      string          `json:"message,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

// RosterEntry is one customer conversation in the admin roster,
// recomputed wholesale on every poll.
type RosterEntry struct {
	GuestID      string `json:"userId"`
	CustomerName string `json:"customerName"`
	UnreadCount  int    `json:"unreadCount"`
}
