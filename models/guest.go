package models

// GuestIdentity identifies an unauthenticated visitor. Created once per
// local profile, persisted indefinitely, immutable thereafter.
type GuestIdentity struct {
	GuestID       string `json:"guestId"`     // UUID
	DisplayNumber int    `json:"guestNumber"` // 6-digit, shown as "Guest-123456"
}
