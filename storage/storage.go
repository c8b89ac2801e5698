package storage

import "errors"

// Well-known keys, matching what the browser build of the storefront kept
// in localStorage.
const (
	KeyToken       = "token"       // bearer JWT
	KeyGuestID     = "guestId"     // UUID
	KeyGuestNumber = "guestNumber" // 6-digit display number
	KeyCart        = "cart"        // serialized []models.CartLine
)

var ErrNotFound = errors.New("storage: key not found")

// Store is the durable key-value storage behind the cart, the guest
// identity and the auth token. One store is scoped to one local profile;
// it is only ever used from a single process at a time, so implementations
// do not need locking beyond last-write-wins.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
