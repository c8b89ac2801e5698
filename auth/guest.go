package auth

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/snapsite-dev/storefront-client/storage"
)

// Guest lazily creates and persists the anonymous visitor identity used
// to attribute chat messages. Both values are generated once per local
// profile and reused on every later call.
type Guest struct {
	store storage.Store
}

func NewGuest(store storage.Store) *Guest {
	return &Guest{store: store}
}

// ID returns the persisted guest UUID, generating and persisting one
// first if none exists yet.
func (g *Guest) ID() (string, error) {
	id, err := g.store.Get(storage.KeyGuestID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("failed to read guest id: %w", err)
	}

	id = uuid.NewString()
	if err := g.store.Set(storage.KeyGuestID, id); err != nil {
		return "", fmt.Errorf("failed to persist guest id: %w", err)
	}
	return id, nil
}

// DisplayNumber returns the persisted 6-digit guest number, generating
// one in [100000, 999999] on first use.
func (g *Guest) DisplayNumber() (int, error) {
	raw, err := g.store.Get(storage.KeyGuestNumber)
	if err == nil {
		n, convErr := strconv.Atoi(raw)
		if convErr == nil {
			return n, nil
		}
		// Corrupt value, fall through and regenerate.
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("failed to read guest number: %w", err)
	}

	n := 100000 + rand.Intn(900000)
	if err := g.store.Set(storage.KeyGuestNumber, strconv.Itoa(n)); err != nil {
		return 0, fmt.Errorf("failed to persist guest number: %w", err)
	}
	return n, nil
}

// DisplayName returns the human-readable guest name, e.g. "Guest-483920".
func (g *Guest) DisplayName() (string, error) {
	n, err := g.DisplayNumber()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Guest-%d", n), nil
}
