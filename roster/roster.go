package roster

import (
	"context"
	"errors"
	"log"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/snapsite-dev/storefront-client/api"
	"github.com/snapsite-dev/storefront-client/models"
)

const DefaultPollInterval = 2 * time.Second

// Roster tracks the admin-facing list of customer conversations. The
// whole list is refetched on every poll; a snapshot that comes back
// unchanged is dropped without touching the version counter, so
// consumers can compare Version() instead of re-diffing the entries
// themselves.
type Roster struct {
	client   *api.Client
	interval time.Duration

	mu       sync.Mutex
	entries  []models.RosterEntry
	version  uint64
	selected string // guest id of the open conversation, "" when none
}

func New(client *api.Client, interval time.Duration) *Roster {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Roster{client: client, interval: interval}
}

// Run polls until ctx is cancelled, independently of any message poller.
func (r *Roster) Run(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Roster] Initial fetch failed: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[Roster] Fetch failed: %v", err)
			}
		}
	}
}

// Refresh fetches the customer list once. Entries are sorted by unread
// count descending, then customer name ascending. The first entry is
// auto-selected when no conversation is open yet.
func (r *Roster) Refresh(ctx context.Context) error {
	fetched, err := r.client.Customers(ctx)
	if err != nil {
		return err
	}

	sortEntries(fetched)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !reflect.DeepEqual(fetched, r.entries) {
		r.entries = fetched
		r.version++
	}

	if r.selected == "" && len(r.entries) > 0 {
		r.selected = r.entries[0].GuestID
	}
	return nil
}

func sortEntries(entries []models.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].UnreadCount != entries[j].UnreadCount {
			return entries[i].UnreadCount > entries[j].UnreadCount
		}
		return entries[i].CustomerName < entries[j].CustomerName
	})
}

// Entries returns a copy of the current snapshot.
func (r *Roster) Entries() []models.RosterEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.RosterEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Version increments every time a refresh actually changed the roster.
func (r *Roster) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Selected returns the guest id of the open conversation, or "".
func (r *Roster) Selected() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Select opens a conversation and fires its read receipt. The receipt is
// fire-and-forget: a failure is logged and the selection switches anyway.
func (r *Roster) Select(ctx context.Context, guestID string) {
	r.mu.Lock()
	r.selected = guestID
	r.mu.Unlock()

	go func() {
		if err := r.client.MarkConversationRead(ctx, guestID); err != nil {
			log.Printf("[Roster] Read receipt for %s failed: %v", guestID, err)
		}
	}()
}
