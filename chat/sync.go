package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/snapsite-dev/storefront-client/api"
	"github.com/snapsite-dev/storefront-client/auth"
	"github.com/snapsite-dev/storefront-client/models"
)

const DefaultPollInterval = 2 * time.Second

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrSendInFlight = errors.New("chat: a send is already in flight")
)

// Sync keeps one conversation in step with the backend by polling on a
// fixed interval. Each successful fetch replaces the in-memory snapshot
// wholesale; there is no merging, so the view is eventually consistent at
// poll granularity. Sends are followed by an immediate re-poll rather
// than an optimistic append.
type Sync struct {
	fetch       func(ctx context.Context) ([]models.ChatMessage, error)
	post        func(ctx context.Context, req models.SendMessageRequest) error
	baseRequest models.SendMessageRequest
	localActor  models.ChatSender
	notifier    Notifier
	interval    time.Duration

	mu         sync.Mutex
	messages   []models.ChatMessage
	lastSeenID string
	sending    bool
}

// NewCustomerSync builds the sync client behind the customer chat widget.
// The guest identity is created on first use if needed.
func NewCustomerSync(client *api.Client, guest *auth.Guest, notifier Notifier, interval time.Duration) (*Sync, error) {
	guestID, err := guest.ID()
	if err != nil {
		return nil, err
	}
	name, err := guest.DisplayName()
	if err != nil {
		return nil, err
	}

	return newSync(
		func(ctx context.Context) ([]models.ChatMessage, error) {
			return client.GuestMessages(ctx, guestID)
		},
		client.SendGuestMessage,
		models.SendMessageRequest{GuestID: guestID, CustomerName: name, Sender: models.SenderCustomer},
		models.SenderCustomer,
		notifier,
		interval,
	), nil
}

// NewAdminSync builds the sync client for one conversation in the admin
// back-office.
func NewAdminSync(client *api.Client, guestID string, notifier Notifier, interval time.Duration) *Sync {
	return newSync(
		func(ctx context.Context) ([]models.ChatMessage, error) {
			return client.AdminMessages(ctx, guestID)
		},
		client.AdminSendMessage,
		models.SendMessageRequest{GuestID: guestID, Sender: models.SenderAdmin},
		models.SenderAdmin,
		notifier,
		interval,
	)
}

func newSync(
	fetch func(ctx context.Context) ([]models.ChatMessage, error),
	post func(ctx context.Context, req models.SendMessageRequest) error,
	baseRequest models.SendMessageRequest,
	localActor models.ChatSender,
	notifier Notifier,
	interval time.Duration,
) *Sync {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Sync{
		fetch:       fetch,
		post:        post,
		baseRequest: baseRequest,
		localActor:  localActor,
		notifier:    notifier,
		interval:    interval,
	}
}

// Run polls until ctx is cancelled. Fetch failures are logged and the
// loop keeps going; the next tick retries.
func (s *Sync) Run(ctx context.Context) {
	if err := s.Poll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Chat] Initial fetch failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Poll(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[Chat] Fetch failed: %v", err)
			}
		}
	}
}

// Poll fetches the conversation once and reconciles the local snapshot.
// The notification is edge-triggered on the id of the last message: it
// fires at most once per change, and only for messages the local actor
// did not author.
func (s *Sync) Poll(ctx context.Context) error {
	messages, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if last.Sender != s.localActor && last.ID != s.lastSeenID {
			if s.notifier != nil {
				s.notifier.Notify()
			}
			s.lastSeenID = last.ID
		}
	}

	s.messages = messages
	return nil
}

// Messages returns a copy of the current snapshot.
func (s *Sync) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SendText posts a text message and re-polls. Empty input is rejected
// before any network call; a second send while one is in flight gets
// ErrSendInFlight instead of a double submit.
func (s *Sync) SendText(ctx context.Context, body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyMessage
	}

	req := s.baseRequest
	req.Type = models.MessageTypeText
	req.Message = body
	return s.submit(ctx, req)
}

// SendImage posts an already-uploaded image by its public URL.
func (s *Sync) SendImage(ctx context.Context, imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return ErrEmptyMessage
	}

	req := s.baseRequest
	req.Type = models.MessageTypeImage
	req.ImageURL = imageURL
	return s.submit(ctx, req)
}

func (s *Sync) submit(ctx context.Context, req models.SendMessageRequest) error {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return ErrSendInFlight
	}
	s.sending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	if err := s.post(ctx, req); err != nil {
		return err
	}

	// Refresh right away instead of appending optimistically; the message
	// shows up once the backend echoes it back.
	if err := s.Poll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Chat] Refresh after send failed: %v", err)
	}
	return nil
}
