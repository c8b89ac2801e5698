package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/snapsite-dev/storefront-client/models"
)

// GuestMessages fetches the full conversation for a guest, ordered by
// creation time ascending.
// GET /api/chat?guestId=
func (c *Client) GuestMessages(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
	query := url.Values{"guestId": {guestID}}
	var messages []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/chat", query, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// POST /api/chat
func (c *Client) SendGuestMessage(ctx context.Context, req models.SendMessageRequest) error {
	return c.do(ctx, http.MethodPost, "/api/chat", nil, req, nil)
}

// Customers fetches the admin roster of guest conversations.
// GET /api/chat/customers (admin)
func (c *Client) Customers(ctx context.Context) ([]models.RosterEntry, error) {
	var entries []models.RosterEntry
	if err := c.do(ctx, http.MethodGet, "/api/chat/customers", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GET /api/chat/admin?guestId= (admin)
func (c *Client) AdminMessages(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
	query := url.Values{"guestId": {guestID}}
	var messages []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/chat/admin", query, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// POST /api/chat/admin/send (admin)
func (c *Client) AdminSendMessage(ctx context.Context, req models.SendMessageRequest) error {
	return c.do(ctx, http.MethodPost, "/api/chat/admin/send", nil, req, nil)
}

// MarkConversationRead issues the read receipt for a guest conversation.
// PUT /api/chat/admin/read/:userId (admin)
func (c *Client) MarkConversationRead(ctx context.Context, guestID string) error {
	return c.do(ctx, http.MethodPut, "/api/chat/admin/read/"+guestID, nil, nil, nil)
}
