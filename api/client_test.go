package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsite-dev/storefront-client/auth"
	"github.com/snapsite-dev/storefront-client/models"
	"github.com/snapsite-dev/storefront-client/storage"
)

// newTestClient spins up a fake backend and a client pointed at it.
func newTestClient(t *testing.T, setup func(r *gin.Engine)) (*Client, *auth.TokenKeeper) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setup(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	tokens := auth.NewTokenKeeper(storage.NewMemory())
	return New(server.URL, tokens), tokens
}

func TestLoginStoresToken(t *testing.T) {
	client, tokens := newTestClient(t, func(r *gin.Engine) {
		r.POST("/api/users/login", func(c *gin.Context) {
			var req models.LoginRequest
			assert.NoError(t, c.ShouldBindJSON(&req))
			assert.Equal(t, "user@example.com", req.Email)
			c.JSON(http.StatusOK, gin.H{
				"token": "issued-token",
				"user":  gin.H{"email": req.Email, "role": "user", "firstName": "Jo"},
			})
		})
	})

	resp, err := client.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user", resp.User.Role)

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "issued-token", stored)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, tokens := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, []models.Product{})
		})
	})
	require.NoError(t, tokens.Save("tok-123"))

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	client, tokens := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/users/me", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		})
	})
	require.NoError(t, tokens.Save("stale"))

	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = tokens.Load()
	assert.ErrorIs(t, err, auth.ErrNoToken, "a 401 must clear the stored token")
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/api/orders", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		})
	})

	err := client.PlaceOrder(context.Background(), &models.Order{OrderID: "ORD-1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Cart is empty", apiErr.Message)
}

func TestGuestMessagesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/chat", func(c *gin.Context) {
			assert.Equal(t, "guest-42", c.Query("guestId"))
			c.JSON(http.StatusOK, []models.ChatMessage{
				{ID: "m1", Sender: models.SenderAdmin, Type: models.MessageTypeText, Message: "hi"},
			})
		})
	})

	messages, err := client.GuestMessages(context.Background(), "guest-42")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
}

func TestMarkConversationRead(t *testing.T) {
	var called string
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.PUT("/api/chat/admin/read/:userId", func(c *gin.Context) {
			called = c.Param("userId")
			c.JSON(http.StatusOK, gin.H{"message": "marked read"})
		})
	})

	require.NoError(t, client.MarkConversationRead(context.Background(), "guest-7"))
	assert.Equal(t, "guest-7", called)
}

func TestProductCRUD(t *testing.T) {
	var created models.Product
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/api/products", func(c *gin.Context) {
			assert.NoError(t, c.ShouldBindJSON(&created))
			c.JSON(http.StatusCreated, gin.H{"message": "created"})
		})
		r.GET("/api/products/:id", func(c *gin.Context) {
			if c.Param("id") != "P1" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusOK, models.Product{ProductID: "P1", Name: "Starter Site", Price: 49.99})
		})
		r.DELETE("/api/products/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
		})
	})
	ctx := context.Background()

	product, err := client.GetProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Starter Site", product.Name)

	_, err = client.GetProduct(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	require.NoError(t, client.CreateProduct(ctx, models.Product{ProductID: "P9", Name: "Portfolio Site", Price: 19.99}))
	assert.Equal(t, "P9", created.ProductID)

	require.NoError(t, client.DeleteProduct(ctx, "P1"))
}
