package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsite-dev/storefront-client/models"
)

func TestPlaceWebOrderMultipart(t *testing.T) {
	var gotOrder models.Order
	var gotTheme, gotLogo, gotAuth string
	client, tokens := newTestClient(t, func(r *gin.Engine) {
		r.POST("/api/orders/weborder", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			assert.NoError(t, json.Unmarshal([]byte(c.PostForm("order")), &gotOrder))
			gotTheme = c.PostForm("theme")

			file, err := c.FormFile("logo")
			if assert.NoError(t, err) {
				gotLogo = file.Filename
			}
			c.JSON(http.StatusCreated, gin.H{"message": "order received"})
		})
	})
	require.NoError(t, tokens.Save("tok"))

	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("png"), 0644))

	form := models.WebOrderForm{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "123",
		WebsiteName: "Jane's Bakery",
		Color:       "Green",
		Theme:       "dark",
		LogoPath:    logo,
	}
	order, err := models.BuildOrder([]models.CartLine{
		{ProductID: "P1", Price: 10, Quantity: 2},
	}, form)
	require.NoError(t, err)

	require.NoError(t, client.PlaceWebOrder(context.Background(), order, form))
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, order.OrderID, gotOrder.OrderID)
	assert.InDelta(t, 20.0, gotOrder.Total, 0.0001)
	assert.Equal(t, "dark", gotTheme)
	assert.Equal(t, "logo.png", gotLogo)
}

func TestPlaceOrderJSON(t *testing.T) {
	var got models.Order
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.POST("/api/orders", func(c *gin.Context) {
			assert.NoError(t, c.ShouldBindJSON(&got))
			c.JSON(http.StatusCreated, gin.H{"message": "order received"})
		})
	})

	order := &models.Order{
		OrderID: "ORD-1",
		Status:  models.OrderStatusPending,
		Items:   []models.OrderItem{{ProductID: "P1", Price: 10, Quantity: 1}},
		Total:   10,
	}
	require.NoError(t, client.PlaceOrder(context.Background(), order))
	assert.Equal(t, "ORD-1", got.OrderID)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}
